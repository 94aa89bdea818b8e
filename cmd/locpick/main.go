package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locpick"
	"github.com/fwojciec/locpick/csv"
	"github.com/fwojciec/locpick/extract"
	"github.com/fwojciec/locpick/fs"
	"github.com/fwojciec/locpick/gemini"
	"github.com/fwojciec/locpick/goquery"
	"github.com/fwojciec/locpick/htmlquery"
	lochttp "github.com/fwojciec/locpick/http"
	"github.com/fwojciec/locpick/rod"
	locslog "github.com/fwojciec/locpick/slog"
	"github.com/fwojciec/locpick/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for run history. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService locpick.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("locpick"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'locpick --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags.
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Run.Verbose || cli.Probe.Verbose)

	// Wire command-specific dependencies based on command.
	switch cmd {
	case "run":
		cfg, err := fs.LoadConfig(cli.Run.Config)
		if err != nil {
			return err
		}
		if cli.Run.Output != "" {
			cfg.OutputPath = cli.Run.Output
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		deps.Config = cfg

		pipeline, closeFetcher, err := m.buildPipeline(ctx, deps.Logger, cfg, cli.Run.Render)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY; pass --render only with Chrome installed")
			return err
		}
		defer closeFetcher()

		deps.Batch = &extract.Batch{
			Pipeline:    pipeline,
			GlobalLimit: cfg.GlobalLimit,
			BatchSize:   cfg.BatchSize,
			BatchRest:   cfg.BatchRest,
		}
		deps.Sink = csv.NewWriter(cfg.OutputPath)

		if !cli.Run.NoHistory {
			if err := m.openDB(stderr); err != nil {
				return err
			}
			defer m.Close()
			deps.Runs = m.RunService
		}

	case "probe":
		cfg := locpick.DefaultConfig()
		if cli.Probe.Model != "" {
			cfg.Model = cli.Probe.Model
		}
		pipeline, closeFetcher, err := m.buildPipeline(ctx, deps.Logger, &cfg, cli.Probe.Render)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY; pass --render only with Chrome installed")
			return err
		}
		defer closeFetcher()
		deps.Pipeline = pipeline

	case "history":
		if err := m.openDB(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Runs = m.RunService
	}

	return kongCtx.Run(deps)
}

// buildPipeline assembles the extraction pipeline for a run or probe. The
// returned closer releases fetcher resources.
func (m *Main) buildPipeline(ctx context.Context, logger *slog.Logger, cfg *locpick.Config, render bool) (*extract.Pipeline, func() error, error) {
	var fetcher locpick.Fetcher
	if render {
		f, err := rod.NewFetcher()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = lochttp.NewFetcher(
			lochttp.WithTimeout(cfg.FetchTimeout),
			lochttp.WithPoolSize(cfg.HTTPLimit),
		)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fetcher.Close()
		return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fetcher.Close()
		return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var limiter *extract.DomainLimiter
	if cfg.RatePerDomain > 0 {
		limiter = extract.NewDomainLimiter(cfg.RatePerDomain)
	}

	pipeline := &extract.Pipeline{
		Fetcher:      locslog.NewLoggingFetcher(fetcher, logger),
		Cleaner:      goquery.NewCleaner(),
		Summarizer:   goquery.NewSummarizer(),
		Inferrer:     locslog.NewLoggingInferrer(gemini.NewInferrer(client, cfg.Model), logger),
		Validator:    htmlquery.NewValidator(htmlquery.WithPreviewLen(cfg.PreviewLen)),
		HTTPGate:     extract.NewGate(int64(cfg.HTTPLimit)),
		LLMGate:      extract.NewGate(int64(cfg.LLMLimit)),
		Limiter:      limiter,
		FetchTimeout: cfg.FetchTimeout,
		LLMTimeout:   cfg.LLMTimeout,
		RetryDelays:  extract.BackoffDelays(cfg.RetryLimit),
	}
	return pipeline, fetcher.Close, nil
}

// openDB opens the history database and wires the run service.
func (m *Main) openDB(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LOCPICK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.RunService = sqlite.NewRunService(m.DB)
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("LOCPICK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "locpick.db"
	}
	dir := filepath.Join(home, ".locpick")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "locpick.db")
}
