package locpick

import (
	"net/url"
	"time"
)

// Default configuration values, applied by DefaultConfig and by the
// config file loader for absent keys.
const (
	DefaultGlobalLimit  = 50
	DefaultHTTPLimit    = 20
	DefaultLLMLimit     = 5
	DefaultFetchTimeout = 30 * time.Second
	DefaultLLMTimeout   = 60 * time.Second
	DefaultRetryLimit   = 3
	DefaultBatchSize    = 10
	DefaultBatchRest    = 100 * time.Millisecond
	DefaultPreviewLen   = 200
	DefaultOutputPath   = "batch_results.csv"
	DefaultModel        = "gemini-2.5-flash"
)

// Config is the validated configuration a batch run consumes. The core
// operates on this plain struct; file parsing lives in fs/.
type Config struct {
	// Fields are the content roles to locate on every URL. The set is
	// fixed for the whole run; order is preserved for reporting.
	Fields []string

	// URLs is the deduplicated submission-ordered URL list.
	URLs []string

	// Admission gates. A task holds its global slot for its lifetime and
	// contends for the http and llm slots only around the corresponding
	// network calls.
	GlobalLimit int
	HTTPLimit   int
	LLMLimit    int

	// Per-attempt timeout budgets for the two network-bound steps.
	FetchTimeout time.Duration
	LLMTimeout   time.Duration

	// RetryLimit is the number of retries after the first attempt; a step
	// that always fails is attempted RetryLimit+1 times.
	RetryLimit int

	// BatchSize groups URLs for launch and observability. Zero disables
	// grouping. BatchRest pauses between batch launches.
	BatchSize int
	BatchRest time.Duration

	// OutputPath is where the result sink writes the tabular outcome.
	OutputPath string

	// Model identifies the reasoning model to use.
	Model string

	// PreviewLen bounds the content preview recorded per match.
	PreviewLen int

	// RatePerDomain caps fetches per second per domain. Zero disables
	// domain rate limiting.
	RatePerDomain float64
}

// DefaultConfig returns a Config with defaults applied and no fields or
// URLs.
func DefaultConfig() Config {
	return Config{
		GlobalLimit:  DefaultGlobalLimit,
		HTTPLimit:    DefaultHTTPLimit,
		LLMLimit:     DefaultLLMLimit,
		FetchTimeout: DefaultFetchTimeout,
		LLMTimeout:   DefaultLLMTimeout,
		RetryLimit:   DefaultRetryLimit,
		BatchSize:    DefaultBatchSize,
		BatchRest:    DefaultBatchRest,
		PreviewLen:   DefaultPreviewLen,
		OutputPath:   DefaultOutputPath,
		Model:        DefaultModel,
	}
}

// Validate returns EINVALID if the configuration cannot start a batch
// run. Called before any task is scheduled; a validation failure aborts
// the whole run.
func (c *Config) Validate() error {
	if len(c.Fields) == 0 {
		return Errorf(EINVALID, "at least one target field required")
	}
	for _, f := range c.Fields {
		if f == "" {
			return Errorf(EINVALID, "target field names must not be empty")
		}
	}
	if len(c.URLs) == 0 {
		return Errorf(EINVALID, "at least one URL required")
	}
	for _, raw := range c.URLs {
		if !ValidURL(raw) {
			return Errorf(EINVALID, "invalid URL %q", raw)
		}
	}
	if c.GlobalLimit < 1 {
		return Errorf(EINVALID, "global concurrency must be at least 1, got %d", c.GlobalLimit)
	}
	if c.HTTPLimit < 1 {
		return Errorf(EINVALID, "http concurrency must be at least 1, got %d", c.HTTPLimit)
	}
	if c.LLMLimit < 1 {
		return Errorf(EINVALID, "llm concurrency must be at least 1, got %d", c.LLMLimit)
	}
	if c.FetchTimeout <= 0 {
		return Errorf(EINVALID, "fetch timeout must be positive")
	}
	if c.LLMTimeout <= 0 {
		return Errorf(EINVALID, "llm timeout must be positive")
	}
	if c.RetryLimit < 0 {
		return Errorf(EINVALID, "retry limit must not be negative, got %d", c.RetryLimit)
	}
	if c.BatchSize < 0 {
		return Errorf(EINVALID, "batch size must not be negative, got %d", c.BatchSize)
	}
	if c.PreviewLen < 0 {
		return Errorf(EINVALID, "preview length must not be negative, got %d", c.PreviewLen)
	}
	if c.OutputPath == "" {
		return Errorf(EINVALID, "output path required")
	}
	if c.Model == "" {
		return Errorf(EINVALID, "model identifier required")
	}
	return nil
}

// ValidURL reports whether raw is an absolute URL with a scheme and host.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
