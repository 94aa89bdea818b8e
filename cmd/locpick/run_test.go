package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/locpick"
	main "github.com/fwojciec/locpick/cmd/locpick"
	"github.com/fwojciec/locpick/extract"
	"github.com/fwojciec/locpick/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPipeline builds a pipeline whose collaborators produce a
// deterministic successful extraction without any network calls.
func stubPipeline() *extract.Pipeline {
	return &extract.Pipeline{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><h1>Title</h1></html>", nil
			},
		},
		Cleaner: &mock.Cleaner{
			CleanFn: func(html string) string { return html },
		},
		Summarizer: &mock.Summarizer{
			SummarizeFn: func(_ string) string { return "digest" },
		},
		Inferrer: &mock.Inferrer{
			InferFn: func(_ context.Context, _ string, fields []string) (locpick.Inference, error) {
				inf := locpick.Inference{}
				for _, f := range fields {
					inf[f] = locpick.InferredLocator{Expr: "//h1"}
				}
				return inf, nil
			},
		},
		Validator: &mock.Validator{
			ParseFn: func(_ string) (locpick.Page, error) {
				return &mock.Page{
					EvaluateFn: func(_ string) (locpick.Match, error) {
						return locpick.Match{Count: 1, Preview: "Title"}, nil
					},
				}, nil
			},
		},
	}
}

func TestRunCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes outcome to sink and prints summary", func(t *testing.T) {
		t.Parallel()

		var written *locpick.BatchOutcome
		sink := &mock.ResultSink{
			WriteFn: func(outcome *locpick.BatchOutcome) error {
				written = outcome
				return nil
			},
		}

		cfg := locpick.DefaultConfig()
		cfg.Fields = []string{"title", "body"}
		cfg.URLs = []string{"https://example.com/a", "https://example.com/b"}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Config: &cfg,
			Batch:  &extract.Batch{Pipeline: stubPipeline()},
			Sink:   sink,
		}

		cmd := &main.RunCmd{}
		err := cmd.Run(deps)
		require.NoError(t, err)

		require.NotNil(t, written)
		assert.Len(t, written.Results, 4)

		output := stdout.String()
		assert.Contains(t, output, "Processing 2 URLs x 2 fields")
		assert.Contains(t, output, "4 success, 0 failed, 0 error")
	})

	t.Run("records run in history when service is wired", func(t *testing.T) {
		t.Parallel()

		var created *locpick.Run
		runs := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *locpick.Run) error {
				run.ID = "run-123"
				created = run
				return nil
			},
		}

		cfg := locpick.DefaultConfig()
		cfg.Fields = []string{"title"}
		cfg.URLs = []string{"https://example.com/a"}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Config: &cfg,
			Batch:  &extract.Batch{Pipeline: stubPipeline()},
			Sink: &mock.ResultSink{
				WriteFn: func(*locpick.BatchOutcome) error { return nil },
			},
			Runs: runs,
		}

		cmd := &main.RunCmd{}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, created)
		assert.Equal(t, cfg.Model, created.Model)
		assert.Equal(t, []string{"title"}, created.Fields)
		assert.Equal(t, 1, created.URLCount)
		assert.Len(t, created.Results, 1)
		assert.Contains(t, stdout.String(), "Recorded run run-123")
	})

	t.Run("history failure is a warning, not an error", func(t *testing.T) {
		t.Parallel()

		cfg := locpick.DefaultConfig()
		cfg.Fields = []string{"title"}
		cfg.URLs = []string{"https://example.com/a"}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Config: &cfg,
			Batch:  &extract.Batch{Pipeline: stubPipeline()},
			Sink: &mock.ResultSink{
				WriteFn: func(*locpick.BatchOutcome) error { return nil },
			},
			Runs: &mock.RunService{
				CreateRunFn: func(_ context.Context, _ *locpick.Run) error {
					return locpick.Errorf(locpick.EINTERNAL, "disk full")
				},
			},
		}

		cmd := &main.RunCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "failed to record run")
	})

	t.Run("sink failure is an error", func(t *testing.T) {
		t.Parallel()

		cfg := locpick.DefaultConfig()
		cfg.Fields = []string{"title"}
		cfg.URLs = []string{"https://example.com/a"}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Config: &cfg,
			Batch:  &extract.Batch{Pipeline: stubPipeline()},
			Sink: &mock.ResultSink{
				WriteFn: func(*locpick.BatchOutcome) error {
					return locpick.Errorf(locpick.EINTERNAL, "write failed")
				},
			},
		}

		cmd := &main.RunCmd{}
		require.Error(t, cmd.Run(deps))
	})
}
