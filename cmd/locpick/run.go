package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/locpick"
	"github.com/fwojciec/locpick/extract"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d URLs x %d fields\n", event.Total, len(cfg.Fields))
		case extract.ProgressBatchStarted:
			if event.Batches > 1 {
				fmt.Fprintf(deps.Stdout, "Batch %d/%d\n", event.Batch, event.Batches)
			}
		case extract.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		case extract.ProgressErrored:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n",
				event.Completed, event.Total, event.URL, locpick.ErrorMessage(event.Error))
		}
	}

	outcome, err := deps.Batch.Run(deps.Ctx, cfg.URLs, cfg.Fields, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(err))
		return err
	}

	if err := deps.Sink.Write(outcome); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(err))
		return err
	}

	s := outcome.Summarize()
	fmt.Fprintf(deps.Stdout, "Wrote %d rows to %s\n", len(outcome.Results), cfg.OutputPath)
	fmt.Fprintf(deps.Stdout, "  %d success, %d failed, %d error across %d URLs (%d errored)\n",
		s.FieldsSuccess, s.FieldsFailed, s.FieldsErrored, s.URLs, s.URLsErrored)
	fmt.Fprintf(deps.Stdout, "  %s elapsed, %.2f URLs/s\n",
		outcome.Elapsed.Round(time.Millisecond), s.QPS)

	if deps.Runs != nil {
		run := &locpick.Run{
			Model:     cfg.Model,
			Fields:    cfg.Fields,
			URLCount:  len(cfg.URLs),
			StartedAt: outcome.StartedAt,
			Elapsed:   outcome.Elapsed,
			Results:   outcome.Results,
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			// History is best-effort; the CSV already holds the results.
			fmt.Fprintf(deps.Stderr, "warning: failed to record run: %s\n", locpick.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stdout, "Recorded run %s\n", run.ID)
		}
	}

	return nil
}
