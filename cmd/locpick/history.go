package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/locpick"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		return c.showRun(deps)
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, locpick.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'locpick run' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d URLs  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Model, r.URLCount,
			strings.Join(r.Fields, ","))
	}
	return nil
}

// showRun prints one run's header and result rows.
func (c *HistoryCmd) showRun(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s (%s, model %s, %d URLs, %s elapsed)\n",
		run.ID, run.CreatedAt.Format(time.RFC3339), run.Model, run.URLCount,
		run.Elapsed.Round(time.Millisecond))

	for _, r := range run.Results {
		switch r.Status {
		case locpick.StatusSuccess:
			fmt.Fprintf(deps.Stdout, "  %s  %s  %s  %d matches\n", r.URL, r.Field, r.Expr, r.MatchCount)
		default:
			fmt.Fprintf(deps.Stdout, "  %s  %s  %s: %s\n", r.URL, r.Field, r.Status, r.ErrorDetail)
		}
	}
	return nil
}
