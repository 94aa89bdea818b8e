package main

import (
	"fmt"

	"github.com/fwojciec/locpick"
)

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	page := deps.Pipeline.ExtractURL(deps.Ctx, c.URL, c.Fields)
	if page.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(page.Err))
		return page.Err
	}

	for _, r := range page.Results {
		switch r.Status {
		case locpick.StatusSuccess:
			fmt.Fprintf(deps.Stdout, "%s: %s (%d matches)\n", r.Field, r.Expr, r.MatchCount)
			if r.Preview != "" {
				fmt.Fprintf(deps.Stdout, "  %s\n", r.Preview)
			}
		default:
			fmt.Fprintf(deps.Stdout, "%s: failed (%s)\n", r.Field, r.ErrorDetail)
		}
	}
	fmt.Fprintf(deps.Stdout, "done in %.2fs (%d attempts, page hash %s)\n",
		page.Elapsed.Seconds(), page.Attempts, page.PageHash)

	return nil
}
