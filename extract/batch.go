package extract

import (
	"context"
	"time"

	"github.com/fwojciec/locpick"
	"golang.org/x/sync/errgroup"
)

// Batch drives many pipeline passes concurrently. Up to GlobalLimit tasks
// run at once; each task additionally contends for the pipeline's http
// gate while fetching and llm gate while inferring. A task holds its
// global slot while queued on either gate, but never holds a gate slot
// outside the guarded call.
type Batch struct {
	Pipeline *Pipeline

	// GlobalLimit bounds concurrently running tasks. Values below 1 mean
	// a default of 10.
	GlobalLimit int

	// BatchSize groups URLs into launch batches; a batch's tasks may all
	// launch before the previous batch settles, bounded always by
	// GlobalLimit. Zero disables grouping. BatchRest pauses between
	// batch launches.
	BatchSize int
	BatchRest time.Duration
}

// Run processes every URL and collects one result row per (URL, field)
// pair into a BatchOutcome ordered by URL submission position, then field
// request order. Task failures are recorded, never raised: the returned
// error is non-nil only for invalid arguments.
//
// Cancellation is cooperative: in-flight calls are aborted, pending tasks
// are not started, and the outcome still carries a row for every pair,
// with unfinished tasks recorded as canceled errors.
func (b *Batch) Run(ctx context.Context, urls, fields []string, progress ProgressFunc) (*locpick.BatchOutcome, error) {
	if b.Pipeline == nil {
		return nil, locpick.Errorf(locpick.EINTERNAL, "batch pipeline not configured")
	}
	if len(urls) == 0 {
		return nil, locpick.Errorf(locpick.EINVALID, "no URLs to process")
	}
	if len(fields) == 0 {
		return nil, locpick.Errorf(locpick.EINVALID, "no target fields")
	}

	limit := b.GlobalLimit
	if limit <= 0 {
		limit = 10
	}

	tracker := NewTracker(len(urls))
	batches := chunk(len(urls), b.BatchSize)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	}

	// Results are collected into a pre-sized slice indexed by submission
	// position, not appended on completion, to keep output deterministic
	// for a fixed URL list.
	pages := make([]*PageResult, len(urls))

	var g errgroup.Group
	g.SetLimit(limit)

	for bi, batch := range batches {
		if progress != nil {
			progress(ProgressEvent{
				Type:    ProgressBatchStarted,
				Batch:   bi + 1,
				Batches: len(batches),
				Total:   len(urls),
			})
		}

		for _, i := range batch {
			i := i
			g.Go(func() error {
				pages[i] = b.runTask(ctx, urls[i], fields)
				tracker.Observe(pages[i].Err != nil)
				if progress != nil {
					event := ProgressEvent{
						Type:      ProgressCompleted,
						Completed: tracker.Snapshot().Completed,
						Total:     len(urls),
						URL:       urls[i],
					}
					if pages[i].Err != nil {
						event.Type = ProgressErrored
						event.Error = pages[i].Err
					}
					progress(event)
				}
				return nil
			})
		}

		// Rest between batch launches. Cancellation skips the rest; the
		// remaining tasks settle as canceled.
		if b.BatchRest > 0 && bi < len(batches)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(b.BatchRest):
			}
		}
	}

	_ = g.Wait()

	outcome := &locpick.BatchOutcome{
		StartedAt: tracker.started,
		Elapsed:   tracker.Snapshot().Elapsed,
		Results:   make([]locpick.LocatorResult, 0, len(urls)*len(fields)),
	}
	for i, page := range pages {
		if page == nil {
			page = canceledPage(urls[i], fields)
		}
		outcome.Results = append(outcome.Results, page.Results...)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(urls), Total: len(urls)})
	}
	return outcome, nil
}

// runTask executes one task, short-circuiting tasks admitted after the
// run was canceled so they settle without starting the pipeline.
func (b *Batch) runTask(ctx context.Context, url string, fields []string) *PageResult {
	if ctx.Err() != nil {
		return canceledPage(url, fields)
	}
	return b.Pipeline.ExtractURL(ctx, url, fields)
}

// canceledPage settles a never-started task with canceled rows.
func canceledPage(url string, fields []string) *PageResult {
	res := &PageResult{URL: url}
	return res.settle(fields, time.Now(), locpick.Errorf(locpick.ECANCELED, "canceled"))
}

// chunk splits n positions into batches of size, preserving submission
// order. Non-positive size yields a single batch.
func chunk(n, size int) [][]int {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	if size <= 0 {
		return [][]int{all}
	}
	var batches [][]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		batches = append(batches, all[start:end])
	}
	return batches
}
