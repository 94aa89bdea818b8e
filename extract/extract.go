// Package extract runs the locator extraction pipeline: fetch, clean,
// summarize, infer, validate, record. Pipeline processes one URL; Batch
// drives many Pipeline passes concurrently under layered admission gates.
package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/locpick"
)

// Pipeline composes the per-URL extraction sequence from its collaborator
// contracts. The batch controller holds a Pipeline by reference; it has no
// state a caller depends on beyond these declared fields.
type Pipeline struct {
	Fetcher    locpick.Fetcher
	Cleaner    locpick.Cleaner
	Summarizer locpick.Summarizer
	Inferrer   locpick.Inferrer
	Validator  locpick.Validator

	// HTTPGate bounds concurrent fetches, LLMGate concurrent model calls.
	// Nil gates admit immediately. Each attempt acquires its gate
	// immediately before the call and releases it immediately after, so a
	// slow model call never starves fetch concurrency and vice versa.
	HTTPGate *Gate
	LLMGate  *Gate

	// Limiter paces fetches per domain. Nil disables pacing.
	Limiter *DomainLimiter

	// Per-attempt timeout budgets. Exceeding one counts as a failure of
	// that step for retry purposes, not a separate error class.
	FetchTimeout time.Duration
	LLMTimeout   time.Duration

	// RetryDelays are the backoff delays between attempts of each
	// network-bound step; a step is attempted len(RetryDelays)+1 times.
	// Cleaning and validation are local and never retried.
	RetryDelays []time.Duration
}

// PageResult is the settled outcome of one URL: exactly one LocatorResult
// per requested field, whether the task completed or errored.
type PageResult struct {
	URL     string
	Results []locpick.LocatorResult

	// PageHash fingerprints the cleaned markup. Empty when fetch failed.
	PageHash string

	// Attempts counts fetch and inference attempts performed.
	Attempts int

	Elapsed time.Duration

	// Err is the terminal task error when fetch or inference exhausted
	// its retries. Nil for completed tasks, including those with failed
	// fields.
	Err error
}

// ExtractURL runs the pipeline for one URL. It always returns a
// PageResult carrying len(fields) results; a task-level failure is
// recorded in every row rather than raised.
func (p *Pipeline) ExtractURL(ctx context.Context, url string, fields []string) *PageResult {
	start := time.Now()
	res := &PageResult{URL: url}

	// Fetch under the http gate, paced per domain, with retry.
	var raw string
	err := WithRetryDelays(ctx, p.RetryDelays, func(ctx context.Context) error {
		res.Attempts++
		if err := p.Limiter.Wait(ctx, url); err != nil {
			return err
		}
		if err := p.HTTPGate.Acquire(ctx); err != nil {
			return err
		}
		defer p.HTTPGate.Release()

		fctx := ctx
		if p.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, p.FetchTimeout)
			defer cancel()
		}
		html, err := p.Fetcher.Fetch(fctx, url)
		if err != nil {
			return networkError(url, err)
		}
		raw = html
		return nil
	})
	if err != nil {
		return res.settle(fields, start, taskError(ctx, err))
	}

	// Clean and summarize are local steps with no failure path.
	cleaned := p.Cleaner.Clean(raw)
	res.PageHash = fmt.Sprintf("%x", xxhash.Sum64String(cleaned))
	digest := p.Summarizer.Summarize(cleaned)

	// Infer under the llm gate, with retry.
	var inference locpick.Inference
	err = WithRetryDelays(ctx, p.RetryDelays, func(ctx context.Context) error {
		res.Attempts++
		if err := p.LLMGate.Acquire(ctx); err != nil {
			return err
		}
		defer p.LLMGate.Release()

		ictx := ctx
		if p.LLMTimeout > 0 {
			var cancel context.CancelFunc
			ictx, cancel = context.WithTimeout(ctx, p.LLMTimeout)
			defer cancel()
		}
		got, err := p.Inferrer.Infer(ictx, digest, fields)
		if err != nil {
			return inferenceError(url, err)
		}
		inference = got
		return nil
	})
	if err != nil {
		return res.settle(fields, start, taskError(ctx, err))
	}

	// Validate: parse once per URL, evaluate per field.
	page, parseErr := p.Validator.Parse(cleaned)
	res.Elapsed = time.Since(start)
	for _, field := range fields {
		res.Results = append(res.Results, p.validateField(page, parseErr, url, field, inference, res))
	}
	return res
}

// validateField produces the row for one field of a completed task.
// Absent expressions, invalid expressions and zero matches are failed
// fields, not task errors.
func (p *Pipeline) validateField(page locpick.Page, parseErr error, url, field string, inference locpick.Inference, res *PageResult) locpick.LocatorResult {
	r := locpick.LocatorResult{
		URL:      url,
		Field:    field,
		Status:   locpick.StatusFailed,
		Elapsed:  res.Elapsed,
		PageHash: res.PageHash,
	}

	loc, ok := inference[field]
	switch {
	case !ok:
		r.ErrorDetail = "no locator inferred"
	case loc.Conflict:
		r.ErrorDetail = "conflicting locators returned"
	case parseErr != nil:
		r.Expr = loc.Expr
		r.ErrorDetail = locpick.ErrorMessage(parseErr)
	default:
		r.Expr = loc.Expr
		m, err := page.Evaluate(loc.Expr)
		if err != nil {
			r.ErrorDetail = locpick.ErrorMessage(err)
		} else if m.Count > 0 {
			r.Status = locpick.StatusSuccess
			r.MatchCount = m.Count
			r.Preview = m.Preview
		}
	}
	return r
}

// settle records a terminal task error in every requested field's row.
func (res *PageResult) settle(fields []string, start time.Time, err error) *PageResult {
	res.Err = err
	res.Elapsed = time.Since(start)
	detail := locpick.ErrorMessage(err)
	for _, field := range fields {
		res.Results = append(res.Results, locpick.LocatorResult{
			URL:         res.URL,
			Field:       field,
			Status:      locpick.StatusError,
			Elapsed:     res.Elapsed,
			ErrorDetail: detail,
			PageHash:    res.PageHash,
		})
	}
	return res
}

// networkError coerces a fetch failure into the network error class,
// preserving application errors from the fetcher.
func networkError(url string, err error) error {
	if locpick.ErrorCode(err) == locpick.ENETWORK {
		return err
	}
	return locpick.Errorf(locpick.ENETWORK, "fetch %s: %v", url, err)
}

// inferenceError coerces a model call failure into the inference error
// class, preserving application errors from the inferrer.
func inferenceError(url string, err error) error {
	if locpick.ErrorCode(err) == locpick.EINFERENCE {
		return err
	}
	return locpick.Errorf(locpick.EINFERENCE, "infer %s: %v", url, err)
}

// taskError classifies a step failure, distinguishing cancellation of the
// run from exhaustion of the step's retries.
func taskError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return locpick.Errorf(locpick.ECANCELED, "canceled")
	}
	return err
}
