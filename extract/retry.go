package extract

import (
	"context"
	"time"
)

// StepFunc is one attempt of a retryable pipeline step.
type StepFunc func(ctx context.Context) error

// BackoffDelays returns exponential backoff delays for n retries,
// starting at 1s: 1s, 2s, 4s, ...
func BackoffDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

// WithRetryDelays attempts a step with backoff retry logic. The step runs
// once, then once more per delay: len(delays)+1 total attempts. The retry
// backoff is awaited without holding any admission slot; step acquires and
// releases its own slots per attempt.
//
// Context cancellation stops retrying immediately and returns ctx.Err().
func WithRetryDelays(ctx context.Context, delays []time.Duration, step StepFunc) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := step(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
