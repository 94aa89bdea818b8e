package extract

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate is a counting semaphore bounding concurrent entry to one class of
// operation (an admission gate). Slots are acquired immediately before and
// released immediately after the guarded call, so a task never holds a
// gate slot while idle in another state.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate creates a Gate admitting up to n holders at once.
func NewGate(n int64) *Gate {
	return &Gate{sem: semaphore.NewWeighted(n)}
}

// Acquire blocks until a slot is available or the context is done.
func (g *Gate) Acquire(ctx context.Context) error {
	if g == nil {
		return ctx.Err()
	}
	return g.sem.Acquire(ctx, 1)
}

// Release returns a previously acquired slot.
func (g *Gate) Release() {
	if g == nil {
		return
	}
	g.sem.Release(1)
}
