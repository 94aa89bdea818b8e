package mock

import (
	"context"

	"github.com/fwojciec/locpick"
)

var _ locpick.Inferrer = (*Inferrer)(nil)

// Inferrer is a mock implementation of locpick.Inferrer.
type Inferrer struct {
	InferFn func(ctx context.Context, digest string, fields []string) (locpick.Inference, error)
}

func (i *Inferrer) Infer(ctx context.Context, digest string, fields []string) (locpick.Inference, error) {
	return i.InferFn(ctx, digest, fields)
}
