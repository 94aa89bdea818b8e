package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locpick"
)

// Ensure LoggingInferrer implements locpick.Inferrer at compile time.
var _ locpick.Inferrer = (*LoggingInferrer)(nil)

// LoggingInferrer wraps an Inferrer with debug logging.
type LoggingInferrer struct {
	next   locpick.Inferrer
	logger *slog.Logger
}

// NewLoggingInferrer creates a new LoggingInferrer.
func NewLoggingInferrer(next locpick.Inferrer, logger *slog.Logger) *LoggingInferrer {
	return &LoggingInferrer{next: next, logger: logger}
}

// Infer delegates to the wrapped inferrer and logs the operation.
func (i *LoggingInferrer) Infer(ctx context.Context, digest string, fields []string) (inference locpick.Inference, err error) {
	defer func(begin time.Time) {
		i.logger.Debug("infer",
			"fields", len(fields),
			"digest_bytes", len(digest),
			"located", len(inference),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Infer(ctx, digest, fields)
}
