package mock

import (
	"context"

	"github.com/fwojciec/locpick"
)

var _ locpick.RunService = (*RunService)(nil)

// RunService is a mock implementation of locpick.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *locpick.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*locpick.Run, error)
	FindRunsFn    func(ctx context.Context, filter locpick.RunFilter) ([]*locpick.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *locpick.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*locpick.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter locpick.RunFilter) ([]*locpick.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
