package locpick

import (
	"context"
	"time"
)

// Run is one persisted batch run: its parameters and the full ordered
// result set.
type Run struct {
	ID        string          `json:"id"`
	Model     string          `json:"model"`
	Fields    []string        `json:"fields"`
	URLCount  int             `json:"urlCount"`
	StartedAt time.Time       `json:"startedAt"`
	Elapsed   time.Duration   `json:"elapsed"`
	Results   []LocatorResult `json:"results"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Model == "" {
		return Errorf(EINVALID, "run model required")
	}
	if len(r.Fields) == 0 {
		return Errorf(EINVALID, "run fields required")
	}
	return nil
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int
	Limit  int
}

// RunService persists batch run history. It stores settled outcomes only,
// never pending work.
type RunService interface {
	// CreateRun saves a run and its result rows, assigning an ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run including its result rows.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first,
	// without their result rows.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}
