package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/locpick"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ locpick.RunService = (*RunService)(nil)

// RunService implements locpick.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun saves a run and its result rows, assigning an ID.
func (s *RunService) CreateRun(ctx context.Context, run *locpick.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, model, fields, url_count, started_at, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Model, strings.Join(run.Fields, ","), run.URLCount,
		run.StartedAt.UTC().Format(time.RFC3339), run.Elapsed.Milliseconds(),
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, r := range run.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_results (run_id, position, url, field, xpath, status, content_preview, match_count, elapsed_ms, error, page_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, r.URL, r.Field, r.Expr, string(r.Status), r.Preview,
			r.MatchCount, r.Elapsed.Milliseconds(), r.ErrorDetail, r.PageHash)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run including its result rows.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*locpick.Run, error) {
	var run locpick.Run
	var fields, startedAt, createdAt string
	var elapsedMS int64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, model, fields, url_count, started_at, elapsed_ms, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Model, &fields, &run.URLCount, &startedAt, &elapsedMS, &createdAt)

	if err == sql.ErrNoRows {
		return nil, locpick.Errorf(locpick.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Fields = splitFields(fields)
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, field, xpath, status, content_preview, match_count, elapsed_ms, error, page_hash
		FROM run_results
		WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r locpick.LocatorResult
		var status string
		var rowElapsedMS int64

		if err := rows.Scan(&r.URL, &r.Field, &r.Expr, &status, &r.Preview,
			&r.MatchCount, &rowElapsedMS, &r.ErrorDetail, &r.PageHash); err != nil {
			return nil, err
		}
		r.Status = locpick.FieldStatus(status)
		r.Elapsed = time.Duration(rowElapsedMS) * time.Millisecond
		run.Results = append(run.Results, r)
	}

	return &run, rows.Err()
}

// FindRuns retrieves runs matching the filter, most recent first, without
// their result rows.
func (s *RunService) FindRuns(ctx context.Context, filter locpick.RunFilter) ([]*locpick.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, model, fields, url_count, started_at, elapsed_ms, created_at
		FROM runs
		ORDER BY created_at DESC
	`)

	if filter.Limit > 0 || filter.Offset > 0 {
		// SQLite requires LIMIT before OFFSET; -1 means unlimited.
		limit := filter.Limit
		if limit == 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*locpick.Run
	for rows.Next() {
		var run locpick.Run
		var fields, startedAt, createdAt string
		var elapsedMS int64

		if err := rows.Scan(&run.ID, &run.Model, &fields, &run.URLCount,
			&startedAt, &elapsedMS, &createdAt); err != nil {
			return nil, err
		}

		run.Fields = splitFields(fields)
		run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func splitFields(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
