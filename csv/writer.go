// Package csv renders a collected BatchOutcome as a CSV file, one row per
// (URL, field) pair.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fwojciec/locpick"
)

// Ensure Writer implements locpick.ResultSink at compile time.
var _ locpick.ResultSink = (*Writer)(nil)

// Writer writes batch outcomes to a CSV file.
type Writer struct {
	path string
}

// NewWriter creates a Writer that writes to the given path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// header is the fixed column contract.
var header = []string{
	"url",
	"field",
	"xpath",
	"status",
	"content_preview",
	"match_count",
	"elapsed_seconds",
	"error",
}

// Write renders the outcome. The file is created or truncated; partial
// files from a failed write are not cleaned up.
func (w *Writer) Write(outcome *locpick.BatchOutcome) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range outcome.Results {
		row := []string{
			r.URL,
			r.Field,
			r.Expr,
			string(r.Status),
			r.Preview,
			strconv.Itoa(r.MatchCount),
			strconv.FormatFloat(r.Elapsed.Seconds(), 'f', 2, 64),
			r.ErrorDetail,
		}
		if err := cw.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write row for %s/%s: %w", r.URL, r.Field, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", w.path, err)
	}
	return f.Close()
}
