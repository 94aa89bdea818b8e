package locpick

import "time"

// FieldStatus classifies the outcome of locating one field on one URL.
type FieldStatus string

const (
	// StatusSuccess means an expression was inferred and matched at least
	// one node.
	StatusSuccess FieldStatus = "success"

	// StatusFailed means the field could not be located on an otherwise
	// successfully processed page: the model omitted it, the expression
	// was invalid, or it matched nothing.
	StatusFailed FieldStatus = "failed"

	// StatusError means the whole task failed before validation: fetch or
	// inference exhausted its retries, or the run was canceled.
	StatusError FieldStatus = "error"
)

// LocatorResult is the outcome for one (URL, field) pair. Every requested
// pair yields exactly one LocatorResult, even on total task failure.
type LocatorResult struct {
	URL         string        `json:"url"`
	Field       string        `json:"field"`
	Expr        string        `json:"xpath"`
	Status      FieldStatus   `json:"status"`
	Preview     string        `json:"contentPreview"`
	MatchCount  int           `json:"matchCount"`
	Elapsed     time.Duration `json:"elapsed"`
	ErrorDetail string        `json:"errorDetail,omitempty"`

	// PageHash fingerprints the cleaned markup the locator was validated
	// against, so re-runs can spot pages whose content changed.
	PageHash string `json:"pageHash,omitempty"`
}

// BatchOutcome is the complete, order-preserving result set of a batch
// run. Results appear in URL submission order, then field request order,
// regardless of task completion order. Immutable once collected.
type BatchOutcome struct {
	Results   []LocatorResult `json:"results"`
	StartedAt time.Time       `json:"startedAt"`
	Elapsed   time.Duration   `json:"elapsed"`
}

// Summary aggregates a BatchOutcome for reporting.
type Summary struct {
	URLs          int
	URLsErrored   int
	Fields        int
	FieldsSuccess int
	FieldsFailed  int
	FieldsErrored int
	AvgElapsed    time.Duration
	QPS           float64
}

// Summarize computes per-run totals across all result rows.
func (o *BatchOutcome) Summarize() Summary {
	s := Summary{Fields: len(o.Results)}

	urls := make(map[string]bool)
	errored := make(map[string]bool)
	var totalElapsed time.Duration
	for _, r := range o.Results {
		if !urls[r.URL] {
			urls[r.URL] = true
			totalElapsed += r.Elapsed
		}
		switch r.Status {
		case StatusSuccess:
			s.FieldsSuccess++
		case StatusFailed:
			s.FieldsFailed++
		case StatusError:
			s.FieldsErrored++
			errored[r.URL] = true
		}
	}
	s.URLs = len(urls)
	s.URLsErrored = len(errored)
	if s.URLs > 0 {
		s.AvgElapsed = totalElapsed / time.Duration(s.URLs)
	}
	if o.Elapsed > 0 {
		s.QPS = float64(s.URLs) / o.Elapsed.Seconds()
	}
	return s
}

// ResultSink renders a collected BatchOutcome to its persisted tabular
// form. Consumed exactly once per batch run.
type ResultSink interface {
	Write(outcome *BatchOutcome) error
}
