package extract

import (
	"sync/atomic"
	"time"
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressBatchStarted
	ProgressCompleted
	ProgressErrored
	ProgressFinished
)

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Batch     int
	Batches   int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting batch progress. It may be
// invoked from multiple task goroutines; implementations that mutate
// shared state must synchronize.
type ProgressFunc func(event ProgressEvent)

// Tracker holds run counters readable from any observer while tasks run
// concurrently. The completed counter only increases.
type Tracker struct {
	total     int64
	started   time.Time
	completed atomic.Int64
	succeeded atomic.Int64
	errored   atomic.Int64
}

// NewTracker creates a Tracker for a run of total tasks, started now.
func NewTracker(total int) *Tracker {
	return &Tracker{total: int64(total), started: time.Now()}
}

// Observe records one settled task.
func (t *Tracker) Observe(errored bool) {
	t.completed.Add(1)
	if errored {
		t.errored.Add(1)
	} else {
		t.succeeded.Add(1)
	}
}

// Progress is a point-in-time snapshot of a running batch.
type Progress struct {
	Completed int
	Total     int
	Succeeded int
	Errored   int
	Elapsed   time.Duration
	QPS       float64
	ETA       time.Duration
}

// Snapshot returns the current counters. Safe to call concurrently with
// running tasks.
func (t *Tracker) Snapshot() Progress {
	completed := t.completed.Load()
	elapsed := time.Since(t.started)

	p := Progress{
		Completed: int(completed),
		Total:     int(t.total),
		Succeeded: int(t.succeeded.Load()),
		Errored:   int(t.errored.Load()),
		Elapsed:   elapsed,
	}
	if elapsed > 0 {
		p.QPS = float64(completed) / elapsed.Seconds()
	}
	if completed > 0 && t.total > completed {
		perTask := elapsed / time.Duration(completed)
		p.ETA = perTask * time.Duration(t.total-completed)
	}
	return p
}
