package locpick_test

import (
	"testing"
	"time"

	"github.com/fwojciec/locpick"
	"github.com/stretchr/testify/assert"
)

func TestBatchOutcome_Summarize(t *testing.T) {
	t.Parallel()

	outcome := &locpick.BatchOutcome{
		Results: []locpick.LocatorResult{
			{URL: "https://a.test", Field: "title", Status: locpick.StatusSuccess, Elapsed: 2 * time.Second},
			{URL: "https://a.test", Field: "body", Status: locpick.StatusFailed, Elapsed: 2 * time.Second},
			{URL: "https://b.test", Field: "title", Status: locpick.StatusError, Elapsed: 4 * time.Second},
			{URL: "https://b.test", Field: "body", Status: locpick.StatusError, Elapsed: 4 * time.Second},
		},
		Elapsed: 2 * time.Second,
	}

	s := outcome.Summarize()

	assert.Equal(t, 2, s.URLs)
	assert.Equal(t, 1, s.URLsErrored)
	assert.Equal(t, 4, s.Fields)
	assert.Equal(t, 1, s.FieldsSuccess)
	assert.Equal(t, 1, s.FieldsFailed)
	assert.Equal(t, 2, s.FieldsErrored)
	assert.Equal(t, 3*time.Second, s.AvgElapsed)
	assert.InDelta(t, 1.0, s.QPS, 0.001)
}

func TestBatchOutcome_Summarize_Empty(t *testing.T) {
	t.Parallel()

	s := (&locpick.BatchOutcome{}).Summarize()

	assert.Zero(t, s.URLs)
	assert.Zero(t, s.Fields)
	assert.Zero(t, s.AvgElapsed)
	assert.Zero(t, s.QPS)
}
