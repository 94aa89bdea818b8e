package mock

import "github.com/fwojciec/locpick"

var _ locpick.ResultSink = (*ResultSink)(nil)

// ResultSink is a mock implementation of locpick.ResultSink.
type ResultSink struct {
	WriteFn func(outcome *locpick.BatchOutcome) error
}

func (s *ResultSink) Write(outcome *locpick.BatchOutcome) error {
	return s.WriteFn(outcome)
}
