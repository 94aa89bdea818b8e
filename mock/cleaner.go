package mock

import "github.com/fwojciec/locpick"

var _ locpick.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of locpick.Cleaner.
type Cleaner struct {
	CleanFn func(html string) string
}

func (c *Cleaner) Clean(html string) string {
	return c.CleanFn(html)
}

var _ locpick.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of locpick.Summarizer.
type Summarizer struct {
	SummarizeFn func(cleanedHTML string) string
}

func (s *Summarizer) Summarize(cleanedHTML string) string {
	return s.SummarizeFn(cleanedHTML)
}
