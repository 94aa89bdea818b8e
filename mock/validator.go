package mock

import "github.com/fwojciec/locpick"

var _ locpick.Validator = (*Validator)(nil)

// Validator is a mock implementation of locpick.Validator.
type Validator struct {
	ParseFn func(cleanedHTML string) (locpick.Page, error)
}

func (v *Validator) Parse(cleanedHTML string) (locpick.Page, error) {
	return v.ParseFn(cleanedHTML)
}

var _ locpick.Page = (*Page)(nil)

// Page is a mock implementation of locpick.Page.
type Page struct {
	EvaluateFn func(expr string) (locpick.Match, error)
}

func (p *Page) Evaluate(expr string) (locpick.Match, error) {
	return p.EvaluateFn(expr)
}
