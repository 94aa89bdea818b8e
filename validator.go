package locpick

// Match is the outcome of evaluating one expression against a page.
type Match struct {
	// Count is the number of nodes the expression matched.
	Count int

	// Preview is the text content of the first matched node, truncated to
	// the validator's configured bound. Empty when Count is zero.
	Preview string
}

// Page is a parsed document against which candidate expressions are
// evaluated. A Page is parsed once per URL regardless of how many
// expressions are evaluated against it.
type Page interface {
	// Evaluate runs the expression against the parsed tree. Returns
	// EEXPRESSION when the expression is syntactically invalid or fails
	// to evaluate; this is captured per field, never propagated as a
	// task failure.
	Evaluate(expr string) (Match, error)
}

// Validator parses cleaned markup for expression evaluation.
type Validator interface {
	Parse(cleanedHTML string) (Page, error)
}
