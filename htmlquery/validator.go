// Package htmlquery provides XPath validation of inferred locators
// against parsed HTML documents.
package htmlquery

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/locpick"
	"golang.org/x/net/html"
)

// DefaultPreviewLen bounds the content preview of the first matched node.
const DefaultPreviewLen = 200

// Ensure interface compliance at compile time.
var (
	_ locpick.Validator = (*Validator)(nil)
	_ locpick.Page      = (*Page)(nil)
)

// Validator parses cleaned markup into a Page for expression evaluation.
// The document is parsed once per URL; every candidate expression is then
// evaluated against the same tree.
type Validator struct {
	previewLen int
}

// Option configures a Validator.
type Option func(*Validator)

// WithPreviewLen bounds the text preview recorded per match.
// Defaults to DefaultPreviewLen if not specified.
func WithPreviewLen(n int) Option {
	return func(v *Validator) {
		v.previewLen = n
	}
}

// NewValidator creates a new Validator.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{previewLen: DefaultPreviewLen}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Parse builds the document tree. HTML parsing is lenient: malformed
// markup yields a tree whose expressions simply match nothing.
func (v *Validator) Parse(cleanedHTML string) (locpick.Page, error) {
	doc, err := htmlquery.Parse(strings.NewReader(cleanedHTML))
	if err != nil {
		return nil, locpick.Errorf(locpick.EINTERNAL, "parse document: %v", err)
	}
	return &Page{doc: doc, previewLen: v.previewLen}, nil
}

// Page is a parsed document handle.
type Page struct {
	doc        *html.Node
	previewLen int
}

// Evaluate compiles and runs one expression against the tree, returning
// the match count and a bounded text preview of the first match.
// Expressions that fail to compile or evaluate return EEXPRESSION.
func (p *Page) Evaluate(expr string) (m locpick.Match, err error) {
	compiled, cerr := xpath.Compile(expr)
	if cerr != nil {
		return locpick.Match{}, locpick.Errorf(locpick.EEXPRESSION, "invalid expression %q: %v", expr, cerr)
	}

	// Some expressions that compile still fail during evaluation against
	// a particular tree; capture that per field as well.
	defer func() {
		if r := recover(); r != nil {
			m = locpick.Match{}
			err = locpick.Errorf(locpick.EEXPRESSION, "evaluate expression %q: %v", expr, r)
		}
	}()

	nodes := htmlquery.QuerySelectorAll(p.doc, compiled)
	if len(nodes) == 0 {
		return locpick.Match{}, nil
	}

	return locpick.Match{
		Count:   len(nodes),
		Preview: truncate(collapse(htmlquery.InnerText(nodes[0])), p.previewLen),
	}, nil
}

// collapse trims and folds runs of whitespace into single spaces.
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncate bounds text to max runes, appending an ellipsis when cut.
func truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
