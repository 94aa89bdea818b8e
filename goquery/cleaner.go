// Package goquery provides HTML cleaning and structural summarization for
// the extraction pipeline.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/locpick"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements locpick.Cleaner at compile time.
var _ locpick.Cleaner = (*Cleaner)(nil)

// Cleaner strips script and style elements and comments from markup,
// leaving the rest of the document structure intact. Locators are later
// validated against the cleaned markup, so nothing beyond non-content
// nodes is removed.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean removes non-content markup. Malformed input that cannot be parsed
// yields an empty result; there is no error path.
func (c *Cleaner) Clean(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	doc.Find("script, style").Remove()
	for _, root := range doc.Nodes {
		removeComments(root)
	}

	out, err := doc.Html()
	if err != nil {
		return ""
	}
	return out
}

// removeComments prunes comment nodes from the parse tree in place.
func removeComments(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
		} else {
			removeComments(child)
		}
		child = next
	}
}
