package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/locpick"
)

// Default digest bounds: how many structural nodes to include and how
// much of each node's text to keep.
const (
	DefaultMaxNodes = 50
	DefaultMaxText  = 100
)

// summaryTags are the elements that carry page structure worth showing to
// the model: headings plus the common content containers.
const summaryTags = "h1, h2, h3, article, main, div"

var whitespace = regexp.MustCompile(`\s+`)

// Ensure Summarizer implements locpick.Summarizer at compile time.
var _ locpick.Summarizer = (*Summarizer)(nil)

// Summarizer reduces cleaned markup to a bounded structural digest: the
// page title followed by up to maxNodes structural elements with their
// id/class/data-* attributes and truncated text. The digest is
// deterministic for a given input.
type Summarizer struct {
	maxNodes int
	maxText  int
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithMaxNodes bounds how many structural elements the digest includes.
func WithMaxNodes(n int) Option {
	return func(s *Summarizer) {
		s.maxNodes = n
	}
}

// WithMaxText bounds the text kept per element.
func WithMaxText(n int) Option {
	return func(s *Summarizer) {
		s.maxText = n
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(opts ...Option) *Summarizer {
	s := &Summarizer{
		maxNodes: DefaultMaxNodes,
		maxText:  DefaultMaxText,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces the structural digest. Malformed or empty input
// yields an empty digest.
func (s *Summarizer) Summarize(cleanedHTML string) string {
	if strings.TrimSpace(cleanedHTML) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanedHTML))
	if err != nil {
		return ""
	}

	var lines []string

	if title := collapse(doc.Find("title").First().Text()); title != "" {
		lines = append(lines, "<title>"+title+"</title>")
	}

	count := 0
	doc.Find(summaryTags).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if count >= s.maxNodes {
			return false
		}
		count++
		lines = append(lines, s.summarizeNode(sel))
		return true
	})

	return strings.Join(lines, "\n")
}

// summarizeNode renders one element as an opening tag with its locator-
// relevant attributes, truncated text, and a closing tag.
func (s *Summarizer) summarizeNode(sel *goquery.Selection) string {
	tag := goquery.NodeName(sel)

	var b strings.Builder
	b.WriteString("<" + tag)
	for _, attr := range sel.Nodes[0].Attr {
		if attr.Key == "id" || attr.Key == "class" || strings.HasPrefix(attr.Key, "data-") {
			fmt.Fprintf(&b, " %s=%q", attr.Key, attr.Val)
		}
	}
	b.WriteString(">")

	if text := collapse(sel.Text()); text != "" {
		if runes := []rune(text); len(runes) > s.maxText {
			b.WriteString(string(runes[:s.maxText]))
			b.WriteString("...")
		} else {
			b.WriteString(text)
		}
	}

	b.WriteString("</" + tag + ">")
	return b.String()
}

// collapse trims and folds runs of whitespace into single spaces.
func collapse(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}
