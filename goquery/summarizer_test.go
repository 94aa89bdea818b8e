package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/locpick/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("includes title and structural elements with attributes", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSummarizer()
		input := `<html><head><title>Page  Title</title></head><body>` +
			`<h1 class="headline">Big News</h1>` +
			`<div id="content" data-section="body"><p>Article text here</p></div>` +
			`</body></html>`

		digest := s.Summarize(input)

		assert.Contains(t, digest, "<title>Page Title</title>")
		assert.Contains(t, digest, `<h1 class="headline">Big News</h1>`)
		assert.Contains(t, digest, `id="content"`)
		assert.Contains(t, digest, `data-section="body"`)
	})

	t.Run("ignores attributes irrelevant to locators", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSummarizer()
		digest := s.Summarize(`<html><body><div style="color:red" onclick="x()">text</div></body></html>`)
		assert.NotContains(t, digest, "style=")
		assert.NotContains(t, digest, "onclick")
	})

	t.Run("bounds the number of elements", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 100; i++ {
			b.WriteString("<h2>heading</h2>")
		}
		b.WriteString("</body></html>")

		s := goquery.NewSummarizer(goquery.WithMaxNodes(5))
		digest := s.Summarize(b.String())
		assert.Equal(t, 5, strings.Count(digest, "<h2>"))
	})

	t.Run("truncates long element text", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSummarizer(goquery.WithMaxText(10))
		digest := s.Summarize(`<html><body><h1>` + strings.Repeat("x", 50) + `</h1></body></html>`)
		assert.Contains(t, digest, strings.Repeat("x", 10)+"...")
		assert.NotContains(t, digest, strings.Repeat("x", 11))
	})

	t.Run("truncation is rune-safe", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSummarizer(goquery.WithMaxText(3))
		digest := s.Summarize(`<html><body><h1>żółćżółć</h1></body></html>`)
		assert.Contains(t, digest, "żół...")
	})

	t.Run("empty input yields empty digest", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSummarizer()
		assert.Empty(t, s.Summarize(""))
	})

	t.Run("same input always yields the same digest", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSummarizer()
		input := `<html><head><title>T</title></head><body>` +
			`<div id="a" class="x y">one</div><div id="b">two</div></body></html>`

		first := s.Summarize(input)
		require.NotEmpty(t, first)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, s.Summarize(input))
		}
	})
}
