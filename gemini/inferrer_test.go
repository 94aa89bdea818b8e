package gemini_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/locpick"
	"github.com/fwojciec/locpick/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInference(t *testing.T) {
	t.Parallel()

	fields := []string{"title", "body", "author"}

	t.Run("parses a complete response", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{
			"title": "//h1",
			"body": "//div[@id='content']",
			"author": "//span[@class='byline']"
		}`, fields)
		require.NoError(t, err)

		assert.Equal(t, locpick.Inference{
			"title":  {Expr: "//h1"},
			"body":   {Expr: "//div[@id='content']"},
			"author": {Expr: "//span[@class='byline']"},
		}, inf)
	})

	t.Run("null marks a field as not locatable", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": "//h1", "body": null}`, fields)
		require.NoError(t, err)

		assert.Equal(t, locpick.Inference{"title": {Expr: "//h1"}}, inf)
		_, ok := inf["body"]
		assert.False(t, ok)
	})

	t.Run("omitted fields are absent, not an error", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": "//h1"}`, fields)
		require.NoError(t, err)
		assert.Len(t, inf, 1)
	})

	t.Run("unrequested fields are dropped", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": "//h1", "sidebar": "//aside"}`, fields)
		require.NoError(t, err)
		assert.Len(t, inf, 1)
		_, ok := inf["sidebar"]
		assert.False(t, ok)
	})

	t.Run("duplicate key with different expressions is a conflict", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": "//h1", "title": "//h2"}`, fields)
		require.NoError(t, err)
		assert.Equal(t, locpick.InferredLocator{Conflict: true}, inf["title"])
	})

	t.Run("duplicate key with the same expression is not a conflict", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": "//h1", "title": "//h1"}`, fields)
		require.NoError(t, err)
		assert.Equal(t, locpick.InferredLocator{Expr: "//h1"}, inf["title"])
	})

	t.Run("null then expression for the same key is a conflict", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": null, "title": "//h1"}`, fields)
		require.NoError(t, err)
		assert.Equal(t, locpick.InferredLocator{Conflict: true}, inf["title"])
	})

	t.Run("object wrapped in fences or prose is recovered", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference("```json\n{\"title\": \"//h1\"}\n```", fields)
		require.NoError(t, err)
		assert.Equal(t, locpick.Inference{"title": {Expr: "//h1"}}, inf)

		inf, err = gemini.ParseInference(`Here you go: {"title": "//h1"} hope it helps`, fields)
		require.NoError(t, err)
		assert.Equal(t, locpick.Inference{"title": {Expr: "//h1"}}, inf)
	})

	t.Run("rejects non-object responses", func(t *testing.T) {
		t.Parallel()

		for _, payload := range []string{
			``,
			`"just a string"`,
			`["//h1"]`,
			`{"title": ["//h1"]}`,
			`{"title": 42}`,
			`{"title": {"nested": "//h1"}}`,
		} {
			_, err := gemini.ParseInference(payload, fields)
			require.Error(t, err, "payload %q should be rejected", payload)
			assert.Equal(t, locpick.EINFERENCE, locpick.ErrorCode(err))
		}
	})

	t.Run("rejects a truncated object", func(t *testing.T) {
		t.Parallel()

		_, err := gemini.ParseInference(`{"title": "//h1"`, fields)
		require.Error(t, err)
		assert.Equal(t, locpick.EINFERENCE, locpick.ErrorCode(err))
	})

	t.Run("trims expression whitespace", func(t *testing.T) {
		t.Parallel()

		inf, err := gemini.ParseInference(`{"title": "  //h1  "}`, fields)
		require.NoError(t, err)
		assert.Equal(t, "//h1", inf["title"].Expr)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("<title>T</title>", []string{"title", "body"})

	assert.Contains(t, prompt, "<title>T</title>")
	assert.Contains(t, prompt, "title, body")
	assert.Contains(t, prompt, "JSON object")
	assert.True(t, strings.Contains(prompt, "null"), "prompt should explain the null marker")
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, float64(*config.Temperature), 0.001)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.SystemInstruction)
}
