package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/locpick"
	"github.com/fwojciec/locpick/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied for absent keys", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.json", `{
			"target_elements": ["title", "body"],
			"urls": ["https://example.com/a"]
		}`)

		cfg, err := fs.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"title", "body"}, cfg.Fields)
		assert.Equal(t, []string{"https://example.com/a"}, cfg.URLs)
		assert.Equal(t, locpick.DefaultGlobalLimit, cfg.GlobalLimit)
		assert.Equal(t, locpick.DefaultHTTPLimit, cfg.HTTPLimit)
		assert.Equal(t, locpick.DefaultLLMLimit, cfg.LLMLimit)
		assert.Equal(t, locpick.DefaultFetchTimeout, cfg.FetchTimeout)
		assert.Equal(t, locpick.DefaultModel, cfg.Model)
		assert.Equal(t, locpick.DefaultOutputPath, cfg.OutputPath)
	})

	t.Run("explicit values override defaults", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.json", `{
			"target_elements": ["title"],
			"urls": ["https://example.com/a"],
			"max_global_concurrent": 8,
			"max_http_concurrent": 4,
			"max_llm_concurrent": 2,
			"request_timeout": 2.5,
			"llm_timeout": 90,
			"retry_count": 1,
			"batch_size": 3,
			"batch_rest_time": 0.2,
			"output_file": "out.csv",
			"model": "gemini-2.5-pro",
			"max_content_length": 80
		}`)

		cfg, err := fs.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 8, cfg.GlobalLimit)
		assert.Equal(t, 4, cfg.HTTPLimit)
		assert.Equal(t, 2, cfg.LLMLimit)
		assert.Equal(t, 2500*time.Millisecond, cfg.FetchTimeout)
		assert.Equal(t, 90*time.Second, cfg.LLMTimeout)
		assert.Equal(t, 1, cfg.RetryLimit)
		assert.Equal(t, 3, cfg.BatchSize)
		assert.Equal(t, 200*time.Millisecond, cfg.BatchRest)
		assert.Equal(t, "out.csv", cfg.OutputPath)
		assert.Equal(t, "gemini-2.5-pro", cfg.Model)
		assert.Equal(t, 80, cfg.PreviewLen)
	})

	t.Run("zero values are respected, not replaced by defaults", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.json", `{
			"target_elements": ["title"],
			"urls": ["https://example.com/a"],
			"retry_count": 0,
			"batch_size": 0,
			"batch_rest_time": 0
		}`)

		cfg, err := fs.LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, 0, cfg.RetryLimit)
		assert.Equal(t, 0, cfg.BatchSize)
		assert.Equal(t, time.Duration(0), cfg.BatchRest)
	})

	t.Run("merges urls_file and deduplicates preserving order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		urlsPath := filepath.Join(dir, "urls.txt")
		require.NoError(t, os.WriteFile(urlsPath, []byte(
			"https://example.com/b\n"+
				"# comment\n"+
				"\n"+
				"https://example.com/a\n"+
				"https://example.com/c\n"), 0644))
		configPath := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{
			"target_elements": ["title"],
			"urls": ["https://example.com/a", "https://example.com/b"],
			"urls_file": "urls.txt"
		}`), 0644))

		cfg, err := fs.LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"https://example.com/a",
			"https://example.com/b",
			"https://example.com/c",
		}, cfg.URLs)
	})

	t.Run("exclude_urls_file removes URLs", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "exclude.txt"),
			[]byte("https://example.com/b\n"), 0644))
		configPath := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{
			"target_elements": ["title"],
			"urls": ["https://example.com/a", "https://example.com/b", "https://example.com/c"],
			"exclude_urls_file": "exclude.txt"
		}`), 0644))

		cfg, err := fs.LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, []string{"https://example.com/a", "https://example.com/c"}, cfg.URLs)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := fs.LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		assert.Equal(t, locpick.EINVALID, locpick.ErrorCode(err))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.json", `{not json`)
		_, err := fs.LoadConfig(path)
		assert.Equal(t, locpick.EINVALID, locpick.ErrorCode(err))
	})
}

func TestLoadURLs_InvalidLine(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "urls.txt", "https://example.com/a\nnot-a-url\n")

	_, err := fs.LoadURLs(path)
	require.Error(t, err)
	assert.Equal(t, locpick.EINVALID, locpick.ErrorCode(err))
	assert.Contains(t, locpick.ErrorMessage(err), "not-a-url")
}

func TestWriteTemplate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, fs.WriteTemplate(path))

	cfg, err := fs.LoadConfig(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Fields)
	assert.NoError(t, cfg.Validate())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
