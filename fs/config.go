// Package fs provides file-based configuration and URL-list loading.
// The core pipeline consumes a validated locpick.Config; this package
// owns the JSON file format and the newline-delimited URL files.
package fs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/locpick"
)

// fileConfig is the on-disk JSON shape. Durations are plain seconds,
// matching the values operators think in.
type fileConfig struct {
	TargetElements []string `json:"target_elements"`
	URLs           []string `json:"urls"`
	URLsFile       string   `json:"urls_file,omitempty"`
	ExcludeFile    string   `json:"exclude_urls_file,omitempty"`

	MaxGlobalConcurrent *int     `json:"max_global_concurrent,omitempty"`
	MaxHTTPConcurrent   *int     `json:"max_http_concurrent,omitempty"`
	MaxLLMConcurrent    *int     `json:"max_llm_concurrent,omitempty"`
	RequestTimeoutSecs  *float64 `json:"request_timeout,omitempty"`
	LLMTimeoutSecs      *float64 `json:"llm_timeout,omitempty"`
	RetryCount          *int     `json:"retry_count,omitempty"`
	BatchSize           *int     `json:"batch_size,omitempty"`
	BatchRestSecs       *float64 `json:"batch_rest_time,omitempty"`
	OutputFile          string   `json:"output_file,omitempty"`
	Model               string   `json:"model,omitempty"`
	MaxContentLength    *int     `json:"max_content_length,omitempty"`
	RatePerDomain       *float64 `json:"rate_per_domain,omitempty"`
}

// LoadConfig reads and normalizes a JSON config file: defaults are
// applied for absent keys, URL files are merged and exclusions removed,
// and the URL list is deduplicated preserving first-seen order. The
// returned config has not been validated; callers run Config.Validate
// before starting a run.
//
// Returns EINVALID for unreadable or malformed files.
func LoadConfig(path string) (*locpick.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, locpick.Errorf(locpick.EINVALID, "read config %s: %v", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, locpick.Errorf(locpick.EINVALID, "parse config %s: %v", path, err)
	}

	cfg := locpick.DefaultConfig()
	cfg.Fields = fc.TargetElements
	if fc.MaxGlobalConcurrent != nil {
		cfg.GlobalLimit = *fc.MaxGlobalConcurrent
	}
	if fc.MaxHTTPConcurrent != nil {
		cfg.HTTPLimit = *fc.MaxHTTPConcurrent
	}
	if fc.MaxLLMConcurrent != nil {
		cfg.LLMLimit = *fc.MaxLLMConcurrent
	}
	if fc.RequestTimeoutSecs != nil {
		cfg.FetchTimeout = seconds(*fc.RequestTimeoutSecs)
	}
	if fc.LLMTimeoutSecs != nil {
		cfg.LLMTimeout = seconds(*fc.LLMTimeoutSecs)
	}
	if fc.RetryCount != nil {
		cfg.RetryLimit = *fc.RetryCount
	}
	if fc.BatchSize != nil {
		cfg.BatchSize = *fc.BatchSize
	}
	if fc.BatchRestSecs != nil {
		cfg.BatchRest = seconds(*fc.BatchRestSecs)
	}
	if fc.OutputFile != "" {
		cfg.OutputPath = fc.OutputFile
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if fc.MaxContentLength != nil {
		cfg.PreviewLen = *fc.MaxContentLength
	}
	if fc.RatePerDomain != nil {
		cfg.RatePerDomain = *fc.RatePerDomain
	}

	urls := append([]string(nil), fc.URLs...)
	if fc.URLsFile != "" {
		fromFile, err := LoadURLs(resolve(path, fc.URLsFile))
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}

	exclude := make(map[string]bool)
	if fc.ExcludeFile != "" {
		excluded, err := LoadURLs(resolve(path, fc.ExcludeFile))
		if err != nil {
			return nil, err
		}
		for _, u := range excluded {
			exclude[u] = true
		}
	}

	cfg.URLs = dedupe(urls, exclude)
	return &cfg, nil
}

// LoadURLs reads a newline-delimited URL file. Blank lines and lines
// starting with # are skipped; lines that are not absolute URLs return
// EINVALID with the offending line number.
func LoadURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, locpick.Errorf(locpick.EINVALID, "read URL file %s: %v", path, err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !locpick.ValidURL(line) {
			return nil, locpick.Errorf(locpick.EINVALID, "%s:%d: invalid URL %q", path, lineNum, line)
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, locpick.Errorf(locpick.EINVALID, "read URL file %s: %v", path, err)
	}
	return urls, nil
}

// WriteTemplate writes a starter config file to path.
func WriteTemplate(path string) error {
	template := map[string]any{
		"target_elements":       []string{"title", "body", "author", "published"},
		"urls":                  []string{"https://example.com/article1", "https://example.com/article2"},
		"max_global_concurrent": locpick.DefaultGlobalLimit,
		"max_http_concurrent":   locpick.DefaultHTTPLimit,
		"max_llm_concurrent":    locpick.DefaultLLMLimit,
		"request_timeout":       locpick.DefaultFetchTimeout.Seconds(),
		"llm_timeout":           locpick.DefaultLLMTimeout.Seconds(),
		"retry_count":           locpick.DefaultRetryLimit,
		"batch_size":            locpick.DefaultBatchSize,
		"batch_rest_time":       locpick.DefaultBatchRest.Seconds(),
		"output_file":           locpick.DefaultOutputPath,
		"model":                 locpick.DefaultModel,
		"max_content_length":    locpick.DefaultPreviewLen,
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// resolve makes ref relative to the config file's directory unless it is
// already absolute.
func resolve(configPath, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(configPath), ref)
}

// dedupe removes excluded and repeated URLs, preserving first-seen order.
func dedupe(urls []string, exclude map[string]bool) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if seen[u] || exclude[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
