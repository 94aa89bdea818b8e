// Package http provides an HTTP-based implementation of locpick.Fetcher
// for fetching pages from sites that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/locpick"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultPoolSize is the default size of the pooled connection set shared
// by all concurrent fetches.
const DefaultPoolSize = 100

// DefaultUserAgent is sent with every request. Some sites refuse the Go
// default agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// Ensure Fetcher implements locpick.Fetcher at compile time.
var _ locpick.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML from URLs over a shared connection pool. Tasks
// check connections out for a single request and return them; the pool
// itself is released exactly once by Close, after all tasks settle.
type Fetcher struct {
	client    *http.Client
	transport *http.Transport
	timeout   time.Duration
	poolSize  int
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithPoolSize sets the size of the idle connection pool.
// Defaults to DefaultPoolSize if not specified.
func WithPoolSize(n int) Option {
	return func(f *Fetcher) {
		f.poolSize = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		poolSize:  DefaultPoolSize,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.transport = &http.Transport{
		MaxIdleConns:        f.poolSize,
		MaxIdleConnsPerHost: f.poolSize,
	}
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: f.transport,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Connection
// failures, non-2xx responses and timeouts return ENETWORK.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", locpick.Errorf(locpick.ENETWORK, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases the pooled connections. Safe to call more than once.
func (f *Fetcher) Close() error {
	f.transport.CloseIdleConnections()
	return nil
}
