package locpick

import "context"

// Fetcher retrieves raw HTML from URLs. A Fetcher performs a single
// retrieval per call and never retries internally; retries are the batch
// controller's responsibility.
//
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its markup.
	// The context controls timeout and cancellation. Connection failures,
	// non-2xx responses and exceeded timeouts return ENETWORK.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases pooled connections or browser resources exactly once.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
