// Package rod provides a browser-based implementation of locpick.Fetcher
// for pages whose structure only exists after JavaScript runs. Locators
// inferred from rendered markup would never validate against a static
// fetch of such pages.
package rod

import (
	"context"

	"github.com/fwojciec/locpick"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements locpick.Fetcher at compile time.
var _ locpick.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using headless Chrome. Safe for
// concurrent use; each fetch runs in its own page.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// NewFetcher launches a headless Chrome browser. Close must be called
// when the Fetcher is no longer needed.
//
// Returns ENETWORK if Chrome/Chromium cannot be found or launched.
func NewFetcher() (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, locpick.Errorf(locpick.ENETWORK, "launch browser: %v", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, locpick.Errorf(locpick.ENETWORK, "connect to browser: %v", err)
	}

	return &Fetcher{browser: browser, launcher: l}, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns
// the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "open page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "navigate %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "wait for %s: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", locpick.Errorf(locpick.ENETWORK, "read rendered %s: %v", url, err)
	}
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
