// Package rod provides a browser-based implementation of ampdocs.Fetcher
// for JavaScript-rendered documentation sites.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/ampdocs"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page fetch, including navigation
// and JavaScript execution. Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements ampdocs.Fetcher at compile time.
var _ ampdocs.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. The underlying browser is recycled periodically to bound
// Chrome's memory growth during long crawls.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
	closed  atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch call.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// serializeScript returns the rendered document as HTML including open
// shadow roots, which DOM.getOuterHTML omits. Sites built on Web
// Components keep their navigation links inside shadow DOM, and those
// links would otherwise be invisible to link extraction.
const serializeScript = `() => {
	if (!document.documentElement.getHTML) {
		return '<!DOCTYPE html>' + document.documentElement.outerHTML;
	}
	const collect = (root, acc) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				acc.push(el.shadowRoot);
				collect(el.shadowRoot, acc);
			}
		}
		return acc;
	};
	const roots = collect(document, []);
	return '<!DOCTYPE html>' + document.documentElement.getHTML({ shadowRoots: roots });
}`

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", ampdocs.Errorf(ampdocs.EINVALID, "fetcher is closed")
	}

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// Create a new page
	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	obj, err := page.Eval(serializeScript)
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()

	return obj.Value.Str(), nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
