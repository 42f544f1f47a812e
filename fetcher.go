package ampdocs

import "context"

// Fetcher retrieves HTML from URLs. Implementations range from plain
// HTTP requests to browser automation for JavaScript-rendered pages;
// the crawler probes the site once to pick the cheapest one that works.
type Fetcher interface {
	// Fetch retrieves the HTML served at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
