package ampdocs

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML. Boilerplate
	// (nav, footer, sidebar) has been removed.
	ContentHTML string

	// Text is the main content as plain text, the form search terms
	// are matched against.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns ENOTFOUND when the page has no recognizable content
	// region, letting callers fall back to a different extractor.
	Extract(html string) (*ExtractResult, error)
}
