package crawl

import "github.com/fwojciec/ampdocs"

// ContentDiffers compares content extracted from HTTP-fetched HTML against
// browser-rendered HTML. Returns true if the rendered content is significantly
// longer (>50%), suggesting JavaScript rendering adds meaningful content.
// Also returns true on extraction errors (assumes JS needed).
func ContentDiffers(httpHTML, renderedHTML string, extractor ampdocs.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML)
	if err != nil {
		return true // Assume JS needed on error
	}

	renderedResult, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true // Assume JS needed on error
	}

	httpLen := len(httpResult.ContentHTML)
	renderedLen := len(renderedResult.ContentHTML)

	// Handle empty HTTP content
	if httpLen == 0 && renderedLen > 0 {
		return true
	}

	// Check if rendered content is >50% longer
	threshold := float64(httpLen) * 1.5
	return float64(renderedLen) > threshold
}
