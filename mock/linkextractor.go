package mock

import "github.com/fwojciec/ampdocs"

var _ ampdocs.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of ampdocs.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]ampdocs.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]ampdocs.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
