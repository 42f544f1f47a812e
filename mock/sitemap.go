package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of ampdocs.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *ampdocs.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *ampdocs.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
