package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of ampdocs.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, opts ampdocs.SearchOptions) (*ampdocs.SearchResponse, error)
}

func (s *SearchService) Search(ctx context.Context, query string, opts ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
	return s.SearchFn(ctx, query, opts)
}
