package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ampdocs"
)

// Ensure LoggingSearchService implements ampdocs.SearchService.
var _ ampdocs.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   ampdocs.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next ampdocs.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, query string, opts ampdocs.SearchOptions) (resp *ampdocs.SearchResponse, err error) {
	defer func(begin time.Time) {
		results := 0
		intent := ampdocs.Intent("")
		if resp != nil {
			results = len(resp.Results)
			intent = resp.Intent
		}
		s.logger.Info("search",
			"query", query,
			"intent", string(intent),
			"results", results,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, opts)
}
