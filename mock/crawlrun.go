package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService is a mock implementation of ampdocs.CrawlRunService.
type CrawlRunService struct {
	BeginRunFn  func(ctx context.Context, run *ampdocs.CrawlRun) error
	FinishRunFn func(ctx context.Context, run *ampdocs.CrawlRun) error
	LastRunFn   func(ctx context.Context) (*ampdocs.CrawlRun, error)
}

func (s *CrawlRunService) BeginRun(ctx context.Context, run *ampdocs.CrawlRun) error {
	return s.BeginRunFn(ctx, run)
}

func (s *CrawlRunService) FinishRun(ctx context.Context, run *ampdocs.CrawlRun) error {
	return s.FinishRunFn(ctx, run)
}

func (s *CrawlRunService) LastRun(ctx context.Context) (*ampdocs.CrawlRun, error) {
	return s.LastRunFn(ctx)
}
