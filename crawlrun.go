package ampdocs

import (
	"context"
	"time"
)

// StaleAfter is the corpus age after which a refresh is suggested.
const StaleAfter = 30 * 24 * time.Hour

// CrawlRun records one crawl of the documentation site.
type CrawlRun struct {
	ID         string    `json:"id"`
	BaseURL    string    `json:"baseUrl"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"` // zero until the run finishes
	Saved      int       `json:"saved"`
	Unchanged  int       `json:"unchanged"`
	Failed     int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *CrawlRun) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "crawl run base URL required")
	}
	return nil
}

// Stale reports whether the run finished longer than StaleAfter ago.
// Unfinished runs are never stale.
func (r *CrawlRun) Stale(now time.Time) bool {
	if r.FinishedAt.IsZero() {
		return false
	}
	return now.Sub(r.FinishedAt) > StaleAfter
}

// CrawlRunService persists crawl run records.
type CrawlRunService interface {
	// BeginRun creates a run record with a generated ID and StartedAt.
	BeginRun(ctx context.Context, run *CrawlRun) error

	// FinishRun sets FinishedAt and the page counters on an existing run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *CrawlRun) error

	// LastRun returns the most recently finished run.
	// Returns ENOTFOUND when no run has finished yet.
	LastRun(ctx context.Context) (*CrawlRun, error)
}
