package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/ampdocs"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ampdocs.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService implements ampdocs.CrawlRunService using SQLite.
type CrawlRunService struct {
	db *DB
}

// NewCrawlRunService creates a new CrawlRunService.
func NewCrawlRunService(db *DB) *CrawlRunService {
	return &CrawlRunService{db: db}
}

// BeginRun creates a run record with a generated ID and StartedAt.
func (s *CrawlRunService) BeginRun(ctx context.Context, run *ampdocs.CrawlRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, base_url, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.BaseURL, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun sets FinishedAt and the page counters on an existing run.
func (s *CrawlRunService) FinishRun(ctx context.Context, run *ampdocs.CrawlRun) error {
	run.FinishedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE crawl_runs
		SET finished_at = ?, saved = ?, unchanged = ?, failed = ?
		WHERE id = ?
	`, run.FinishedAt.Format(time.RFC3339), run.Saved, run.Unchanged, run.Failed, run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ampdocs.Errorf(ampdocs.ENOTFOUND, "crawl run %q not found", run.ID)
	}

	return nil
}

// LastRun returns the most recently finished run.
func (s *CrawlRunService) LastRun(ctx context.Context) (*ampdocs.CrawlRun, error) {
	var run ampdocs.CrawlRun
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, started_at, finished_at, saved, unchanged, failed
		FROM crawl_runs
		WHERE finished_at != ''
		ORDER BY finished_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.BaseURL, &startedAt, &finishedAt, &run.Saved, &run.Unchanged, &run.Failed)

	if err == sql.ErrNoRows {
		return nil, ampdocs.Errorf(ampdocs.ENOTFOUND, "no finished crawl runs")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}
