package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ampdocs"
)

// Ensure LoggingDocumentService implements ampdocs.DocumentService.
var _ ampdocs.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with debug logging.
type LoggingDocumentService struct {
	next   ampdocs.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next ampdocs.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// UpsertDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) UpsertDocument(ctx context.Context, doc *ampdocs.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert document",
			"url", doc.URL,
			"category", doc.Category,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertDocument(ctx, doc)
}

// FindDocumentByURL delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocumentByURL(ctx context.Context, url string) (doc *ampdocs.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find document",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocumentByURL(ctx, url)
}

// FindDocuments delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter ampdocs.DocumentFilter) (docs []*ampdocs.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find documents",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDocuments(ctx, filter)
}

// ListCategories delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) ListCategories(ctx context.Context) (categories []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list categories",
			"count", len(categories),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListCategories(ctx)
}

// Stats delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) Stats(ctx context.Context) (stats *ampdocs.Stats, err error) {
	defer func(begin time.Time) {
		documents := 0
		if stats != nil {
			documents = stats.Documents
		}
		s.logger.Info("stats",
			"documents", documents,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Stats(ctx)
}
