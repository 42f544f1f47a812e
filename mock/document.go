package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of ampdocs.DocumentService.
type DocumentService struct {
	UpsertDocumentFn    func(ctx context.Context, doc *ampdocs.Document) error
	FindDocumentByURLFn func(ctx context.Context, url string) (*ampdocs.Document, error)
	FindDocumentsFn     func(ctx context.Context, filter ampdocs.DocumentFilter) ([]*ampdocs.Document, error)
	ListCategoriesFn    func(ctx context.Context) ([]string, error)
	StatsFn             func(ctx context.Context) (*ampdocs.Stats, error)
}

func (s *DocumentService) UpsertDocument(ctx context.Context, doc *ampdocs.Document) error {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByURL(ctx context.Context, url string) (*ampdocs.Document, error) {
	return s.FindDocumentByURLFn(ctx, url)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter ampdocs.DocumentFilter) ([]*ampdocs.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) ListCategories(ctx context.Context) ([]string, error) {
	return s.ListCategoriesFn(ctx)
}

func (s *DocumentService) Stats(ctx context.Context) (*ampdocs.Stats, error) {
	return s.StatsFn(ctx)
}
