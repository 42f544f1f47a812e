package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of ampdocs.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *ampdocs.Document) error
	CommitFn        func() error
	AbortFn         func() error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *ampdocs.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}

func (w *DocumentWriter) Commit() error {
	if w.CommitFn == nil {
		return nil
	}
	return w.CommitFn()
}

func (w *DocumentWriter) Abort() error {
	if w.AbortFn == nil {
		return nil
	}
	return w.AbortFn()
}
