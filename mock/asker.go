package mock

import (
	"context"

	"github.com/fwojciec/ampdocs"
)

var _ ampdocs.Asker = (*Asker)(nil)

// Asker is a mock implementation of ampdocs.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	return a.AskFn(ctx, question)
}
