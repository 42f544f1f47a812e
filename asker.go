package ampdocs

import "context"

// Asker provides natural language question answering over the stored
// documentation corpus.
type Asker interface {
	// Ask answers a question using the most relevant stored documents
	// as context. Returns ENOTFOUND when the store holds no
	// documentation matching the question.
	Ask(ctx context.Context, question string) (string, error)
}
