package ampdocs

import "context"

// TokenCounter counts tokens in text for a specific model. The crawler
// uses it to report how much context a fetched corpus consumes.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
