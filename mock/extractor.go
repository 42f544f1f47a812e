package mock

import "github.com/fwojciec/ampdocs"

var _ ampdocs.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ampdocs.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*ampdocs.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*ampdocs.ExtractResult, error) {
	return e.ExtractFn(html)
}
