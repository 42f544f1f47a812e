package mock

import "github.com/fwojciec/ampdocs"

var _ ampdocs.Converter = (*Converter)(nil)

// Converter is a mock implementation of ampdocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
