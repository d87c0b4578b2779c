package mock

import "github.com/fwojciec/docparse"

var _ docparse.Converter = (*Converter)(nil)

// Converter is a mock implementation of docparse.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docparse.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of docparse.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
