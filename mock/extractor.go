package mock

import "github.com/fwojciec/docparse"

var _ docparse.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docparse.Extractor.
type Extractor struct {
	ExtractFn func(pageURL, html string) (*docparse.Extraction, error)
}

func (e *Extractor) Extract(pageURL, html string) (*docparse.Extraction, error) {
	return e.ExtractFn(pageURL, html)
}
