// Package readability provides a baseline docparse.Extractor backed by
// go-readability, used to sanity-check the selector-driven engine.
package readability

import (
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/fwojciec/docparse"
)

// Ensure Extractor implements docparse.Extractor at compile time.
var _ docparse.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(pageURL, rawHTML string) (*docparse.Extraction, error) {
	if rawHTML == "" {
		return nil, docparse.Errorf(docparse.EINVALID, "empty HTML input")
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
	if err != nil {
		return nil, err
	}

	return &docparse.Extraction{
		Profile:     "readability",
		Title:       article.Title,
		Description: article.Excerpt,
		ContentHTML: article.Content,
		ContentText: article.TextContent,
	}, nil
}
