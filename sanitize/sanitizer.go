// Package sanitize strips unsafe markup from extracted HTML ahead of
// conversion and export.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fwojciec/docparse"
)

// Ensure Sanitizer implements docparse.Sanitizer at compile time.
var _ docparse.Sanitizer = (*Sanitizer)(nil)

// codeLanguageClass matches the class values syntax highlighters put on
// code elements, e.g. language-go.
var codeLanguageClass = regexp.MustCompile(`^language-[a-zA-Z0-9]+$`)

// Sanitizer removes scripts, styles, frames and event handlers from HTML
// while keeping the markup conversion needs.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer tuned for documentation content: rich
// text, lists, tables, images and links survive; code and pre elements
// keep their language-* class so fenced blocks stay annotated.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(codeLanguageClass).OnElements("code", "pre")
	return &Sanitizer{policy: policy}
}

// Sanitize returns the sanitized HTML.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
