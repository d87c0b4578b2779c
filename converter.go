package docparse

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms extracted HTML into Markdown. The input should
	// already be sanitized content (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// Sanitizer strips unsafe or noisy markup (scripts, styles, inline event
// handlers) from HTML ahead of conversion or export.
type Sanitizer interface {
	Sanitize(html string) string
}
