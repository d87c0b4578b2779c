package docparse

import "time"

// Outcome classifies how processing a fetched URL ended.
type Outcome string

// Page outcomes. A page with empty extracted content is still a success;
// exporters decide whether to keep it.
const (
	OutcomeSuccess    Outcome = "success"
	OutcomeHTTPError  Outcome = "http-error"
	OutcomeTimeout    Outcome = "timeout"
	OutcomeParseError Outcome = "parse-error"
)

// Link source regions.
const (
	LinkSourceContent    = "content"
	LinkSourceNavigation = "navigation"
)

// Link is a canonicalized outbound link discovered on a page.
type Link struct {
	// URL is absolute with the fragment stripped.
	URL string `json:"url"`

	// Text is the link's visible anchor text.
	Text string `json:"text,omitempty"`

	// Source is the region the link was found in: LinkSourceContent or
	// LinkSourceNavigation.
	Source string `json:"source,omitempty"`
}

// PageResult is produced once per fetched URL and handed to exporters
// read-only after the crawl finishes.
type PageResult struct {
	ID          string    `json:"id,omitempty"`
	URL         string    `json:"url"`
	Depth       int       `json:"depth"`
	Profile     string    `json:"profile,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	ContentText string    `json:"contentText,omitempty"`
	NavHTML     string    `json:"navHtml,omitempty"`
	Links       []Link    `json:"links,omitempty"`
	Outcome     Outcome   `json:"outcome"`
	Err         string    `json:"error,omitempty"`
	ContentHash string    `json:"contentHash,omitempty"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page result contains invalid fields.
func (p *PageResult) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	switch p.Outcome {
	case OutcomeSuccess, OutcomeHTTPError, OutcomeTimeout, OutcomeParseError:
	default:
		return Errorf(EINVALID, "page %q has unknown outcome %q", p.URL, p.Outcome)
	}
	return nil
}

// Failed reports whether the page ended in a failure outcome.
func (p *PageResult) Failed() bool {
	return p.Outcome != OutcomeSuccess
}
