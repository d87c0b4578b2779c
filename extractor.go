package docparse

// Extraction holds everything pulled out of one HTML page.
type Extraction struct {
	// Profile is the name of the profile that produced the extraction.
	Profile string

	// Title is the page title from metadata (title tag, og:title).
	Title string

	// Description is the page description from metadata.
	Description string

	// Generator is the raw value of the generator meta tag, if present.
	Generator string

	// ContentHTML is the main content subtree as HTML, with elements
	// matching the profile's ignore selectors removed. Empty when no
	// content was found.
	ContentHTML string

	// ContentText is the plain text of ContentHTML with whitespace
	// collapsed.
	ContentText string

	// NavHTML is the navigation subtree as HTML. Empty when no navigation
	// was found; navigation is optional.
	NavHTML string

	// Links are the canonicalized outbound links discovered within the
	// content and navigation subtrees.
	Links []Link
}

// Extractor classifies a page against registered profiles and extracts its
// content and navigation subtrees. Extraction is pure in-memory tree
// traversal; it is bounded by document size and never blocks.
type Extractor interface {
	// Extract parses the HTML, detects the profile for the page, and
	// returns the extraction. The page URL resolves relative links.
	// A page where no selector matches yields an empty extraction, not an
	// error; an error means the markup could not be parsed at all.
	Extract(pageURL, html string) (*Extraction, error)
}
