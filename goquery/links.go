package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docparse"
)

// discoverLinks collects anchors from the extracted content and navigation
// regions, content first. Links are resolved against the page URL with
// fragments stripped and deduplicated by resolved URL, keeping the first
// occurrence. Cross-host links are kept; filtering them is the crawler's
// call to make.
func discoverLinks(pageURL string, content, nav *goquery.Selection) []docparse.Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []docparse.Link

	collect := func(region *goquery.Selection, source string) {
		if region == nil {
			return
		}
		region.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			if seen[resolved] {
				return
			}
			seen[resolved] = true

			links = append(links, docparse.Link{
				URL:    resolved,
				Text:   strings.TrimSpace(sel.Text()),
				Source: source,
			})
		})
	}

	collect(content, docparse.LinkSourceContent)
	collect(nav, docparse.LinkSourceNavigation)

	return links
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
