package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docparse"
	"golang.org/x/net/html"
)

var _ docparse.Extractor = (*Extractor)(nil)

// Extractor extracts content, navigation, metadata, and links from HTML
// using the profile selected by its registry.
type Extractor struct {
	registry   *Registry
	heuristics Heuristics
}

// NewExtractor creates an Extractor with default heuristic thresholds.
func NewExtractor(registry *Registry) *Extractor {
	return NewExtractorWithHeuristics(registry, DefaultHeuristics())
}

// NewExtractorWithHeuristics creates an Extractor with custom heuristic
// thresholds for the fallback scoring passes.
func NewExtractorWithHeuristics(registry *Registry, heuristics Heuristics) *Extractor {
	return &Extractor{registry: registry, heuristics: heuristics}
}

// Extract parses the page once, detects its profile, and runs the
// profile's extraction strategy. Content is extracted before navigation,
// so document mutations from ignore-selector stripping are visible to the
// navigation pass. Links are discovered from the extracted content and
// navigation regions only, content first.
func (e *Extractor) Extract(pageURL, pageHTML string) (*docparse.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, docparse.Errorf(docparse.EINVALID, "failed to parse HTML: %v", err)
	}

	profile := e.registry.detect(pageURL, doc)

	extraction := &docparse.Extraction{Profile: profile.Name}
	extraction.Title, extraction.Description, extraction.Generator = pageMeta(doc)

	content := e.extractContent(doc, profile)
	nav := e.extractNavigation(doc, profile)

	if content != nil {
		extraction.ContentHTML = renderSelection(content)
		extraction.ContentText = selectionText(content)
	}
	if nav != nil {
		extraction.NavHTML = renderSelection(nav)
	}
	extraction.Links = discoverLinks(pageURL, content, nav)

	return extraction, nil
}

// extractContent returns the main content region, or nil when the profile's
// selectors find nothing and the profile has no heuristic fallback.
// A selector match is cleaned of ignored descendants in place; the heuristic
// path strips ignored elements from the whole document before scoring.
func (e *Extractor) extractContent(doc *goquery.Document, profile *docparse.Profile) *goquery.Selection {
	if content := firstMatch(doc, profile.ContentSelectors); content != nil {
		removeMatching(content, profile.IgnoreSelectors)
		return content
	}
	if profile.Strategy != docparse.StrategyHeuristic {
		return nil
	}
	removeMatching(doc.Selection, profile.IgnoreSelectors)
	return e.richestContent(doc)
}

// extractNavigation returns the navigation region, or nil when the
// profile's selectors find nothing and the profile has no heuristic
// fallback.
func (e *Extractor) extractNavigation(doc *goquery.Document, profile *docparse.Profile) *goquery.Selection {
	if nav := firstMatch(doc, profile.NavSelectors); nav != nil {
		return nav
	}
	if profile.Strategy != docparse.StrategyHeuristic {
		return nil
	}
	return e.navigationByLinks(doc)
}

// firstMatch returns the first element matched by the first selector that
// matches anything, preserving selector list order. Invalid selectors
// match nothing.
func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// removeMatching detaches all descendants of sel that match any selector.
func removeMatching(sel *goquery.Selection, selectors []string) {
	for _, selector := range selectors {
		sel.Find(selector).Remove()
	}
}

// renderSelection renders the outer HTML of the selection's nodes.
func renderSelection(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		if err := html.Render(&sb, node); err != nil {
			return ""
		}
	}
	return sb.String()
}
