package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Heuristics tunes the scoring passes used when a profile's selectors find
// nothing. The zero value disables nearly everything; start from
// DefaultHeuristics.
type Heuristics struct {
	// MinTextLen is the minimum text length (in runes, exclusive) for a
	// content candidate.
	MinTextLen int

	// MinParagraphs is the minimum paragraph count (exclusive) for a
	// content candidate without headers.
	MinParagraphs int

	// HeaderWeight is the score contribution per header element.
	HeaderWeight int

	// ParagraphWeight is the score contribution per paragraph element.
	ParagraphWeight int

	// MinLinks is the minimum anchor count (exclusive) for a navigation
	// candidate.
	MinLinks int

	// MinLinkDensity is the minimum links-per-text-rune ratio (exclusive)
	// for a navigation candidate.
	MinLinkDensity float64

	// MinNavRatio is the minimum fraction of short-text links (exclusive)
	// for a navigation candidate.
	MinNavRatio float64

	// ShortLinkLen is the rune length below which a link's text counts as
	// short, i.e. menu-like.
	ShortLinkLen int
}

// DefaultHeuristics returns the thresholds tuned against common
// documentation sites.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		MinTextLen:      100,
		MinParagraphs:   10,
		HeaderWeight:    50,
		ParagraphWeight: 10,
		MinLinks:        3,
		MinLinkDensity:  0.1,
		MinNavRatio:     0.7,
		ShortLinkLen:    30,
	}
}

// navIndicators mark a container as page chrome rather than content when
// found in its id, class, or role attributes.
var navIndicators = []string{"nav", "menu", "footer", "header", "sidebar"}

// richestContent scores div, section, and article elements in document
// order and returns the highest-scoring one. Candidates whose id, class,
// or role suggests chrome are skipped, as are candidates with too little
// text or structure. Score is text length plus weighted header and
// paragraph counts; ties keep the earliest candidate. Falls back to the
// document body when nothing qualifies.
func (e *Extractor) richestContent(doc *goquery.Document) *goquery.Selection {
	h := e.heuristics

	var best *goquery.Selection
	bestScore := 0

	doc.Find("div, section, article").Each(func(_ int, sel *goquery.Selection) {
		if hasNavIndicator(sel) {
			return
		}

		textLen := utf8.RuneCountInString(selectionText(sel))
		if textLen <= h.MinTextLen {
			return
		}

		headers := sel.Find("h1, h2, h3, h4, h5, h6").Length()
		paragraphs := sel.Find("p").Length()
		if headers == 0 && paragraphs <= h.MinParagraphs {
			return
		}

		score := textLen + headers*h.HeaderWeight + paragraphs*h.ParagraphWeight
		if score > bestScore {
			bestScore = score
			best = sel
		}
	})

	if best != nil {
		return best
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// navigationByLinks scores div, nav, aside, and ul elements by link
// density and returns the highest-scoring one, or nil when nothing
// qualifies. A qualifying candidate has enough links, a high enough
// links-per-text ratio, and a high enough fraction of short menu-like
// link texts. Score is link count times link density times short-link
// ratio; ties keep the earliest candidate.
func (e *Extractor) navigationByLinks(doc *goquery.Document) *goquery.Selection {
	h := e.heuristics

	var best *goquery.Selection
	bestScore := 0.0

	doc.Find("div, nav, aside, ul").Each(func(_ int, sel *goquery.Selection) {
		links := sel.Find("a")
		linkCount := links.Length()
		if linkCount <= h.MinLinks {
			return
		}

		textLen := utf8.RuneCountInString(selectionText(sel))
		if textLen < 1 {
			textLen = 1
		}
		density := float64(linkCount) / float64(textLen)
		if density <= h.MinLinkDensity {
			return
		}

		short := 0
		links.Each(func(_ int, link *goquery.Selection) {
			if utf8.RuneCountInString(strings.TrimSpace(link.Text())) < h.ShortLinkLen {
				short++
			}
		})
		ratio := float64(short) / float64(linkCount)
		if ratio <= h.MinNavRatio {
			return
		}

		score := float64(linkCount) * density * ratio
		if score > bestScore {
			bestScore = score
			best = sel
		}
	})

	return best
}

// hasNavIndicator reports whether the element's id, class, or role
// attribute contains a chrome indicator term.
func hasNavIndicator(sel *goquery.Selection) bool {
	for _, attr := range []string{"id", "class", "role"} {
		value, ok := sel.Attr(attr)
		if !ok {
			continue
		}
		value = strings.ToLower(value)
		for _, term := range navIndicators {
			if strings.Contains(value, term) {
				return true
			}
		}
	}
	return false
}

// selectionText returns the visible text of a selection with whitespace
// collapsed to single spaces. Script and style contents are excluded.
func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		collectText(node, &sb)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(node *html.Node, sb *strings.Builder) {
	if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
		return
	}
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		sb.WriteByte(' ')
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}
