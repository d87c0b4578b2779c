package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pageMeta extracts the page title, description, and generator from an
// already-parsed document. The title element wins over og:title; the
// description meta tag wins over og:description.
func pageMeta(doc *goquery.Document) (title, description, generator string) {
	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = metaContent(doc, "meta[property='og:title']")
	}

	description = metaContent(doc, "meta[name='description']")
	if description == "" {
		description = metaContent(doc, "meta[property='og:description']")
	}

	generator = metaContent(doc, "meta[name='generator']")
	return title, description, generator
}

// metaContent returns the trimmed content attribute of the first element
// matching the selector.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).Attr("content")
	return strings.TrimSpace(content)
}
