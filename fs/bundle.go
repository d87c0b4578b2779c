package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/docparse"
)

// Ensure BundleExporter implements docparse.Exporter at compile time.
var _ docparse.Exporter = (*BundleExporter)(nil)

// BundleExporter writes the whole run as a single markdown document with a
// table of contents, for tools that want the documentation in one file.
// Pages are ordered by depth, then title, so overview pages come before
// detail pages.
type BundleExporter struct {
	path      string
	sanitizer docparse.Sanitizer
	converter docparse.Converter
}

// NewBundleExporter creates a BundleExporter writing to path.
func NewBundleExporter(path string, sanitizer docparse.Sanitizer, converter docparse.Converter) *BundleExporter {
	return &BundleExporter{
		path:      path,
		sanitizer: sanitizer,
		converter: converter,
	}
}

type bundlePage struct {
	page     *docparse.PageResult
	markdown string
}

func (e *BundleExporter) Export(ctx context.Context, run *docparse.Run) error {
	pages := exportablePages(run)
	sortPages(pages)

	var entries []bundlePage
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		markdown, ok, err := convertContent(e.sanitizer, e.converter, page)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		entries = append(entries, bundlePage{page: page, markdown: markdown})
	}

	titles := make([]string, len(entries))
	for i, entry := range entries {
		titles[i] = pageTitle(entry.page)
	}
	anchors := titleAnchors(titles)

	var b strings.Builder
	b.WriteString("# Documentation export\n\n")
	b.WriteString("Source: ")
	b.WriteString(run.StartURL)
	b.WriteString("\nCrawled: ")
	b.WriteString(run.FinishedAt.Format("2006-01-02"))
	b.WriteString("\n\n## Contents\n\n")
	for i, title := range titles {
		fmt.Fprintf(&b, "- [%s](#%s)\n", title, anchors[i])
	}

	for i, entry := range entries {
		b.WriteString("\n---\n\n# ")
		b.WriteString(titles[i])
		b.WriteString("\n\nSource: ")
		b.WriteString(entry.page.URL)
		b.WriteString("\n\n")
		b.WriteString(entry.markdown)
		b.WriteString("\n")
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(e.path, []byte(b.String()), 0644)
}

// exportablePages returns the pages worth bundling: successful ones that
// extracted content.
func exportablePages(run *docparse.Run) []*docparse.PageResult {
	var pages []*docparse.PageResult
	for _, page := range run.Pages {
		if page.Failed() || page.ContentHTML == "" {
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

func sortPages(pages []*docparse.PageResult) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Depth != pages[j].Depth {
			return pages[i].Depth < pages[j].Depth
		}
		return pageTitle(pages[i]) < pageTitle(pages[j])
	})
}

// pageTitle returns the page's title collapsed to a single line, falling
// back to the URL when extraction produced no title.
func pageTitle(page *docparse.PageResult) string {
	title := strings.Join(strings.Fields(page.Title), " ")
	if title != "" {
		return title
	}
	return page.URL
}

// titleAnchors derives TOC anchors the same way heading anchors are built,
// including numeric suffixes for duplicate titles.
func titleAnchors(titles []string) []string {
	var b strings.Builder
	for _, title := range titles {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n")
	}
	sections := docparse.ExtractSections(b.String())

	anchors := make([]string, len(titles))
	for i := range anchors {
		if i < len(sections) {
			anchors[i] = sections[i].Anchor
		}
	}
	return anchors
}
