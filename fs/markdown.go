// Package fs provides file exporters for crawl runs.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/docparse"
)

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	// Otherwise append .md
	return path + ".md", nil
}

// FormatPage renders a page as markdown with YAML frontmatter.
func FormatPage(page *docparse.PageResult, markdown string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("url: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\nprofile: ")
	b.WriteString(page.Profile)
	b.WriteString("\ndepth: ")
	b.WriteString(strconv.Itoa(page.Depth))
	b.WriteString("\nfetched: ")
	b.WriteString(page.FetchedAt.Format(time.RFC3339))
	if page.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(page.ContentHash)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// convertContent sanitizes and converts a page's HTML. ok is false when
// sanitization leaves nothing to convert.
func convertContent(s docparse.Sanitizer, c docparse.Converter, page *docparse.PageResult) (markdown string, ok bool, err error) {
	sanitized := s.Sanitize(page.ContentHTML)
	if strings.TrimSpace(sanitized) == "" {
		return "", false, nil
	}
	markdown, err = c.Convert(sanitized)
	if err != nil {
		return "", false, fmt.Errorf("failed to convert %s: %w", page.URL, err)
	}
	return markdown, true, nil
}

// Ensure MarkdownExporter implements docparse.Exporter at compile time.
var _ docparse.Exporter = (*MarkdownExporter)(nil)

// MarkdownExporter writes each successful page as a markdown file under a
// directory tree mirroring the site's URL paths. Output is staged in a
// temporary directory and moved into place once the whole run converts, so
// a failed export never leaves a half-written tree behind.
type MarkdownExporter struct {
	dir       string
	sanitizer docparse.Sanitizer
	converter docparse.Converter
}

// NewMarkdownExporter creates a MarkdownExporter writing to dir.
func NewMarkdownExporter(dir string, sanitizer docparse.Sanitizer, converter docparse.Converter) *MarkdownExporter {
	return &MarkdownExporter{
		dir:       dir,
		sanitizer: sanitizer,
		converter: converter,
	}
}

func (e *MarkdownExporter) tempDir() string {
	return e.dir + ".tmp"
}

// Export writes the run's pages. Pages that failed or extracted no content
// are skipped.
func (e *MarkdownExporter) Export(ctx context.Context, run *docparse.Run) error {
	if err := os.MkdirAll(e.tempDir(), 0755); err != nil {
		return err
	}

	for _, page := range run.Pages {
		if err := ctx.Err(); err != nil {
			e.abort()
			return err
		}
		if page.Failed() || page.ContentHTML == "" {
			continue
		}
		if err := e.writePage(page); err != nil {
			e.abort()
			return err
		}
	}

	// Replace any previous export atomically
	if err := os.RemoveAll(e.dir); err != nil {
		e.abort()
		return err
	}
	return os.Rename(e.tempDir(), e.dir)
}

func (e *MarkdownExporter) writePage(page *docparse.PageResult) error {
	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	markdown, ok, err := convertContent(e.sanitizer, e.converter, page)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	fullPath := filepath.Join(e.tempDir(), relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page, markdown)), 0644)
}

func (e *MarkdownExporter) abort() {
	os.RemoveAll(e.tempDir())
}
