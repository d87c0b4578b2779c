// Package markdown renders crawl run summaries as markdown reports.
package markdown

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/crawl"
)

// ReportWriter renders a human-readable summary of a crawl run: what was
// fetched, what failed, and the heading structure of the content that came
// back.
type ReportWriter struct {
	output    io.Writer
	sanitizer docparse.Sanitizer
	converter docparse.Converter
}

// NewReportWriter creates a ReportWriter that outputs to the given writer.
func NewReportWriter(output io.Writer, sanitizer docparse.Sanitizer, converter docparse.Converter) *ReportWriter {
	return &ReportWriter{
		output:    output,
		sanitizer: sanitizer,
		converter: converter,
	}
}

// Write outputs the full report.
func (w *ReportWriter) Write(run *docparse.Run) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeStats(md, run)
	w.writePages(md, run)
	w.writeOutline(md, run)

	return md.Build()
}

func (w *ReportWriter) writeHeader(md *markdown.Markdown, run *docparse.Run) {
	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + run.StartURL + "`"},
			{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", run.Duration().Round(time.Millisecond).String()},
			{"Pages", strconv.Itoa(len(run.Pages))},
		},
	})
	md.PlainText("")

	w.writeAlert(md, run)
}

// writeAlert summarizes the run's health up front.
func (w *ReportWriter) writeAlert(md *markdown.Markdown, run *docparse.Run) {
	switch {
	case run.Stats.Failed > 0:
		md.Warningf("%d page(s) failed. See the pages table for details.", run.Stats.Failed)
	case run.Stats.Fetched == 0:
		md.Note("No pages were fetched.")
	default:
		md.Tip("All fetched pages processed successfully.")
	}
	md.PlainText("")
}

func (w *ReportWriter) writeStats(md *markdown.Markdown, run *docparse.Run) {
	md.H2("Statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Counter", "Value"},
		Rows: [][]string{
			{"Fetched", strconv.Itoa(run.Stats.Fetched)},
			{"Succeeded", strconv.Itoa(run.Stats.Succeeded)},
			{"Failed", strconv.Itoa(run.Stats.Failed)},
			{"Skipped", strconv.Itoa(run.Stats.Skipped)},
			{"Links discovered", strconv.Itoa(run.Stats.Links)},
			{"HTML fetched", crawl.FormatBytes(run.Stats.Bytes)},
		},
	})
	md.PlainText("")
}

func (w *ReportWriter) writePages(md *markdown.Markdown, run *docparse.Run) {
	md.H2("Pages")
	md.PlainText("")

	if len(run.Pages) == 0 {
		md.PlainText("No pages recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Pages))
	for i, page := range run.Pages {
		title := page.Title
		if title == "" {
			title = "-"
		}
		profile := page.Profile
		if profile == "" {
			profile = "-"
		}
		outcome := string(page.Outcome)
		if page.Err != "" {
			outcome += ": " + truncateString(page.Err, 40)
		}

		rows[i] = []string{
			crawl.TruncateURL(page.URL, 60),
			truncateString(title, 40),
			profile,
			strconv.Itoa(page.Depth),
			outcome,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Title", "Profile", "Depth", "Outcome"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeOutline writes the heading structure of each successful page.
func (w *ReportWriter) writeOutline(md *markdown.Markdown, run *docparse.Run) {
	md.H2("Content Outline")
	md.PlainText("")

	wrote := false
	for _, page := range run.Pages {
		if page.Failed() || page.ContentHTML == "" {
			continue
		}
		sections := w.pageSections(page)
		if len(sections) == 0 {
			continue
		}

		md.H3(pageHeading(page))
		md.PlainText("")
		md.PlainText(outlineList(sections))
		md.PlainText("")
		wrote = true
	}

	if !wrote {
		md.PlainText("No content extracted.")
		md.PlainText("")
	}
}

// pageSections converts a page's content and extracts its headings.
// Conversion failures yield an empty outline.
func (w *ReportWriter) pageSections(page *docparse.PageResult) []docparse.Section {
	sanitized := w.sanitizer.Sanitize(page.ContentHTML)
	if strings.TrimSpace(sanitized) == "" {
		return nil
	}
	markdownText, err := w.converter.Convert(sanitized)
	if err != nil {
		return nil
	}
	return docparse.ExtractSections(markdownText)
}

// pageHeading falls back to the URL when extraction produced no title.
func pageHeading(page *docparse.PageResult) string {
	if strings.TrimSpace(page.Title) != "" {
		return page.Title
	}
	return page.URL
}

// outlineList renders sections as a nested bullet list, heading levels
// mapped to indentation.
func outlineList(sections []docparse.Section) string {
	lines := make([]string, len(sections))
	for i, s := range sections {
		indent := strings.Repeat("  ", s.Level-1)
		lines[i] = indent + "- " + s.Title
	}
	return strings.Join(lines, "\n")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
