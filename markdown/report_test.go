package markdown_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/markdown"
	"github.com/fwojciec/docparse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeReport renders a run with a passthrough pipeline, so page content
// written as markdown flows straight into the outline.
func writeReport(t *testing.T, run *docparse.Run) string {
	t.Helper()
	sanitizer := &mock.Sanitizer{SanitizeFn: func(html string) string { return html }}
	converter := &mock.Converter{ConvertFn: func(html string) (string, error) { return html, nil }}

	var buf bytes.Buffer
	w := markdown.NewReportWriter(&buf, sanitizer, converter)
	require.NoError(t, w.Write(run))
	return buf.String()
}

func testReportRun() *docparse.Run {
	return &docparse.Run{
		ID:       "run-1",
		StartURL: "https://example.com/docs",
		Pages: []*docparse.PageResult{
			{
				URL:         "https://example.com/docs/intro",
				Title:       "Introduction",
				Profile:     "docusaurus",
				Depth:       0,
				ContentHTML: "# Introduction\n\nWelcome.\n\n## Install\n\nSteps.\n\n### Linux\n\nDetails.",
				Outcome:     docparse.OutcomeSuccess,
			},
			{
				URL:     "https://example.com/docs/broken",
				Depth:   1,
				Outcome: docparse.OutcomeHTTPError,
				Err:     "HTTP 500 for https://example.com/docs/broken",
			},
		},
		Stats:      docparse.RunStats{Fetched: 2, Succeeded: 1, Failed: 1, Skipped: 3, Links: 7, Bytes: 2048},
		StartedAt:  time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 1, 8, 12, 0, 42, 0, time.UTC),
	}
}

func TestReportWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes header with run metadata", func(t *testing.T) {
		t.Parallel()

		got := writeReport(t, testReportRun())

		assert.Contains(t, got, "# Crawl Report")
		assert.Contains(t, got, "`https://example.com/docs`")
		assert.Contains(t, got, "42s")
	})

	t.Run("writes statistics table", func(t *testing.T) {
		t.Parallel()

		got := writeReport(t, testReportRun())

		assert.Contains(t, got, "## Statistics")
		assert.Contains(t, got, "Fetched")
		assert.Contains(t, got, "Links discovered")
		assert.Contains(t, got, "2.0 KB")
	})

	t.Run("writes pages table with outcomes", func(t *testing.T) {
		t.Parallel()

		got := writeReport(t, testReportRun())

		assert.Contains(t, got, "## Pages")
		assert.Contains(t, got, "https://example.com/docs/intro")
		assert.Contains(t, got, "docusaurus")
		assert.Contains(t, got, "http-error: HTTP 500 for https://example.com/docs...")
	})

	t.Run("warns when pages failed", func(t *testing.T) {
		t.Parallel()

		got := writeReport(t, testReportRun())

		assert.Contains(t, got, "[!WARNING]")
		assert.Contains(t, got, "1 page(s) failed")
	})

	t.Run("celebrates a clean run", func(t *testing.T) {
		t.Parallel()

		run := testReportRun()
		run.Pages = run.Pages[:1]
		run.Stats.Failed = 0

		got := writeReport(t, run)

		assert.Contains(t, got, "[!TIP]")
	})

	t.Run("outlines headings of successful pages", func(t *testing.T) {
		t.Parallel()

		got := writeReport(t, testReportRun())

		assert.Contains(t, got, "## Content Outline")
		assert.Contains(t, got, "### Introduction")
		assert.Contains(t, got, "- Introduction\n  - Install\n    - Linux")
	})

	t.Run("notes when nothing was extracted", func(t *testing.T) {
		t.Parallel()

		run := &docparse.Run{
			StartURL: "https://example.com/docs",
			Pages: []*docparse.PageResult{
				{URL: "https://example.com/docs/broken", Outcome: docparse.OutcomeHTTPError},
			},
			Stats: docparse.RunStats{Fetched: 1, Failed: 1},
		}

		got := writeReport(t, run)

		assert.Contains(t, got, "No content extracted.")
	})
}
