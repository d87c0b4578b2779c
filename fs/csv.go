package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fwojciec/docparse"
)

// Ensure CSVExporter implements docparse.Exporter at compile time.
var _ docparse.Exporter = (*CSVExporter)(nil)

// CSVExporter writes two tables under a directory: pages.csv with one row
// per page result and links.csv with one row per discovered link.
type CSVExporter struct {
	dir string
}

// NewCSVExporter creates a CSVExporter writing to dir.
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir}
}

func (e *CSVExporter) Export(ctx context.Context, run *docparse.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return err
	}

	if err := e.writePages(run); err != nil {
		return err
	}
	return e.writeLinks(run)
}

func (e *CSVExporter) writePages(run *docparse.Run) error {
	f, err := os.Create(filepath.Join(e.dir, "pages.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url", "title", "profile", "depth", "outcome", "content_text"}); err != nil {
		return err
	}
	for _, page := range run.Pages {
		record := []string{
			page.URL,
			page.Title,
			page.Profile,
			strconv.Itoa(page.Depth),
			string(page.Outcome),
			page.ContentText,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (e *CSVExporter) writeLinks(run *docparse.Run) error {
	f, err := os.Create(filepath.Join(e.dir, "links.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"source_url", "target_url", "region"}); err != nil {
		return err
	}
	for _, page := range run.Pages {
		for _, link := range page.Links {
			if err := w.Write([]string{page.URL, link.URL, link.Source}); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
