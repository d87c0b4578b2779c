package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/docparse"
)

// Ensure JSONExporter implements docparse.Exporter at compile time.
var _ docparse.Exporter = (*JSONExporter)(nil)

// JSONExporter writes the entire run, pages included, as one JSON document.
type JSONExporter struct {
	path string
}

// NewJSONExporter creates a JSONExporter writing to path.
func NewJSONExporter(path string) *JSONExporter {
	return &JSONExporter{path: path}
}

// Export marshals the run with indentation so the dump stays diffable.
func (e *JSONExporter) Export(ctx context.Context, run *docparse.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(e.path, data, 0644)
}
