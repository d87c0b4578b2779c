package docparse

import (
	"context"
	"time"
)

// Run captures one crawl execution: the effective configuration, every
// PageResult in completion order, and aggregate statistics.
type Run struct {
	ID         string        `json:"id"`
	StartURL   string        `json:"startUrl"`
	Config     CrawlConfig   `json:"config"`
	Pages      []*PageResult `json:"pages"`
	Stats      RunStats      `json:"stats"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// RunStats aggregates counters accumulated during a crawl.
type RunStats struct {
	// Fetched counts URLs that went through a fetch attempt.
	Fetched int `json:"fetched"`

	// Succeeded counts pages with OutcomeSuccess.
	Succeeded int `json:"succeeded"`

	// Failed counts pages with a failure outcome.
	Failed int `json:"failed"`

	// Skipped counts URLs filtered out before fetch; they produce no
	// PageResult.
	Skipped int `json:"skipped"`

	// Links counts links discovered across all pages.
	Links int `json:"links"`

	// Bytes counts raw HTML bytes fetched.
	Bytes int `json:"bytes"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartURL == "" {
		return Errorf(EINVALID, "run start URL required")
	}
	return nil
}

// Duration returns the wall-clock time the run took, or zero if it has not
// finished.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunService represents a service for persisting crawl runs.
type RunService interface {
	// CreateRun stores a finished run and its pages.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its pages.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its pages.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID       *string `json:"id"`
	StartURL *string `json:"startUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Exporter turns a finished run into persisted output.
type Exporter interface {
	Export(ctx context.Context, run *Run) error
}
