package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fwojciec/docparse"
)

// Compile-time interface verification.
var _ docparse.RunService = (*RunService)(nil)

// RunService implements docparse.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a finished run and its pages in one transaction.
// Run and page IDs are assigned if missing; the crawl normally supplies
// them. Page position records completion order.
func (s *RunService) CreateRun(ctx context.Context, run *docparse.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	config, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, start_url, config, fetched, succeeded, failed, skipped, links, bytes, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartURL, string(config),
		run.Stats.Fetched, run.Stats.Succeeded, run.Stats.Failed, run.Stats.Skipped,
		run.Stats.Links, run.Stats.Bytes,
		run.StartedAt.Format(time.RFC3339), run.FinishedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, page := range run.Pages {
		if page.ID == "" {
			page.ID = uuid.New().String()
		}
		links, err := json.Marshal(page.Links)
		if err != nil {
			return fmt.Errorf("failed to encode links for %s: %w", page.URL, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (id, run_id, url, depth, profile, title, description, content_html, content_text, nav_html, links, outcome, error, content_hash, position, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, page.ID, run.ID, page.URL, page.Depth, page.Profile, page.Title, page.Description,
			page.ContentHTML, page.ContentText, page.NavHTML, string(links),
			string(page.Outcome), page.Err, page.ContentHash, i,
			page.FetchedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run with its pages in completion order.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*docparse.Run, error) {
	var run docparse.Run
	var config, startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_url, config, fetched, succeeded, failed, skipped, links, bytes, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.StartURL, &config,
		&run.Stats.Fetched, &run.Stats.Succeeded, &run.Stats.Failed, &run.Stats.Skipped,
		&run.Stats.Links, &run.Stats.Bytes, &startedAt, &finishedAt)

	if err == sql.ErrNoRows {
		return nil, docparse.Errorf(docparse.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(config), &run.Config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	pages, err := s.findPagesByRunID(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Pages = pages

	return &run, nil
}

// FindRuns retrieves runs matching the filter, most recent first. Pages
// are not loaded; use FindRunByID for the full run.
func (s *RunService) FindRuns(ctx context.Context, filter docparse.RunFilter) ([]*docparse.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, start_url, config, fetched, succeeded, failed, skipped, links, bytes, started_at, finished_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.StartURL != nil {
		query.WriteString(" AND start_url = ?")
		args = append(args, *filter.StartURL)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*docparse.Run
	for rows.Next() {
		var run docparse.Run
		var config, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.StartURL, &config,
			&run.Stats.Fetched, &run.Stats.Succeeded, &run.Stats.Failed, &run.Stats.Skipped,
			&run.Stats.Links, &run.Stats.Bytes, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(config), &run.Config); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun permanently removes a run. Its pages are removed by the
// foreign key cascade.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docparse.Errorf(docparse.ENOTFOUND, "run not found")
	}

	return nil
}

// findPagesByRunID loads the pages of a run ordered by position.
func (s *RunService) findPagesByRunID(ctx context.Context, runID string) ([]*docparse.PageResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, depth, profile, title, description, content_html, content_text, nav_html, links, outcome, error, content_hash, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*docparse.PageResult
	for rows.Next() {
		var page docparse.PageResult
		var links, outcome, fetchedAt string

		if err := rows.Scan(&page.ID, &page.URL, &page.Depth, &page.Profile, &page.Title,
			&page.Description, &page.ContentHTML, &page.ContentText, &page.NavHTML,
			&links, &outcome, &page.Err, &page.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(links), &page.Links); err != nil {
			return nil, fmt.Errorf("failed to decode links for %s: %w", page.URL, err)
		}
		page.Outcome = docparse.Outcome(outcome)
		if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}
