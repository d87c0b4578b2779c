package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// testRun builds a minimal valid run for the given start URL.
func testRun(startURL string) *docparse.Run {
	started := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return &docparse.Run{
		StartURL:   startURL,
		Config:     docparse.DefaultCrawlConfig(),
		StartedAt:  started,
		FinishedAt: started.Add(30 * time.Second),
	}
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("creates run with generated ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://example.com/docs")

		err := svc.CreateRun(ctx, run)
		require.NoError(t, err)

		assert.NotEmpty(t, run.ID, "ID should be generated")
	})

	t.Run("preserves a caller-assigned ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://example.com/docs")
		run.ID = "run-123"
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, "run-123")
		require.NoError(t, err)
		assert.Equal(t, "run-123", found.ID)
	})

	t.Run("returns error for invalid run", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := &docparse.Run{} // missing start URL

		err := svc.CreateRun(ctx, run)
		require.Error(t, err)
		assert.Equal(t, docparse.EINVALID, docparse.ErrorCode(err))
	})

	t.Run("round-trips config, stats and pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://example.com/docs")
		run.Config.StartURL = "https://example.com/docs"
		run.Config.MaxDepth = 5
		run.Config.Include = `^/docs/`
		run.Stats = docparse.RunStats{Fetched: 2, Succeeded: 1, Failed: 1, Skipped: 3, Links: 4, Bytes: 2048}
		run.Pages = []*docparse.PageResult{
			{
				URL:         "https://example.com/docs/intro",
				Depth:       0,
				Profile:     "docusaurus",
				Title:       "Introduction",
				Description: "Getting started",
				ContentHTML: "<h1>Introduction</h1>",
				ContentText: "Introduction",
				NavHTML:     "<ul><li>Intro</li></ul>",
				Links: []docparse.Link{
					{URL: "https://example.com/docs/install", Text: "Install", Source: docparse.LinkSourceContent},
					{URL: "https://example.com/docs/api", Text: "API", Source: docparse.LinkSourceNavigation},
				},
				Outcome:     docparse.OutcomeSuccess,
				ContentHash: "a1b2c3d4e5f60789",
				FetchedAt:   time.Date(2024, 6, 1, 10, 0, 5, 0, time.UTC),
			},
			{
				URL:       "https://example.com/docs/broken",
				Depth:     1,
				Outcome:   docparse.OutcomeHTTPError,
				Err:       "page not found: https://example.com/docs/broken",
				FetchedAt: time.Date(2024, 6, 1, 10, 0, 10, 0, time.UTC),
			},
		}
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)

		assert.Equal(t, run.StartURL, found.StartURL)
		assert.Equal(t, run.Config, found.Config)
		assert.Equal(t, run.Stats, found.Stats)
		assert.True(t, found.StartedAt.Equal(run.StartedAt))
		assert.True(t, found.FinishedAt.Equal(run.FinishedAt))

		require.Len(t, found.Pages, 2)
		first := found.Pages[0]
		assert.Equal(t, "https://example.com/docs/intro", first.URL)
		assert.Equal(t, "docusaurus", first.Profile)
		assert.Equal(t, "Introduction", first.Title)
		assert.Equal(t, "<h1>Introduction</h1>", first.ContentHTML)
		assert.Equal(t, "<ul><li>Intro</li></ul>", first.NavHTML)
		assert.Equal(t, run.Pages[0].Links, first.Links)
		assert.Equal(t, docparse.OutcomeSuccess, first.Outcome)
		assert.Equal(t, "a1b2c3d4e5f60789", first.ContentHash)
		assert.True(t, first.FetchedAt.Equal(run.Pages[0].FetchedAt))

		second := found.Pages[1]
		assert.Equal(t, docparse.OutcomeHTTPError, second.Outcome)
		assert.Equal(t, "page not found: https://example.com/docs/broken", second.Err)
		assert.Empty(t, second.Links)
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("returns pages in completion order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://example.com/docs")
		for _, url := range []string{
			"https://example.com/docs/c",
			"https://example.com/docs/a",
			"https://example.com/docs/b",
		} {
			run.Pages = append(run.Pages, &docparse.PageResult{
				URL:       url,
				Outcome:   docparse.OutcomeSuccess,
				FetchedAt: run.StartedAt,
			})
		}
		require.NoError(t, svc.CreateRun(ctx, run))

		found, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, found.Pages, 3)
		assert.Equal(t, "https://example.com/docs/c", found.Pages[0].URL)
		assert.Equal(t, "https://example.com/docs/a", found.Pages[1].URL)
		assert.Equal(t, "https://example.com/docs/b", found.Pages[2].URL)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		_, err := svc.FindRunByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, docparse.ENOTFOUND, docparse.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("returns all runs with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			require.NoError(t, svc.CreateRun(ctx, testRun("https://example.com/docs")))
		}

		runs, err := svc.FindRuns(ctx, docparse.RunFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 3)
	})

	t.Run("filters by start URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateRun(ctx, testRun("https://example.com/alpha")))
		require.NoError(t, svc.CreateRun(ctx, testRun("https://example.com/beta")))

		startURL := "https://example.com/alpha"
		runs, err := svc.FindRuns(ctx, docparse.RunFilter{StartURL: &startURL})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://example.com/alpha", runs[0].StartURL)
	})

	t.Run("orders most recent first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		older := testRun("https://example.com/older")
		older.StartedAt = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		newer := testRun("https://example.com/newer")
		newer.StartedAt = time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
		require.NoError(t, svc.CreateRun(ctx, older))
		require.NoError(t, svc.CreateRun(ctx, newer))

		runs, err := svc.FindRuns(ctx, docparse.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "https://example.com/newer", runs[0].StartURL)
		assert.Equal(t, "https://example.com/older", runs[1].StartURL)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			require.NoError(t, svc.CreateRun(ctx, testRun("https://example.com/docs")))
		}

		runs, err := svc.FindRuns(ctx, docparse.RunFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})

	t.Run("does not load pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://example.com/docs")
		run.Pages = []*docparse.PageResult{{
			URL:       "https://example.com/docs/intro",
			Outcome:   docparse.OutcomeSuccess,
			FetchedAt: run.StartedAt,
		}}
		require.NoError(t, svc.CreateRun(ctx, run))

		runs, err := svc.FindRuns(ctx, docparse.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Empty(t, runs[0].Pages)
	})
}

func TestRunService_DeleteRun(t *testing.T) {
	t.Parallel()

	t.Run("deletes run and cascades to pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		run := testRun("https://example.com/docs")
		run.Pages = []*docparse.PageResult{{
			URL:       "https://example.com/docs/intro",
			Outcome:   docparse.OutcomeSuccess,
			FetchedAt: run.StartedAt,
		}}
		require.NoError(t, svc.CreateRun(ctx, run))

		err := svc.DeleteRun(ctx, run.ID)
		require.NoError(t, err)

		_, err = svc.FindRunByID(ctx, run.ID)
		assert.Equal(t, docparse.ENOTFOUND, docparse.ErrorCode(err))

		var pageCount int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pageCount))
		assert.Zero(t, pageCount)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRunService(db)
		ctx := context.Background()

		err := svc.DeleteRun(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, docparse.ENOTFOUND, docparse.ErrorCode(err))
	})
}
