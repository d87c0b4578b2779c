package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/docparse"
	main "github.com/fwojciec/docparse/cmd/docparse"
	"github.com/fwojciec/docparse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with ID, date, URL, and page counts", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ docparse.RunFilter) ([]*docparse.Run, error) {
				return []*docparse.Run{
					{
						ID:        "run-123",
						StartURL:  "https://docs.example.com/",
						StartedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
						Stats:     docparse.RunStats{Fetched: 12, Failed: 1},
					},
					{
						ID:        "run-456",
						StartURL:  "https://web.example.com/guide",
						StartedAt: time.Date(2025, 2, 27, 18, 0, 0, 0, time.UTC),
						Stats:     docparse.RunStats{Fetched: 4},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.RunsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "run-123")
		assert.Contains(t, output, "run-456")
		assert.Contains(t, output, "2025-03-01 09:30")
		assert.Contains(t, output, "https://docs.example.com/")
		assert.Contains(t, output, "12 pages, 1 failed")
	})

	t.Run("shows helpful message when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ docparse.RunFilter) ([]*docparse.Run, error) {
				return []*docparse.Run{}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.RunsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No saved runs")
	})

	t.Run("returns error when FindRuns fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ docparse.RunFilter) ([]*docparse.Run, error) {
				return nil, dbErr
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.RunsCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
