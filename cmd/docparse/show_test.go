package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/docparse"
	main "github.com/fwojciec/docparse/cmd/docparse"
	"github.com/fwojciec/docparse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows run details and pages", func(t *testing.T) {
		t.Parallel()

		started := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
		config := docparse.DefaultCrawlConfig()
		config.StartURL = "https://docs.example.com/"
		config.MaxDepth = 2

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*docparse.Run, error) {
				assert.Equal(t, "run-123", id)
				return &docparse.Run{
					ID:         "run-123",
					StartURL:   "https://docs.example.com/",
					Config:     config,
					StartedAt:  started,
					FinishedAt: started.Add(42 * time.Second),
					Stats:      docparse.RunStats{Fetched: 2, Succeeded: 1, Failed: 1, Links: 5, Bytes: 4096},
					Pages: []*docparse.PageResult{
						{
							URL:     "https://docs.example.com/",
							Title:   "Introduction",
							Outcome: docparse.OutcomeSuccess,
						},
						{
							URL:     "https://docs.example.com/broken",
							Outcome: docparse.OutcomeHTTPError,
							Err:     "HTTP 500",
						},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.ShowCmd{ID: "run-123"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Run run-123")
		assert.Contains(t, output, "https://docs.example.com/")
		assert.Contains(t, output, "42s")
		assert.Contains(t, output, "Depth:    2")
		assert.Contains(t, output, "2 fetched, 1 ok, 1 failed")
		assert.Contains(t, output, "4.0 KB")
		assert.Contains(t, output, "Pages (2):")
		assert.Contains(t, output, "1. Introduction")
		assert.Contains(t, output, "[http-error]")
		// The failed page has no title; its URL stands in.
		assert.Contains(t, output, "2. https://docs.example.com/broken")
	})

	t.Run("returns ENOTFOUND with hint when run does not exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*docparse.Run, error) {
				return nil, docparse.Errorf(docparse.ENOTFOUND, "run not found")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.ShowCmd{ID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, docparse.ENOTFOUND, docparse.ErrorCode(err))
		assert.Contains(t, stderr.String(), `run "missing" not found`)
		assert.Contains(t, stderr.String(), "docparse runs")
	})
}
