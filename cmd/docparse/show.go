package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/crawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if docparse.ErrorCode(err) == docparse.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'docparse runs' to see saved runs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "  URL:      %s\n", run.StartURL)
	fmt.Fprintf(deps.Stdout, "  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(deps.Stdout, "  Duration: %s\n", run.Duration().Round(time.Millisecond))
	fmt.Fprintf(deps.Stdout, "  Depth:    %d (workers: %d, delay: %s)\n",
		run.Config.MaxDepth, run.Config.Workers, run.Config.Delay)
	fmt.Fprintf(deps.Stdout, "  Stats:    %d fetched, %d ok, %d failed, %d skipped, %d links, %s\n",
		run.Stats.Fetched, run.Stats.Succeeded, run.Stats.Failed, run.Stats.Skipped,
		run.Stats.Links, crawl.FormatBytes(run.Stats.Bytes))

	if len(run.Pages) == 0 {
		return nil
	}

	fmt.Fprintf(deps.Stdout, "\nPages (%d):\n", len(run.Pages))
	for i, page := range run.Pages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		marker := ""
		if page.Failed() {
			marker = fmt.Sprintf("  [%s]", page.Outcome)
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s%s\n     %s\n", i+1, title, marker, page.URL)
	}

	return nil
}
