package main

import (
	"fmt"

	"github.com/fwojciec/docparse"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, docparse.RunFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved runs. Use 'docparse crawl --db <url>' to save one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d pages, %d failed\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04"), run.StartURL,
			run.Stats.Fetched, run.Stats.Failed)
	}

	return nil
}
