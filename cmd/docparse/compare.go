package main

import (
	"fmt"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/crawl"
)

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	result, err := crawl.CompareExtractors(deps.Extractor, deps.Baseline, c.URL, html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Profile:  %s\n", result.Profile)
	fmt.Fprintf(deps.Stdout, "Engine:   %d chars\n", result.EngineLen)
	fmt.Fprintf(deps.Stdout, "Baseline: %d chars (%s)\n", result.BaselineLen, c.Engine)

	if result.Richer {
		fmt.Fprintf(deps.Stdout, "The baseline found substantially more content; the %q profile may be missing content on this page.\n", result.Profile)
	} else {
		fmt.Fprintln(deps.Stdout, "Profile extraction covers the page content.")
	}

	return nil
}
