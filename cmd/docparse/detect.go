package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docparse"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	profile := deps.Registry.Detect(c.URL, html)

	fmt.Fprintf(deps.Stdout, "Profile:  %s\n", profile.Name)
	fmt.Fprintf(deps.Stdout, "Strategy: %s\n", profile.Strategy)
	if len(profile.ContentSelectors) > 0 {
		fmt.Fprintf(deps.Stdout, "Content:  %s\n", strings.Join(profile.ContentSelectors, ", "))
	}
	if len(profile.NavSelectors) > 0 {
		fmt.Fprintf(deps.Stdout, "Nav:      %s\n", strings.Join(profile.NavSelectors, ", "))
	}

	return nil
}
