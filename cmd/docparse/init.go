package main

import (
	"fmt"

	"github.com/fwojciec/docparse"
	"github.com/fwojciec/docparse/yaml"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	path := c.Path
	if path == "" {
		path = yaml.DefaultConfigFile
	}

	if err := yaml.WriteDefault(path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
