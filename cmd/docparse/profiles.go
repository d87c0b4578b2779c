package main

import (
	"fmt"
	"strings"
)

// Run executes the profiles command.
func (c *ProfilesCmd) Run(deps *Dependencies) error {
	for _, p := range deps.Registry.Profiles() {
		identity := strings.Join(p.Hostnames, ", ")
		if identity == "" && len(p.Generators) > 0 {
			identity = "generator: " + strings.Join(p.Generators, ", ")
		}
		fmt.Fprintf(deps.Stdout, "%-14s %-10s %s\n", p.Name, p.Strategy, identity)
	}
	return nil
}
