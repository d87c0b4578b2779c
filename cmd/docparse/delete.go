package main

import (
	"fmt"

	"github.com/fwojciec/docparse"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docparse.Errorf(docparse.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if docparse.ErrorCode(err) == docparse.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'docparse runs' to see saved runs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", docparse.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %q\n", c.ID)
	return nil
}
