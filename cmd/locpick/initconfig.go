package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/locpick/fs"
)

// Run executes the init-config command.
func (c *InitConfigCmd) Run(deps *Dependencies) error {
	if !c.Force {
		if _, err := os.Stat(c.Path); err == nil {
			fmt.Fprintf(deps.Stderr, "error: %s already exists (use --force to overwrite)\n", c.Path)
			return fmt.Errorf("%s already exists", c.Path)
		}
	}

	if err := fs.WriteTemplate(c.Path); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s. Edit target_elements and urls, then run 'locpick run -c %s'.\n", c.Path, c.Path)
	return nil
}
