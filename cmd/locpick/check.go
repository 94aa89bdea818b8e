package main

import (
	"fmt"

	"github.com/fwojciec/locpick"
	"github.com/fwojciec/locpick/fs"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	cfg, err := fs.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(err))
		return err
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locpick.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s OK: %d URLs, %d fields, model %s, output %s\n",
		c.Config, len(cfg.URLs), len(cfg.Fields), cfg.Model, cfg.OutputPath)
	return nil
}
