package main

import (
	"fmt"

	"github.com/fwojciec/ampdocs"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if err != nil {
		if ampdocs.ErrorCode(err) == ampdocs.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Run 'ampdocs fetch' to crawl the documentation site.\n", ampdocs.ErrorMessage(err))
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
