package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ampdocs"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	limit := c.Limit
	if limit <= 0 && deps.Config != nil {
		limit = deps.Config.Search.Limit
	}
	if limit <= 0 {
		limit = 10
	}

	opts := ampdocs.SearchOptions{Limit: limit}
	if c.Category != "" {
		opts.Category = &c.Category
	}

	resp, err := deps.Search.Search(deps.Ctx, c.Query, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	for _, ap := range resp.AntiPatterns {
		fmt.Fprintf(deps.Stderr, "note: %s; %s\n", ap.Issue, ap.Correction)
	}
	for _, hint := range resp.Hints {
		fmt.Fprintf(deps.Stderr, "hint: %s\n", hint)
	}

	fmt.Fprintln(deps.Stdout, ampdocs.FormatSearchResults(resp.Results))
	return nil
}
