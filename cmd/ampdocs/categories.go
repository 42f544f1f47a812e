package main

import (
	"fmt"

	"github.com/fwojciec/ampdocs"
)

// Run executes the categories command.
func (c *CategoriesCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	categories, err := deps.Documents.ListCategories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	if len(categories) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents stored. Run 'ampdocs fetch' to crawl the documentation site.")
		return nil
	}

	stats, err := deps.Documents.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	for _, category := range categories {
		fmt.Fprintf(deps.Stdout, "%-16s %d\n", category, stats.ByCategory[category])
	}
	return nil
}
