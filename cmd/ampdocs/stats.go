package main

import (
	"fmt"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/crawl"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	stats, err := deps.Documents.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Documents: %d\n", stats.Documents)
	fmt.Fprintf(deps.Stdout, "Rendered size: %s\n", crawl.FormatBytes(stats.RenderedBytes))
	if !stats.LastUpdated.IsZero() {
		fmt.Fprintf(deps.Stdout, "Last updated: %s\n", stats.LastUpdated.Format("2006-01-02 15:04"))
	}

	if len(stats.ByCategory) > 0 {
		fmt.Fprintf(deps.Stdout, "\nBy category:\n")
		for _, category := range ampdocs.Categories() {
			if count := stats.ByCategory[category]; count > 0 {
				fmt.Fprintf(deps.Stdout, "  %-16s %d\n", category, count)
			}
		}
	}

	if deps.Runs != nil {
		if run, err := deps.Runs.LastRun(deps.Ctx); err == nil {
			fmt.Fprintf(deps.Stdout, "\nLast crawl: %s (%d saved, %d unchanged, %d failed)\n",
				run.FinishedAt.Format("2006-01-02 15:04"), run.Saved, run.Unchanged, run.Failed)
		}
	}
	return nil
}
