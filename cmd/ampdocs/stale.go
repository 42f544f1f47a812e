package main

import (
	"fmt"
	"time"
)

// warnIfStale prints a refresh suggestion to stderr when the last crawl
// finished more than ampdocs.StaleAfter ago. Commands that read the
// store call this so a rotting corpus gets noticed. When no run has
// finished yet it stays silent; the command itself will report the
// empty store.
func warnIfStale(deps *Dependencies) {
	if deps.Runs == nil {
		return
	}
	run, err := deps.Runs.LastRun(deps.Ctx)
	if err != nil {
		return
	}
	now := time.Now()
	if !run.Stale(now) {
		return
	}
	days := int(now.Sub(run.FinishedAt).Hours() / 24)
	fmt.Fprintf(deps.Stderr, "Documentation was last fetched %d days ago. Run 'ampdocs fetch' to refresh.\n", days)
}
