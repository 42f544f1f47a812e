package main

import (
	"fmt"

	"github.com/fwojciec/ampdocs"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	resp, err := deps.Search.Search(deps.Ctx, ampdocs.PatternQuery(c.Type), ampdocs.SearchOptions{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	if len(resp.Results) == 0 {
		fmt.Fprintf(deps.Stdout, "No %s examples found. Run 'ampdocs fetch' to crawl the documentation site.\n", c.Type)
		return nil
	}

	shown := 0
	for _, result := range resp.Results {
		doc, err := deps.Documents.FindDocumentByURL(deps.Ctx, result.URL)
		if err != nil {
			continue
		}
		blocks := ampdocs.CodeBlocks(doc.RenderedContent)
		if len(blocks) == 0 {
			continue
		}

		if shown > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		fmt.Fprintf(deps.Stdout, "## %s\n%s\n", title, doc.URL)
		for _, block := range blocks {
			fmt.Fprintf(deps.Stdout, "\n```\n%s\n```\n", block)
		}
		shown++
	}

	if shown == 0 {
		fmt.Fprintf(deps.Stdout, "No code examples found in %s documents.\n", c.Type)
	}
	return nil
}
