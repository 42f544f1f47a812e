package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/ampdocs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	if c.Category != "" && !ampdocs.ValidCategory(c.Category) {
		err := ampdocs.Errorf(ampdocs.EINVALID, "unknown category %q, valid categories: %s",
			c.Category, strings.Join(ampdocs.Categories(), ", "))
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	filter := ampdocs.DocumentFilter{SortBy: ampdocs.SortByCategoryTitle}
	if c.Category != "" {
		filter.Category = &c.Category
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents to export. Run 'ampdocs fetch' to crawl the documentation site.")
		return nil
	}

	writer := deps.NewWriter(c.Dir)
	counts := make(map[string]int)
	for _, doc := range docs {
		if err := writer.WriteDocument(deps.Ctx, doc); err != nil {
			if abortErr := writer.Abort(); abortErr != nil {
				fmt.Fprintf(deps.Stderr, "error discarding staged export: %v\n", abortErr)
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
			return err
		}
		category := doc.Category
		if category == "" {
			category = ampdocs.CategoryGeneral
		}
		counts[category]++
	}

	if err := writer.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), c.Dir)
	for _, category := range ampdocs.Categories() {
		if counts[category] > 0 {
			fmt.Fprintf(deps.Stdout, "  %-16s %d\n", category, counts[category])
		}
	}
	return nil
}
