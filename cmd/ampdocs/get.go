package main

import (
	"fmt"

	"github.com/fwojciec/ampdocs"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	warnIfStale(deps)

	doc, err := deps.Documents.FindDocumentByURL(deps.Ctx, c.URL)
	if err != nil {
		if ampdocs.ErrorCode(err) == ampdocs.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no document stored for %s. Use 'ampdocs search' to find documents.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		}
		return err
	}

	if c.Outline {
		outline := ampdocs.FormatOutline(ampdocs.Sections(doc.RenderedContent))
		if outline == "" {
			fmt.Fprintln(deps.Stdout, "No headings found.")
			return nil
		}
		fmt.Fprintln(deps.Stdout, outline)
		return nil
	}

	title := doc.Title
	if title == "" {
		title = doc.URL
	}
	fmt.Fprintf(deps.Stdout, "# %s\n\nURL: %s\nCategory: %s\nLast updated: %s\n\n%s\n",
		title, doc.URL, doc.Category, doc.LastUpdated.Format("2006-01-02"), doc.RenderedContent)
	return nil
}
