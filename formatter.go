package ampdocs

import (
	"fmt"
	"strings"
)

// FormatDocuments formats documents for display or LLM context.
// Uses title if available, falls back to URL.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		header := doc.Title
		if header == "" {
			header = doc.URL
		}
		parts = append(parts, "## Document: "+header+"\n"+doc.RenderedContent)
	}

	return strings.Join(parts, "\n\n")
}

// FormatSearchResults formats ranked results as a numbered listing for
// terminal display: title, URL, category with score, and the snippet.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		title := r.Title
		if title == "" {
			title = r.URL
		}
		fmt.Fprintf(&sb, "%d. %s\n   %s\n   [%s] score %.1f", i+1, title, r.URL, r.Category, r.Score)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "\n   %s", r.Snippet)
		}
	}
	return sb.String()
}
