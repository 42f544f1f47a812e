package search

import (
	"strings"
	"unicode/utf8"
)

// snippetLen is the target snippet length in runes.
const snippetLen = 200

// Snippet extracts a short excerpt from document content, centered on
// the first occurrence of any expansion term. Terms are tried in order,
// so the whole query wins over later synonym additions. When no term
// appears, the head of the content is used.
func Snippet(content string, terms []string) string {
	content = strings.Join(strings.Fields(content), " ")
	if content == "" {
		return ""
	}

	lower := strings.ToLower(content)
	match := -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		if idx := strings.Index(lower, term); idx >= 0 {
			match = idx
			break
		}
	}

	runes := []rune(content)
	if len(runes) <= snippetLen && match < 0 {
		return content
	}

	start := 0
	if match > 0 {
		// Byte offset to rune offset, then back up half a window so the
		// matched term sits mid-snippet.
		start = utf8.RuneCountInString(content[:match]) - snippetLen/2
		if start < 0 {
			start = 0
		}
	}

	end := start + snippetLen
	if end > len(runes) {
		end = len(runes)
		start = end - snippetLen
		if start < 0 {
			start = 0
		}
	}

	out := strings.TrimSpace(string(runes[start:end]))
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}
