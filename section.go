package ampdocs

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Section represents a heading in a document's rendered markdown.
type Section struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Sections parses rendered markdown and returns all headings (H1-H6).
// It generates URL-safe anchors matching the documentation site's
// fragment scheme and disambiguates duplicates with numeric suffixes.
// Headings inside fenced code blocks are ignored.
func Sections(markdown string) []Section {
	if markdown == "" {
		return nil
	}

	cleaned := removeCodeBlocks(markdown)

	headingRe := regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)
	matches := headingRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	sections := make([]Section, 0, len(matches))
	anchorCounts := make(map[string]int)

	for _, match := range matches {
		title := strings.TrimSpace(match[2])
		baseAnchor := anchorFor(title)

		anchor := baseAnchor
		if count, exists := anchorCounts[baseAnchor]; exists {
			anchor = baseAnchor + "-" + strconv.Itoa(count)
			anchorCounts[baseAnchor]++
		} else {
			anchorCounts[baseAnchor] = 1
		}

		sections = append(sections, Section{
			Level:  len(match[1]),
			Title:  title,
			Anchor: anchor,
		})
	}

	return sections
}

// FormatOutline renders sections as an indented outline, one heading
// per line, indented two spaces per level below the topmost heading.
func FormatOutline(sections []Section) string {
	if len(sections) == 0 {
		return ""
	}

	minLevel := sections[0].Level
	for _, s := range sections {
		if s.Level < minLevel {
			minLevel = s.Level
		}
	}

	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat("  ", s.Level-minLevel))
		sb.WriteString(s.Title)
	}
	return sb.String()
}

// removeCodeBlocks removes fenced code blocks from markdown.
func removeCodeBlocks(s string) string {
	codeBlockRe := regexp.MustCompile("(?s)```.*?```")
	return codeBlockRe.ReplaceAllString(s, "")
}

// anchorFor creates a URL-safe anchor from a heading title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func anchorFor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
