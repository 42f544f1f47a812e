package ampdocs

import "strings"

// patternQueries maps a pattern type to the search query that surfaces
// documents rich in that kind of example code.
var patternQueries = map[string]string{
	"auth":          "authentication signIn signUp cognito user authenticator",
	"api":           "graphql rest api endpoint mutation query data model",
	"storage":       "s3 storage upload download file fileuploader storageimage",
	"deployment":    "deploy hosting amplify build npx",
	"configuration": "configure amplify_outputs.json setup backend",
	"database":      "dynamodb database table data model schema",
	"functions":     "lambda function serverless backend handler",
}

// PatternTypes returns the known pattern types in display order.
func PatternTypes() []string {
	return []string{
		"auth",
		"api",
		"storage",
		"deployment",
		"configuration",
		"database",
		"functions",
	}
}

// PatternQuery returns the search query for a pattern type. Unknown
// types fall back to the type itself so callers can probe freely.
func PatternQuery(patternType string) string {
	if q, ok := patternQueries[patternType]; ok {
		return q
	}
	return patternType
}

// CodeBlocks extracts the contents of fenced code blocks from rendered
// markdown, in document order. The language tag on the opening fence is
// dropped; unterminated blocks are ignored.
func CodeBlocks(markdown string) []string {
	var blocks []string
	var current []string
	inBlock := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inBlock && strings.HasPrefix(trimmed, "```"):
			inBlock = true
			current = current[:0]
		case inBlock && trimmed == "```":
			inBlock = false
			if len(current) > 0 {
				blocks = append(blocks, strings.Join(current, "\n"))
			}
		case inBlock:
			current = append(current, line)
		}
	}

	return blocks
}
