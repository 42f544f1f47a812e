package search

import (
	"github.com/fwojciec/ampdocs"
)

// intentHints carry guidance worth attaching whenever an intent is
// detected, independent of what the search found. Most intents need
// none; the docs themselves answer those queries.
var intentHints = map[ampdocs.Intent]string{
	ampdocs.IntentSetup:      "New Gen 2 apps are created with npx create-amplify@latest --template nextjs.",
	ampdocs.IntentError:      "The troubleshooting category collects common failure modes and their fixes.",
	ampdocs.IntentTimestamps: "Gen 2 models get createdAt and updatedAt automatically; do not declare them in the schema.",
	ampdocs.IntentImports:    "Gen 2 apps configure Amplify from amplify_outputs.json, not aws-exports.js.",
}

// noResultsHint is attached when a non-empty query matched nothing.
const noResultsHint = "No matches. Try fewer or broader terms, or browse a category with an empty query."

// strugglingHint is attached when the caller's session shows several
// consecutive empty-handed searches.
const strugglingHint = "Several searches in a row came up empty. Listing categories or browsing recent documents may help find the right terms."

// Hints composes the advisory strings for one search response, in a
// fixed order: intent guidance, then a no-results suggestion, then the
// struggling-session suggestion.
func Hints(qc *QueryContext, found int, session *ampdocs.Session) []string {
	var hints []string

	if h, ok := intentHints[qc.Intent]; ok {
		hints = append(hints, h)
	}
	if found == 0 && len(qc.Words) > 0 {
		hints = append(hints, noResultsHint)
	}
	if session != nil && session.Struggling() {
		hints = append(hints, strugglingHint)
	}

	return hints
}
