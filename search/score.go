package search

import (
	"strings"

	"github.com/fwojciec/ampdocs"
)

// Base tiers, highest applicable wins. The tiers are spaced so that a
// whole-query title match outranks any single-word or expanded-term
// match before bonuses and boosts apply.
const (
	tierQueryInTitle    = 100
	tierQueryInURL      = 80
	tierWordInTitle     = 50
	tierExpandedInTitle = 30
	tierExpandedInBody  = 10
	tierFloor           = 1
)

// Additive bonuses, applied before the multiplicative boosts.
const (
	bonusIntentSignal = 25
	bonusTopicMatch   = 20
)

// Multiplicative boosts. Independent boosts compound so documents
// matching several signals rank disproportionately higher than
// documents matching one.
const (
	boostSignalInTitle = 2.0
	boostSignalInBody  = 1.5
	boostHomeCategory  = 1.8
)

// topicCategories maps strong topic markers in a query to the category
// where that topic's documentation lives. A document in the expected
// category earns the topic bonus.
var topicCategories = []struct {
	marker   string
	category string
}{
	{"schema", ampdocs.CategoryAPIData},
	{"real-time", ampdocs.CategoryAPIData},
	{"realtime", ampdocs.CategoryAPIData},
	{"generateclient", ampdocs.CategoryAPIData},
	{"subscription", ampdocs.CategoryAPIData},
	{"cognito", ampdocs.CategoryAuthentication},
	{"mfa", ampdocs.CategoryAuthentication},
	{"s3", ampdocs.CategoryStorage},
	{"upload", ampdocs.CategoryStorage},
	{"hosting", ampdocs.CategoryDeployment},
	{"pipeline", ampdocs.CategoryDeployment},
}

// Score computes the relevance of one document for a query context.
// The same document and context always produce the same score; scores
// are only ever compared within one search call.
//
// Final score = (base tier + intent bonus + topic bonus) × boost, where
// the base tier comes from substring containment, the bonuses from
// intent signal phrases and topic markers, and the boost compounds per
// matched signal location. Malformed documents with empty fields fall
// through to the floor tier rather than being dropped; scraped data is
// noisy and partial matches beat missing results.
func Score(doc *ampdocs.Document, qc *QueryContext) float64 {
	title := strings.ToLower(doc.Title)
	url := strings.ToLower(doc.URL)
	content := strings.ToLower(doc.Content)

	base := float64(tierFloor)
	switch {
	case qc.Query != "" && strings.Contains(title, qc.Query):
		base = tierQueryInTitle
	case qc.Query != "" && strings.Contains(url, qc.Query):
		base = tierQueryInURL
	case anyContained(title, qc.Corrected):
		base = tierWordInTitle
	case anyContained(title, qc.Expanded):
		base = tierExpandedInTitle
	case anyContained(content, qc.Expanded):
		base = tierExpandedInBody
	}

	signalInTitle, signalInBody := false, false
	for _, phrase := range intentSignals[qc.Intent] {
		if strings.Contains(title, phrase) {
			signalInTitle = true
		}
		if strings.Contains(content, phrase) {
			signalInBody = true
		}
	}

	bonus := 0.0
	if signalInTitle || signalInBody {
		bonus += bonusIntentSignal
	}
	for _, tc := range topicCategories {
		if strings.Contains(qc.Query, tc.marker) && doc.Category == tc.category {
			bonus += bonusTopicMatch
			break
		}
	}

	boost := 1.0
	if signalInTitle {
		boost *= boostSignalInTitle
	}
	if signalInBody {
		boost *= boostSignalInBody
	}
	if home, ok := intentHomeCategory[qc.Intent]; ok && doc.Category == home {
		boost *= boostHomeCategory
	}

	return (base + bonus) * boost
}

// anyContained reports whether any term appears in the haystack.
// Empty terms never match.
func anyContained(haystack string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
