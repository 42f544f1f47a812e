package search

import (
	"strings"

	"github.com/fwojciec/ampdocs"
)

// QueryContext holds everything derived from one raw query: the
// lower-cased and typo-corrected token lists, the synonym-expanded term
// set, the classified intent, and any detected anti-patterns. It lives
// only for the duration of one search call.
type QueryContext struct {
	// Raw is the query as the caller supplied it.
	Raw string

	// Query is the whole query, lower-cased and trimmed.
	Query string

	// Words are the whitespace-delimited tokens of Query.
	Words []string

	// Corrected are Words with known misspellings replaced.
	Corrected []string

	// Expanded is the ordered expansion term set: the whole query
	// first, then each corrected word, then synonym and anti-pattern
	// additions. Always a superset of Query and Corrected; order is
	// deterministic so probe selection is reproducible.
	Expanded []string

	// Intent is the classified goal of the query.
	Intent ampdocs.Intent

	// AntiPatterns are misconceptions detected in the query.
	AntiPatterns []ampdocs.AntiPattern
}

// Normalize builds the QueryContext for a raw query. The zero query
// (empty or whitespace-only) yields empty Words; the engine treats that
// as a browse rather than a search.
func Normalize(raw string) *QueryContext {
	qc := &QueryContext{
		Raw:    raw,
		Query:  strings.ToLower(strings.TrimSpace(raw)),
		Intent: ClassifyIntent(raw),
	}
	qc.Words = strings.Fields(qc.Query)
	if len(qc.Words) == 0 {
		return qc
	}

	qc.Corrected = make([]string, len(qc.Words))
	for i, w := range qc.Words {
		qc.Corrected[i] = CorrectTypo(w)
	}

	qc.AntiPatterns = DetectAntiPatterns(raw)

	qc.Expanded = expand(qc)
	return qc
}

// expand builds the ordered expansion set: the corrected whole query,
// the raw whole query when it differs, corrected words, synonym-table
// additions, then anti-pattern correction terms. Duplicates are dropped
// on first occurrence, so a typo-free query and its misspelled twin
// expand to the same set apart from the raw query itself.
func expand(qc *QueryContext) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		out = append(out, term)
	}

	add(strings.Join(qc.Corrected, " "))
	add(qc.Query)
	for _, w := range qc.Corrected {
		add(w)
	}

	for _, topic := range synonymTopics {
		if !topic.triggeredBy(qc.Corrected) {
			continue
		}
		for _, term := range topic.terms {
			add(term)
		}
	}

	for _, ap := range qc.AntiPatterns {
		for _, term := range antiPatternExpansions[ap.Issue] {
			add(term)
		}
	}

	return out
}
