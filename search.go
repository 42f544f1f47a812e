package ampdocs

import (
	"context"
	"time"
)

// Intent classifies the goal behind a search query. The classifier
// checks intents in declaration order and emits the first match;
// IntentGeneral is the fallback.
type Intent string

// Query intents.
const (
	IntentSetup      Intent = "setup"
	IntentAuth       Intent = "auth"
	IntentData       Intent = "data"
	IntentError      Intent = "error"
	IntentTimestamps Intent = "timestamps"
	IntentImports    Intent = "imports"
	IntentGeneral    Intent = "general"
)

// Severity grades anti-pattern findings.
type Severity string

// Anti-pattern severities.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AntiPattern flags a known misconception detected in a query, such as
// Gen 1 CLI habits applied to Gen 2 projects. Detection is independent
// of intent classification.
type AntiPattern struct {
	Issue      string   `json:"issue"`
	Correction string   `json:"correction"`
	Severity   Severity `json:"severity"`
}

// SearchResult is one ranked match. Results are derived fresh per query
// and never persisted; scores are only comparable within one response.
type SearchResult struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	Category    string    `json:"category"`
	LastUpdated time.Time `json:"lastUpdated"`
	Score       float64   `json:"score"`
}

// SearchOptions configures a search call.
type SearchOptions struct {
	// Category restricts results to a single category when non-nil.
	// A category outside the enumerated set is rejected with EINVALID
	// rather than silently ignored.
	Category *string `json:"category"`

	// Limit is the maximum number of results. Must be positive.
	Limit int `json:"limit"`

	// Session, when non-nil, records this query for struggling-user
	// detection. Sessions are owned by the caller, never by the engine.
	Session *Session `json:"-"`
}

// SearchResponse is the outcome of one search call.
type SearchResponse struct {
	// Results is ordered by score descending, most recent first on ties.
	// No two results share a URL.
	Results []SearchResult `json:"results"`

	// Intent is the classification of the query.
	Intent Intent `json:"intent"`

	// AntiPatterns lists misconceptions detected in the query.
	AntiPatterns []AntiPattern `json:"antiPatterns,omitempty"`

	// Hints carries advisory guidance, e.g. a broaden-your-search
	// suggestion after several empty-handed queries in a session.
	Hints []string `json:"hints,omitempty"`
}

// SearchService ranks stored documents against free-text queries.
type SearchService interface {
	// Search returns at most opts.Limit ranked results for the query.
	// An empty query browses the most recently updated documents.
	// A store failure degrades to an empty response, not an error.
	Search(ctx context.Context, query string, opts SearchOptions) (*SearchResponse, error)
}
