// Package search implements the ranking engine over scraped
// documentation. It normalizes free-text queries through typo and
// synonym tables, classifies query intent, probes the document store
// with substring matching, and scores candidates with a tiered
// heuristic tuned for Amplify Gen 2 documentation.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/ampdocs"
)

// maxProbeTerms caps how many expansion terms are used to probe the
// store, bounding fan-out for queries that expand broadly.
const maxProbeTerms = 5

// overFetchFactor controls how many candidates each probe requests
// relative to the result limit. Deduplication shrinks the merged pool,
// so each probe over-fetches to keep the final set full.
const overFetchFactor = 2

// Engine ranks stored documents against free-text queries. It only
// reads from the document store and builds call-local state, so
// concurrent searches are safe to interleave.
type Engine struct {
	Documents ampdocs.DocumentService
	Logger    *slog.Logger
}

var _ ampdocs.SearchService = (*Engine)(nil)

// Search returns at most opts.Limit ranked results for the query.
//
// An empty or whitespace-only query browses the most recently updated
// documents instead of matching nothing. A store failure degrades to an
// empty response and a log line rather than an error; callers treat
// search as best-effort. An unknown category is the one rejected input,
// surfaced as EINVALID together with the valid category set.
func (e *Engine) Search(ctx context.Context, query string, opts ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
	if opts.Limit <= 0 {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "search limit must be positive, got %d", opts.Limit)
	}

	category := opts.Category
	if category != nil && *category == "" {
		category = nil
	}
	if category != nil && !ampdocs.ValidCategory(*category) {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "unknown category %q, valid categories: %s",
			*category, strings.Join(ampdocs.Categories(), ", "))
	}

	qc := Normalize(query)

	if len(qc.Words) == 0 {
		return e.browse(ctx, category, opts)
	}

	candidates, err := e.probe(ctx, qc, category, opts.Limit)
	if err != nil {
		e.logger().Error("document store unavailable, degrading to empty result set", "query", query, "error", err)
		return e.respond(qc, nil, opts), nil
	}

	type scoredDoc struct {
		doc   *ampdocs.Document
		score float64
	}
	scored := make([]scoredDoc, 0, len(candidates))
	for _, doc := range candidates {
		scored = append(scored, scoredDoc{doc: doc, score: Score(doc, qc)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if !scored[i].doc.LastUpdated.Equal(scored[j].doc.LastUpdated) {
			return scored[i].doc.LastUpdated.After(scored[j].doc.LastUpdated)
		}
		return scored[i].doc.URL < scored[j].doc.URL
	})

	if len(scored) > opts.Limit {
		scored = scored[:opts.Limit]
	}

	results := make([]ampdocs.SearchResult, 0, len(scored))
	for _, sd := range scored {
		results = append(results, ampdocs.SearchResult{
			URL:         sd.doc.URL,
			Title:       sd.doc.Title,
			Snippet:     Snippet(sd.doc.Content, qc.Expanded),
			Category:    sd.doc.Category,
			LastUpdated: sd.doc.LastUpdated,
			Score:       sd.score,
		})
	}

	return e.respond(qc, results, opts), nil
}

// browse handles the empty-query fallback: the most recently updated
// documents, optionally category-filtered, with no relevance scoring.
func (e *Engine) browse(ctx context.Context, category *string, opts ampdocs.SearchOptions) (*ampdocs.SearchResponse, error) {
	qc := &QueryContext{Intent: ampdocs.IntentGeneral}

	docs, err := e.Documents.FindDocuments(ctx, ampdocs.DocumentFilter{
		Category: category,
		Limit:    opts.Limit,
		SortBy:   ampdocs.SortByLastUpdated,
	})
	if err != nil {
		e.logger().Error("document store unavailable, degrading to empty result set", "error", err)
		return e.respond(qc, nil, opts), nil
	}

	results := make([]ampdocs.SearchResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, ampdocs.SearchResult{
			URL:         doc.URL,
			Title:       doc.Title,
			Snippet:     Snippet(doc.Content, nil),
			Category:    doc.Category,
			LastUpdated: doc.LastUpdated,
		})
	}

	return e.respond(qc, results, opts), nil
}

// probe queries the store once per expansion term and merges the
// candidates, deduplicating by URL. The first occurrence of a URL wins
// so merged order is stable; scores are recomputed later from the full
// query context rather than taken from any single probe.
func (e *Engine) probe(ctx context.Context, qc *QueryContext, category *string, limit int) ([]*ampdocs.Document, error) {
	terms := qc.Expanded
	if len(terms) > maxProbeTerms {
		terms = terms[:maxProbeTerms]
	}

	seen := make(map[string]bool)
	var merged []*ampdocs.Document

	for _, term := range terms {
		term := term
		docs, err := e.Documents.FindDocuments(ctx, ampdocs.DocumentFilter{
			Category: category,
			Term:     &term,
			Limit:    limit * overFetchFactor,
			SortBy:   ampdocs.SortByLastUpdated,
		})
		if err != nil {
			return nil, fmt.Errorf("probe %q: %w", term, err)
		}
		for _, doc := range docs {
			if seen[doc.URL] {
				continue
			}
			seen[doc.URL] = true
			merged = append(merged, doc)
		}
	}

	return merged, nil
}

// respond assembles the final response and records the call in the
// caller's session, when one was provided.
func (e *Engine) respond(qc *QueryContext, results []ampdocs.SearchResult, opts ampdocs.SearchOptions) *ampdocs.SearchResponse {
	resp := &ampdocs.SearchResponse{
		Results:      results,
		Intent:       qc.Intent,
		AntiPatterns: qc.AntiPatterns,
	}

	if opts.Session != nil {
		opts.Session.Record(ampdocs.SessionEntry{
			Query:        qc.Raw,
			Intent:       qc.Intent,
			FoundResults: len(results) > 0,
			At:           time.Now(),
		})
	}

	resp.Hints = Hints(qc, len(results), opts.Session)
	return resp
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
