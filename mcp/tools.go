package mcp

import (
	"context"
	"time"

	"github.com/fwojciec/ampdocs"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultSearchLimit is the result count used when a caller omits the
// limit.
const defaultSearchLimit = 10

// patternResultLimit caps how many documents findPatterns mines for
// code blocks.
const patternResultLimit = 5

// SearchDocsInput is the input schema for the searchDocs tool.
type SearchDocsInput struct {
	Query    string `json:"query" jsonschema:"the search query to run against the documentation"`
	Category string `json:"category,omitempty" jsonschema:"restrict results to one category, e.g. authentication or api-data"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchDocsOutput is the output schema for the searchDocs tool.
type SearchDocsOutput struct {
	Results      []SearchResultOutput `json:"results"`
	Count        int                  `json:"count"`
	Intent       string               `json:"intent"`
	AntiPatterns []AntiPatternOutput  `json:"antiPatterns,omitempty"`
	Hints        []string             `json:"hints,omitempty"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	Category    string    `json:"category"`
	Score       float64   `json:"score"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// AntiPatternOutput warns about a misconception detected in the query.
type AntiPatternOutput struct {
	Issue      string `json:"issue"`
	Correction string `json:"correction"`
	Severity   string `json:"severity"`
}

// GetDocumentInput is the input schema for the getDocument tool.
type GetDocumentInput struct {
	URL string `json:"url" jsonschema:"the full URL of the document to retrieve"`
}

// GetDocumentOutput is the output schema for the getDocument tool.
type GetDocumentOutput struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Markdown    string          `json:"markdown"`
	Outline     []SectionOutput `json:"outline,omitempty"`
}

// SectionOutput is one heading in a document outline.
type SectionOutput struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// ListCategoriesInput has no fields; the tool takes no arguments.
type ListCategoriesInput struct{}

// ListCategoriesOutput is the output schema for the listCategories tool.
type ListCategoriesOutput struct {
	Categories []CategoryCount `json:"categories"`
}

// CategoryCount pairs a category with its document count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GetStatsInput has no fields; the tool takes no arguments.
type GetStatsInput struct{}

// GetStatsOutput is the output schema for the getStats tool.
type GetStatsOutput struct {
	Documents     int            `json:"documents"`
	ByCategory    map[string]int `json:"byCategory,omitempty"`
	RenderedBytes int            `json:"renderedBytes"`
	LastUpdated   time.Time      `json:"lastUpdated"`
	LastCrawl     *CrawlSummary  `json:"lastCrawl,omitempty"`
}

// CrawlSummary describes the most recently finished crawl.
type CrawlSummary struct {
	BaseURL    string    `json:"baseUrl"`
	FinishedAt time.Time `json:"finishedAt"`
	AgeDays    int       `json:"ageDays"`
	Stale      bool      `json:"stale"`
	Saved      int       `json:"saved"`
	Unchanged  int       `json:"unchanged"`
	Failed     int       `json:"failed"`
}

// FindPatternsInput is the input schema for the findPatterns tool.
type FindPatternsInput struct {
	Pattern string `json:"pattern" jsonschema:"pattern type to find: auth, api, storage, deployment, configuration, database, or functions"`
}

// FindPatternsOutput is the output schema for the findPatterns tool.
type FindPatternsOutput struct {
	Pattern string         `json:"pattern"`
	Matches []PatternMatch `json:"matches"`
}

// PatternMatch is one document rich in example code for a pattern.
type PatternMatch struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	CodeBlocks []string `json:"codeBlocks,omitempty"`
}

// CreateCommandInput is the input schema for the getCreateCommand tool.
type CreateCommandInput struct {
	Template string `json:"template,omitempty" jsonschema:"project template: nextjs, react, vue, or vanilla (default nextjs)"`
}

// CreateCommandOutput is the output schema for the getCreateCommand tool.
type CreateCommandOutput struct {
	Command  string `json:"command"`
	Guidance string `json:"guidance"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "searchDocs",
		Description: "Search through the indexed Amplify documentation",
	}, s.handleSearchDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "getDocument",
		Description: "Retrieve a specific document by URL",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "listCategories",
		Description: "List all available documentation categories",
	}, s.handleListCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "getStats",
		Description: "Get statistics about the indexed documentation",
	}, s.handleGetStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "findPatterns",
		Description: "Find common Amplify Gen 2 patterns and examples",
	}, s.handleFindPatterns)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "getCreateCommand",
		Description: "Get the correct command for creating a new Amplify Gen 2 application",
	}, s.handleGetCreateCommand)
}

// handleSearchDocs handles the searchDocs tool invocation.
func (s *Server) handleSearchDocs(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocsInput,
) (*mcp.CallToolResult, SearchDocsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	opts := ampdocs.SearchOptions{
		Limit:   limit,
		Session: s.session,
	}
	if input.Category != "" {
		opts.Category = &input.Category
	}

	resp, err := s.search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchDocsOutput{}, err
	}

	output := SearchDocsOutput{
		Results: make([]SearchResultOutput, len(resp.Results)),
		Count:   len(resp.Results),
		Intent:  string(resp.Intent),
		Hints:   resp.Hints,
	}
	for i, r := range resp.Results {
		output.Results[i] = SearchResultOutput{
			URL:         r.URL,
			Title:       r.Title,
			Snippet:     r.Snippet,
			Category:    r.Category,
			Score:       r.Score,
			LastUpdated: r.LastUpdated,
		}
	}
	for _, ap := range resp.AntiPatterns {
		output.AntiPatterns = append(output.AntiPatterns, AntiPatternOutput{
			Issue:      ap.Issue,
			Correction: ap.Correction,
			Severity:   string(ap.Severity),
		})
	}

	return nil, output, nil
}

// handleGetDocument handles the getDocument tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	if input.URL == "" {
		return nil, GetDocumentOutput{}, ampdocs.Errorf(ampdocs.EINVALID, "url required")
	}

	doc, err := s.documents.FindDocumentByURL(ctx, input.URL)
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}

	output := GetDocumentOutput{
		URL:         doc.URL,
		Title:       doc.Title,
		Category:    doc.Category,
		LastUpdated: doc.LastUpdated,
		Markdown:    doc.RenderedContent,
	}
	for _, sec := range ampdocs.Sections(doc.RenderedContent) {
		output.Outline = append(output.Outline, SectionOutput{
			Level:  sec.Level,
			Title:  sec.Title,
			Anchor: sec.Anchor,
		})
	}

	return nil, output, nil
}

// handleListCategories handles the listCategories tool invocation.
func (s *Server) handleListCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListCategoriesInput,
) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	categories, err := s.documents.ListCategories(ctx)
	if err != nil {
		return nil, ListCategoriesOutput{}, err
	}

	stats, err := s.documents.Stats(ctx)
	if err != nil {
		return nil, ListCategoriesOutput{}, err
	}

	output := ListCategoriesOutput{
		Categories: make([]CategoryCount, len(categories)),
	}
	for i, name := range categories {
		output.Categories[i] = CategoryCount{
			Name:  name,
			Count: stats.ByCategory[name],
		}
	}

	return nil, output, nil
}

// handleGetStats handles the getStats tool invocation.
func (s *Server) handleGetStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetStatsInput,
) (*mcp.CallToolResult, GetStatsOutput, error) {
	stats, err := s.documents.Stats(ctx)
	if err != nil {
		return nil, GetStatsOutput{}, err
	}

	output := GetStatsOutput{
		Documents:     stats.Documents,
		ByCategory:    stats.ByCategory,
		RenderedBytes: stats.RenderedBytes,
		LastUpdated:   stats.LastUpdated,
	}

	if s.runs != nil {
		run, err := s.runs.LastRun(ctx)
		switch {
		case err == nil:
			now := time.Now()
			output.LastCrawl = &CrawlSummary{
				BaseURL:    run.BaseURL,
				FinishedAt: run.FinishedAt,
				AgeDays:    int(now.Sub(run.FinishedAt).Hours() / 24),
				Stale:      run.Stale(now),
				Saved:      run.Saved,
				Unchanged:  run.Unchanged,
				Failed:     run.Failed,
			}
		case ampdocs.ErrorCode(err) != ampdocs.ENOTFOUND:
			return nil, GetStatsOutput{}, err
		}
	}

	return nil, output, nil
}

// handleFindPatterns handles the findPatterns tool invocation. The
// pattern type maps to a canned query; the top matches are mined for
// fenced code blocks.
func (s *Server) handleFindPatterns(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindPatternsInput,
) (*mcp.CallToolResult, FindPatternsOutput, error) {
	if input.Pattern == "" {
		return nil, FindPatternsOutput{}, ampdocs.Errorf(ampdocs.EINVALID, "pattern required")
	}

	query := ampdocs.PatternQuery(input.Pattern)

	// Canned queries are not user searches; keep them out of the
	// struggling-user history.
	resp, err := s.search.Search(ctx, query, ampdocs.SearchOptions{Limit: patternResultLimit})
	if err != nil {
		return nil, FindPatternsOutput{}, err
	}

	output := FindPatternsOutput{
		Pattern: input.Pattern,
		Matches: make([]PatternMatch, 0, len(resp.Results)),
	}
	for _, r := range resp.Results {
		match := PatternMatch{
			URL:      r.URL,
			Title:    r.Title,
			Category: r.Category,
		}
		doc, err := s.documents.FindDocumentByURL(ctx, r.URL)
		if err != nil {
			if ampdocs.ErrorCode(err) != ampdocs.ENOTFOUND {
				return nil, FindPatternsOutput{}, err
			}
		} else {
			match.CodeBlocks = ampdocs.CodeBlocks(doc.RenderedContent)
		}
		output.Matches = append(output.Matches, match)
	}

	return nil, output, nil
}

// handleGetCreateCommand handles the getCreateCommand tool invocation.
func (s *Server) handleGetCreateCommand(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CreateCommandInput,
) (*mcp.CallToolResult, CreateCommandOutput, error) {
	command, err := CreateCommand(input.Template)
	if err != nil {
		return nil, CreateCommandOutput{}, err
	}

	return nil, CreateCommandOutput{
		Command:  command,
		Guidance: createGuidance(command),
	}, nil
}
