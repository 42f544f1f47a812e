package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/ampdocs"
	main "github.com/fwojciec/ampdocs/cmd/ampdocs"
	"github.com/fwojciec/ampdocs/crawl"
	"github.com/fwojciec/ampdocs/mock"
	"github.com/fwojciec/ampdocs/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDocumentStore returns a DocumentService mock that records upserts
// and reports every URL as not yet stored.
func newDocumentStore(saved *[]*ampdocs.Document) *mock.DocumentService {
	return &mock.DocumentService{
		UpsertDocumentFn: func(_ context.Context, doc *ampdocs.Document) error {
			*saved = append(*saved, doc)
			return nil
		},
		FindDocumentByURLFn: func(_ context.Context, url string) (*ampdocs.Document, error) {
			return nil, ampdocs.Errorf(ampdocs.ENOTFOUND, "document not found: %s", url)
		},
	}
}

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls discovered URLs into the store", func(t *testing.T) {
		t.Parallel()

		var saved []*ampdocs.Document
		documents := newDocumentStore(&saved)

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{
					"https://docs.amplify.aws/react/build-a-backend/auth/",
					"https://docs.amplify.aws/react/build-a-backend/storage/",
				}, nil
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body><main><p>Test content</p></main></body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{
					Title:       "Test Page",
					ContentHTML: "<p>Test content</p>",
					Text:        "Test content",
				}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test content", nil
			},
		}

		tokenCounter := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return len(text) / 4, nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:     sitemaps,
			Fetcher:      fetcher,
			Extractor:    extractor,
			Converter:    converter,
			Documents:    documents,
			TokenCounter: tokenCounter,
			Concurrency:  1,
			RetryDelays:  []time.Duration{0},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Documents: documents,
			Sitemaps:  sitemaps,
			Crawler:   crawler,
		}

		cmd := &main.FetchCmd{URL: "https://docs.amplify.aws/react/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, "authentication", saved[0].Category)
		assert.Contains(t, stdout.String(), "Found 2 URLs")
		assert.Contains(t, stdout.String(), "Saved 2 pages")
	})

	t.Run("defaults to the configured base URL", func(t *testing.T) {
		t.Parallel()

		var gotBaseURL string
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *ampdocs.URLFilter) ([]string, error) {
				gotBaseURL = baseURL
				return []string{"https://docs.amplify.aws/react/page1/"}, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Config:   toml.Default(),
			Sitemaps: sitemaps,
		}

		cmd := &main.FetchCmd{Preview: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, toml.Default().Crawl.BaseURL, gotBaseURL)
	})

	t.Run("requires a URL when none is configured", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.FetchCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, ampdocs.EINVALID, ampdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "URL required")
	})

	t.Run("preview mode shows URLs without crawling", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{"https://docs.amplify.aws/react/build-a-backend/auth/"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
		}

		cmd := &main.FetchCmd{
			URL:     "https://docs.amplify.aws/react/",
			Preview: true,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://docs.amplify.aws/react/build-a-backend/auth/")
	})

	t.Run("combines config and flag filters", func(t *testing.T) {
		t.Parallel()

		var gotFilter *ampdocs.URLFilter
		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, filter *ampdocs.URLFilter) ([]string, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		cfg := toml.Default()
		cfg.Crawl.Exclude = []string{"/legacy/"}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Config:   cfg,
			Sitemaps: sitemaps,
		}

		cmd := &main.FetchCmd{
			URL:     "https://docs.amplify.aws/react/",
			Preview: true,
			Filter:  []string{"/react/"},
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter)
		assert.True(t, gotFilter.Match("https://docs.amplify.aws/react/build-a-backend/"))
		assert.False(t, gotFilter.Match("https://docs.amplify.aws/vue/build-a-backend/"))
		assert.False(t, gotFilter.Match("https://docs.amplify.aws/react/legacy/page/"))
	})

	t.Run("invalid filter pattern shows helpful error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.FetchCmd{
			URL:    "https://docs.amplify.aws/react/",
			Filter: []string{"[invalid"},
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		errMsg := stderr.String()
		assert.Contains(t, errMsg, "[invalid")
		assert.Contains(t, errMsg, "regex")
		assert.Contains(t, errMsg, "Example", "error should include example patterns")
	})

	t.Run("shows live progress as URLs complete", func(t *testing.T) {
		t.Parallel()

		var saved []*ampdocs.Document
		documents := newDocumentStore(&saved)

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{
					"https://docs.amplify.aws/react/page1/",
					"https://docs.amplify.aws/react/page2/",
					"https://docs.amplify.aws/react/page3/",
				}, nil
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body>Test</body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{Title: "Test", ContentHTML: "<p>Test</p>", Text: "Test"}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test", nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Documents:   documents,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
			Crawler:  crawler,
		}

		cmd := &main.FetchCmd{URL: "https://docs.amplify.aws/react/"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		// Progress should use carriage return for in-place updates
		assert.Contains(t, output, "\r", "progress should use carriage return for in-place updates")
		// Progress should show [N/M] format
		assert.Contains(t, output, "/3]", "progress should show total count")
	})

	t.Run("shows progress without total when following links", func(t *testing.T) {
		t.Parallel()

		var saved []*ampdocs.Document
		documents := newDocumentStore(&saved)

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{}, nil // No sitemap, triggers the link crawl
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body><main><p>Content</p></main></body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{Title: "Test", ContentHTML: "<p>Test</p>", Text: "Test"}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test", nil
			},
		}

		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, _ string) ([]ampdocs.DiscoveredLink, error) {
				return nil, nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Documents:   documents,
			Links:       links,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
			Crawler:  crawler,
		}

		cmd := &main.FetchCmd{URL: "https://docs.amplify.aws/react/"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		// For link crawling (unknown total), should show [N] format, not [N/0]
		assert.Contains(t, output, "[1]", "progress should show count without total")
		assert.NotContains(t, output, "/0]", "progress should NOT show '/0]' for unknown total")
	})

	t.Run("prints failures on separate lines to stderr", func(t *testing.T) {
		t.Parallel()

		var saved []*ampdocs.Document
		documents := newDocumentStore(&saved)

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{
					"https://docs.amplify.aws/react/page1/",
					"https://docs.amplify.aws/react/failing/",
					"https://docs.amplify.aws/react/page3/",
				}, nil
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://docs.amplify.aws/react/failing/" {
					return "", ampdocs.Errorf(ampdocs.EUNAVAILABLE, "connection timeout")
				}
				return "<html><body>Test</body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{Title: "Test", ContentHTML: "<p>Test</p>", Text: "Test"}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test", nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Documents:   documents,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Sitemaps: sitemaps,
			Crawler:  crawler,
		}

		cmd := &main.FetchCmd{URL: "https://docs.amplify.aws/react/"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		stderrOutput := stderr.String()
		assert.Contains(t, stderrOutput, "failing", "stderr should contain the failing URL")
		assert.Contains(t, stderrOutput, "skip", "failures should be marked as skipped")

		assert.Contains(t, stdout.String(), "Saved 2 pages", "summary should show 2 saved pages")
		assert.Contains(t, stdout.String(), "1 failed", "summary should count the failure")
	})

	t.Run("counts unchanged pages separately", func(t *testing.T) {
		t.Parallel()

		documents := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, _ *ampdocs.Document) error {
				return nil
			},
			FindDocumentByURLFn: func(_ context.Context, url string) (*ampdocs.Document, error) {
				return &ampdocs.Document{
					URL:         url,
					ContentHash: crawl.ComputeHash("Test content"),
				}, nil
			},
		}

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{"https://docs.amplify.aws/react/page1/"}, nil
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body>Test content</body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{Title: "Test", ContentHTML: "<p>Test content</p>", Text: "Test content"}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test content", nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Documents:   documents,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
			Crawler:  crawler,
		}

		cmd := &main.FetchCmd{URL: "https://docs.amplify.aws/react/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Saved 0 pages, 1 unchanged")
	})

	t.Run("records the crawl run", func(t *testing.T) {
		t.Parallel()

		var saved []*ampdocs.Document
		documents := newDocumentStore(&saved)

		var finished *ampdocs.CrawlRun
		runs := &mock.CrawlRunService{
			BeginRunFn: func(_ context.Context, run *ampdocs.CrawlRun) error {
				run.ID = "run-1"
				run.StartedAt = time.Now()
				return nil
			},
			FinishRunFn: func(_ context.Context, run *ampdocs.CrawlRun) error {
				finished = run
				return nil
			},
		}

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{"https://docs.amplify.aws/react/page1/"}, nil
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body>Test</body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{Title: "Test", ContentHTML: "<p>Test</p>", Text: "Test"}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test", nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Documents:   documents,
			Runs:        runs,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
			Crawler:  crawler,
		}

		cmd := &main.FetchCmd{URL: "https://docs.amplify.aws/react/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, finished)
		assert.Equal(t, "run-1", finished.ID)
		assert.Equal(t, 1, finished.Saved)
	})

	t.Run("flags override configured crawl limits", func(t *testing.T) {
		t.Parallel()

		var saved []*ampdocs.Document
		documents := newDocumentStore(&saved)

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, _ string, _ *ampdocs.URLFilter) ([]string, error) {
				return []string{"https://docs.amplify.aws/react/page1/"}, nil
			},
		}

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body>Test</body></html>", nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*ampdocs.ExtractResult, error) {
				return &ampdocs.ExtractResult{Title: "Test", ContentHTML: "<p>Test</p>", Text: "Test"}, nil
			},
		}

		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "Test", nil
			},
		}

		crawler := &crawl.Crawler{
			Sitemaps:    sitemaps,
			Fetcher:     fetcher,
			Extractor:   extractor,
			Converter:   converter,
			Documents:   documents,
			Concurrency: 10,
			MaxPages:    1000,
			RetryDelays: []time.Duration{0},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Sitemaps: sitemaps,
			Crawler:  crawler,
		}

		cmd := &main.FetchCmd{
			URL:         "https://docs.amplify.aws/react/",
			Concurrency: 2,
			MaxDepth:    1,
			MaxPages:    5,
		}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 2, crawler.Concurrency)
		assert.Equal(t, 1, crawler.MaxDepth)
		assert.Equal(t, 5, crawler.MaxPages)
	})
}
