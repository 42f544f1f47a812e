// Package crawl provides documentation crawling orchestration.
// It coordinates URL discovery, fetching, extraction, conversion,
// and storage of documentation pages.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/ampdocs"
	"golang.org/x/sync/errgroup"
)

// Crawl limits.
const (
	// defaultMaxDepth bounds link-following distance from the seed URL
	// during frontier crawls.
	defaultMaxDepth = 3
	// defaultMaxPages caps the number of URLs processed in one crawl
	// to prevent runaway crawls on large sites.
	defaultMaxPages = 1000
)

// Crawler orchestrates the crawling of a documentation site.
// Required collaborators are Fetcher, Extractor, Converter, and
// Documents; the rest are optional and enable sitemap discovery,
// browser rendering, run bookkeeping, and politeness when set.
type Crawler struct {
	Sitemaps      ampdocs.SitemapService
	Fetcher       ampdocs.Fetcher
	RenderFetcher ampdocs.Fetcher // used when the probe shows JS-only content
	Extractor     ampdocs.Extractor
	Fallback      ampdocs.Extractor // used when Extractor finds no content region
	Converter     ampdocs.Converter
	Documents     ampdocs.DocumentService
	Runs          ampdocs.CrawlRunService
	Links         ampdocs.LinkExtractor
	RateLimiter   ampdocs.DomainLimiter
	TokenCounter  ampdocs.TokenCounter
	Filter        *ampdocs.URLFilter
	Concurrency   int
	MaxDepth      int
	MaxPages      int
	RetryDelays   []time.Duration
	Logger        *slog.Logger
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved     int
	Unchanged int
	Failed    int
	Bytes     int
	Tokens    int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int // 0 during frontier crawls, where the total is unknown
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressUnchanged
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	url        string
	title      string
	text       string
	markdown   string
	hash       string
	discovered []ampdocs.DiscoveredLink
	err        error
}

// Crawl fetches the documentation site rooted at baseURL and upserts
// every page into the document store. Discovery is sitemap-first; when
// the sitemap yields nothing the crawler falls back to breadth-first
// link following bounded by MaxDepth and MaxPages. The progress
// callback, if provided, receives events as crawling proceeds.
//
// Pages whose content hash matches the stored document count as
// Unchanged rather than Saved, but are still upserted so their
// last-updated timestamps reflect the crawl.
func (c *Crawler) Crawl(ctx context.Context, baseURL string, progress ProgressFunc) (*Result, error) {
	seed, err := url.Parse(baseURL)
	if err != nil || seed.Host == "" {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "invalid base URL %q", baseURL)
	}

	run := &ampdocs.CrawlRun{BaseURL: baseURL}
	if c.Runs != nil {
		if err := c.Runs.BeginRun(ctx, run); err != nil {
			return nil, fmt.Errorf("begin crawl run: %w", err)
		}
	}

	fetcher := c.pickFetcher(ctx, baseURL)

	var urls []string
	if c.Sitemaps != nil {
		urls, err = c.Sitemaps.DiscoverURLs(ctx, baseURL, c.Filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap discovery: %w", err)
		}
	}

	var result Result
	switch {
	case len(urls) > 0:
		c.crawlURLList(ctx, fetcher, urls, &result, progress)
	case c.Links != nil:
		c.logger().Info("sitemap yielded no URLs, falling back to link crawl",
			"baseURL", baseURL, "maxDepth", c.maxDepth())
		c.crawlFrontier(ctx, fetcher, seed, &result, progress)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: result.Saved + result.Unchanged + result.Failed,
			Total:     len(urls),
		})
	}

	if c.Runs != nil {
		run.Saved = result.Saved
		run.Unchanged = result.Unchanged
		run.Failed = result.Failed
		if err := c.Runs.FinishRun(ctx, run); err != nil {
			c.logger().Error("failed to record crawl run", "runID", run.ID, "error", err)
		}
	}

	return &result, nil
}

// crawlURLList processes a known URL list with a bounded worker pool.
// Workers fetch and process pages; the collection loop saves documents
// as results arrive, keeping store writes on a single goroutine.
func (c *Crawler) crawlURLList(ctx context.Context, fetcher ampdocs.Fetcher, urls []string, result *Result, progress ProgressFunc) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan crawlResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, pageURL := range urls {
			pageURL := pageURL
			g.Go(func() error {
				resultCh <- c.processURL(gctx, fetcher, pageURL, false)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	for res := range resultCh {
		completed++
		c.saveResult(ctx, &res, result, completed, total, progress)
	}
}

// crawlFrontier performs breadth-first link following from the seed URL.
// URLs are processed sequentially, which keeps rate limiting and
// frontier bookkeeping simple; sites large enough to need throughput
// are expected to publish a sitemap.
func (c *Crawler) crawlFrontier(ctx context.Context, fetcher ampdocs.Fetcher, seed *url.URL, result *Result, progress ProgressFunc) {
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	maxDepth := c.maxDepth()
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(ampdocs.DiscoveredLink{
		URL:      seed.String(),
		Priority: ampdocs.PriorityNavigation,
	})

	completed := 0
	for processed := 0; processed < maxPages; processed++ {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		res := c.processURL(ctx, fetcher, link.URL, true)

		for _, discovered := range res.discovered {
			if link.Depth+1 > maxDepth {
				continue
			}
			if !c.inScope(discovered.URL, seed) {
				continue
			}
			discovered.Depth = link.Depth + 1
			frontier.Push(discovered)
		}

		completed++
		c.saveResult(ctx, &res, result, completed, 0, progress)
	}
}

// processURL fetches a single page and runs it through the extraction
// pipeline. When followLinks is set the result also carries the links
// discovered on the page.
func (c *Crawler) processURL(ctx context.Context, fetcher ampdocs.Fetcher, pageURL string, followLinks bool) crawlResult {
	result := crawlResult{url: pageURL}

	if c.RateLimiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := c.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		return fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetry(ctx, pageURL, fetchFn, nil, c.RetryDelays)
	if err != nil {
		result.err = err
		return result
	}

	if followLinks && c.Links != nil {
		if links, err := c.Links.ExtractLinks(html, pageURL); err == nil {
			result.discovered = links
		}
	}

	extracted, err := c.extract(html)
	if err != nil {
		result.err = err
		return result
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.err = err
		return result
	}

	result.title = extracted.Title
	result.text = extracted.Text
	result.markdown = markdown
	result.hash = ComputeHash(extracted.Text)

	return result
}

// extract runs the primary extractor and falls back to the secondary
// one when the page has no recognizable content region.
func (c *Crawler) extract(html string) (*ampdocs.ExtractResult, error) {
	extracted, err := c.Extractor.Extract(html)
	if err == nil {
		return extracted, nil
	}
	if c.Fallback != nil && ampdocs.ErrorCode(err) == ampdocs.ENOTFOUND {
		return c.Fallback.Extract(html)
	}
	return nil, err
}

// saveResult upserts a processed page and updates counters. A page
// whose content hash matches the stored document counts as unchanged;
// the upsert still runs so the timestamp reflects the crawl.
func (c *Crawler) saveResult(ctx context.Context, res *crawlResult, result *Result, completed, total int, progress ProgressFunc) {
	if res.err != nil {
		result.Failed++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				URL:       res.url,
				Error:     res.err,
			})
		}
		return
	}

	unchanged := false
	if existing, err := c.Documents.FindDocumentByURL(ctx, res.url); err == nil {
		unchanged = existing.ContentHash == res.hash
	}

	doc := &ampdocs.Document{
		URL:             res.url,
		Title:           res.title,
		Content:         res.text,
		RenderedContent: res.markdown,
		Category:        CategorizeURL(res.url),
	}
	if err := c.Documents.UpsertDocument(ctx, doc); err != nil {
		result.Failed++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				URL:       res.url,
				Error:     err,
			})
		}
		return
	}

	eventType := ProgressCompleted
	if unchanged {
		result.Unchanged++
		eventType = ProgressUnchanged
	} else {
		result.Saved++
	}

	result.Bytes += len(res.markdown)
	if c.TokenCounter != nil {
		if tokens, err := c.TokenCounter.CountTokens(ctx, res.markdown); err == nil {
			result.Tokens += tokens
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      eventType,
			Completed: completed,
			Total:     total,
			URL:       res.url,
		})
	}
}

// inScope reports whether a discovered URL belongs to the crawl: same
// host as the seed, within its path prefix, not a binary asset, and
// passing the configured URL filter.
func (c *Crawler) inScope(rawURL string, seed *url.URL) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Host != seed.Host {
		return false
	}
	if !strings.HasPrefix(parsed.Path, seed.Path) {
		return false
	}
	if hasBinaryExtension(parsed.Path) {
		return false
	}
	return c.Filter.Match(rawURL)
}

// binaryExtensions lists asset suffixes that are never documentation
// pages.
var binaryExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".pdf", ".zip", ".tar", ".gz",
	".css", ".js", ".woff", ".woff2", ".ttf",
}

func hasBinaryExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range binaryExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// pickFetcher probes the seed URL to decide between the plain HTTP
// fetcher and the browser fetcher. The browser wins when plain HTTP
// fails outright or when rendering adds materially more content.
func (c *Crawler) pickFetcher(ctx context.Context, seedURL string) ampdocs.Fetcher {
	if c.RenderFetcher == nil {
		return c.Fetcher
	}

	httpHTML, err := c.Fetcher.Fetch(ctx, seedURL)
	if err != nil {
		c.logger().Info("plain HTTP probe failed, using browser fetcher",
			"url", seedURL, "error", err)
		return c.RenderFetcher
	}

	renderedHTML, err := c.RenderFetcher.Fetch(ctx, seedURL)
	if err != nil {
		return c.Fetcher
	}

	if ContentDiffers(httpHTML, renderedHTML, c.Extractor) {
		c.logger().Info("rendering adds content, using browser fetcher", "url", seedURL)
		return c.RenderFetcher
	}
	return c.Fetcher
}

func (c *Crawler) maxDepth() int {
	if c.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
