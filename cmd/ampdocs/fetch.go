package main

import (
	"fmt"
	"regexp"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/crawl"
	"github.com/fwojciec/ampdocs/toml"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	baseURL := c.URL
	if baseURL == "" && deps.Config != nil {
		baseURL = deps.Config.Crawl.BaseURL
	}
	if baseURL == "" {
		err := ampdocs.Errorf(ampdocs.EINVALID, "documentation URL required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}

	urlFilter, err := buildFilter(c.Filter, deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Hint: filters are regex patterns. Example: --filter '/react/' --filter 'build-a-backend'\n")
		return err
	}

	// Preview mode: show discovered URLs without crawling
	if c.Preview {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, baseURL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ampdocs.ErrorMessage(err))
			return err
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if deps.Crawler == nil {
		return nil
	}

	deps.Crawler.Filter = urlFilter
	if c.Concurrency > 0 {
		deps.Crawler.Concurrency = c.Concurrency
	}
	if c.MaxDepth > 0 {
		deps.Crawler.MaxDepth = c.MaxDepth
	}
	if c.MaxPages > 0 {
		deps.Crawler.MaxPages = c.MaxPages
	}

	fmt.Fprintf(deps.Stdout, "Fetching %s\n", baseURL)

	result, err := deps.Crawler.Crawl(deps.Ctx, baseURL, newProgressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d pages, %d unchanged, %d failed (%s, %s)\n",
		result.Saved, result.Unchanged, result.Failed,
		crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	return nil
}

// buildFilter compiles flag and config patterns into a URL filter. Flag
// patterns become includes on top of the configured ones. Returns nil
// when no patterns are configured.
func buildFilter(patterns []string, cfg *toml.Config) (*ampdocs.URLFilter, error) {
	var include, exclude []string
	if cfg != nil {
		include = append(include, cfg.Crawl.Include...)
		exclude = append(exclude, cfg.Crawl.Exclude...)
	}
	include = append(include, patterns...)

	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &ampdocs.URLFilter{}
	for _, pattern := range include {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, ampdocs.Errorf(ampdocs.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, ampdocs.Errorf(ampdocs.EINVALID, "invalid filter pattern %q: %v", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// newProgressPrinter renders crawl progress: a carriage-return updated
// counter on stdout, failures on their own stderr lines.
func newProgressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "Found %d URLs\n", event.Total)
			} else {
				fmt.Fprintln(deps.Stdout, "No sitemap found, following links")
			}
		case crawl.ProgressCompleted, crawl.ProgressUnchanged:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "\r[%d/%d]", event.Completed, event.Total)
			} else {
				fmt.Fprintf(deps.Stdout, "\r[%d]", event.Completed)
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			if event.Completed > 0 {
				fmt.Fprintln(deps.Stdout)
			}
		}
	}
}
