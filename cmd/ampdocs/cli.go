package main

import (
	"context"
	"io"

	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/crawl"
	"github.com/fwojciec/ampdocs/sqlite"
	"github.com/fwojciec/ampdocs/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *toml.Config
	DB        *sqlite.DB
	Documents ampdocs.DocumentService
	Search    ampdocs.SearchService
	Runs      ampdocs.CrawlRunService
	Sitemaps  ampdocs.SitemapService
	Crawler   *crawl.Crawler
	Asker     ampdocs.Asker

	// NewWriter constructs the export target for a directory.
	NewWriter func(dir string) ampdocs.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `help:"Path to a TOML config file" type:"path" placeholder:"PATH"`
	Debug  bool   `help:"Log service activity to stderr"`

	Fetch      FetchCmd      `cmd:"" help:"Crawl the documentation site into the local store"`
	Search     SearchCmd     `cmd:"" help:"Search stored documentation"`
	Get        GetCmd        `cmd:"" help:"Show a stored document by URL"`
	Categories CategoriesCmd `cmd:"" help:"List document categories with counts"`
	Stats      StatsCmd      `cmd:"" help:"Show document store statistics"`
	Patterns   PatternsCmd   `cmd:"" help:"Show code examples for a pattern type"`
	Export     ExportCmd     `cmd:"" help:"Export stored documents as a markdown tree"`
	Serve      ServeCmd      `cmd:"" help:"Serve documentation tools over MCP"`
	Ask        AskCmd        `cmd:"" help:"Ask a question about the documentation"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL         string   `arg:"" optional:"" help:"Documentation root URL (defaults to the configured base URL)"`
	Preview     bool     `short:"p" help:"Show discovered URLs without crawling"`
	Render      bool     `help:"Force the headless browser fetcher"`
	Filter      []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
	Concurrency int      `short:"c" help:"Concurrent fetch limit"`
	MaxDepth    int      `help:"Link-following depth for sites without a sitemap"`
	MaxPages    int      `help:"Maximum pages to crawl"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string `arg:"" help:"Search query"`
	Category string `short:"C" help:"Restrict results to a category"`
	Limit    int    `short:"n" help:"Maximum results (defaults to the configured limit)"`
	JSON     bool   `help:"Emit the full response as JSON"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL     string `arg:"" help:"Document URL"`
	Outline bool   `help:"Print the section outline instead of the content"`
}

// CategoriesCmd is the "categories" subcommand.
type CategoriesCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct {
	Type  string `arg:"" help:"Pattern type (auth, api, storage, deployment, configuration, database, functions)"`
	Limit int    `short:"n" default:"5" help:"Maximum matching documents"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir      string `arg:"" optional:"" default:"amplify-docs" help:"Output directory"`
	Category string `short:"C" help:"Export a single category"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `help:"Serve over HTTP on this address instead of stdio" placeholder:"ADDR"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
}
