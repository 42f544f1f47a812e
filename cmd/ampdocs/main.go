package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ampdocs"
	"github.com/fwojciec/ampdocs/crawl"
	"github.com/fwojciec/ampdocs/fs"
	"github.com/fwojciec/ampdocs/gemini"
	"github.com/fwojciec/ampdocs/goquery"
	"github.com/fwojciec/ampdocs/htmltomarkdown"
	amphttp "github.com/fwojciec/ampdocs/http"
	"github.com/fwojciec/ampdocs/rod"
	"github.com/fwojciec/ampdocs/search"
	ampslog "github.com/fwojciec/ampdocs/slog"
	"github.com/fwojciec/ampdocs/sqlite"
	"github.com/fwojciec/ampdocs/toml"
	"github.com/fwojciec/ampdocs/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// defaultConfigPath is consulted when --config is not given. A missing
// file simply yields the built-in defaults.
const defaultConfigPath = "ampdocs.toml"

// Main represents the program.
type Main struct {
	// Database path. When empty, Run resolves it from AMPDOCS_DB or the
	// config file.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService ampdocs.DocumentService
	SearchService   ampdocs.SearchService
	RunService      ampdocs.CrawlRunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ampdocs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ampdocs --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Load configuration
	configPath := cli.Config
	if configPath == "" {
		configPath = defaultConfigPath
	} else if _, err := os.Stat(configPath); err != nil {
		fmt.Fprintf(stderr, "error: config file %s not found\n", configPath)
		return fmt.Errorf("config file %q: %w", configPath, err)
	}
	cfg, err := toml.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", ampdocs.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	// Open database
	dbPath := m.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath(cfg)
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AMPDOCS_DB or db_path in the config file to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	var logger *slog.Logger
	docs := ampdocs.DocumentService(sqlite.NewDocumentService(m.DB))
	runs := ampdocs.CrawlRunService(sqlite.NewCrawlRunService(m.DB))
	sitemaps := ampdocs.SitemapService(amphttp.NewSitemapService(nil))

	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
		docs = ampslog.NewLoggingDocumentService(docs, logger)
		sitemaps = ampslog.NewLoggingSitemapService(sitemaps, logger)
	}

	searcher := ampdocs.SearchService(&search.Engine{Documents: docs, Logger: logger})
	if cli.Debug {
		searcher = ampslog.NewLoggingSearchService(searcher, logger)
	}

	m.DocumentService = docs
	m.SearchService = searcher
	m.RunService = runs
	deps.DB = m.DB
	deps.Documents = docs
	deps.Search = searcher
	deps.Runs = runs
	deps.Sitemaps = sitemaps
	deps.NewWriter = func(dir string) ampdocs.DocumentWriter { return fs.NewWriter(dir) }

	// Wire command-specific dependencies based on command
	if cmd == "fetch" && !cli.Fetch.Preview {
		timeout := cfg.Crawl.FetchTimeout.Duration()

		var fetcher ampdocs.Fetcher = amphttp.NewFetcher(amphttp.WithTimeout(timeout))
		var renderFetcher ampdocs.Fetcher
		forceRender := cli.Fetch.Render || cfg.Crawl.Render

		browser, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		switch {
		case err == nil:
			defer browser.Close()
			if forceRender {
				fetcher = browser
			} else {
				renderFetcher = browser
			}
		case forceRender:
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		default:
			fmt.Fprintf(stderr, "browser unavailable, fetching without rendering: %v\n", err)
		}

		if cli.Debug {
			fetcher = ampslog.NewLoggingFetcher(fetcher, logger)
			if renderFetcher != nil {
				renderFetcher = ampslog.NewLoggingFetcher(renderFetcher, logger)
			}
		}

		// Tokenizer tables are fetched over the network on first use, so
		// token counting is best-effort.
		var tokenCounter ampdocs.TokenCounter
		if tc, err := gemini.NewTokenCounter(gemini.DefaultModel); err == nil {
			tokenCounter = tc
		} else {
			fmt.Fprintf(stderr, "token counting unavailable: %v\n", err)
		}

		crawlLogger := logger
		if crawlLogger == nil {
			crawlLogger = slog.New(slog.DiscardHandler)
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps:      sitemaps,
			Fetcher:       fetcher,
			RenderFetcher: renderFetcher,
			Extractor:     goquery.NewExtractor(),
			Fallback:      trafilatura.NewExtractor(),
			Converter:     htmltomarkdown.NewConverter(),
			Documents:     docs,
			Runs:          runs,
			Links:         goquery.NewLinkExtractor(),
			RateLimiter:   crawl.NewDomainLimiter(cfg.Crawl.RatePerSecond),
			TokenCounter:  tokenCounter,
			Concurrency:   cfg.Crawl.Concurrency,
			MaxDepth:      cfg.Crawl.MaxDepth,
			MaxPages:      cfg.Crawl.MaxPages,
			Logger:        crawlLogger,
		}
	}

	if cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Asker = gemini.NewAsker(client, docs, searcher, gemini.WithModel(cfg.Gemini.Model))
	}

	return kongCtx.Run(deps)
}

// defaultDBPath resolves the database location: the AMPDOCS_DB
// environment variable wins over the config file.
func defaultDBPath(cfg *toml.Config) string {
	if path := os.Getenv("AMPDOCS_DB"); path != "" {
		return path
	}
	return cfg.DBPath
}
