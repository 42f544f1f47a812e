// Package toml loads service configuration from TOML files.
package toml

import (
	"os"
	"time"

	"github.com/fwojciec/ampdocs"
	"github.com/pelletier/go-toml/v2"
)

// Duration decodes TOML strings like "10s" into a time.Duration.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return ampdocs.Errorf(ampdocs.EINVALID, "invalid duration %q", string(text))
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config holds the service configuration.
type Config struct {
	// DBPath is the SQLite database file path.
	DBPath string `toml:"db_path"`

	Crawl  CrawlConfig  `toml:"crawl"`
	Search SearchConfig `toml:"search"`
	Gemini GeminiConfig `toml:"gemini"`
}

// CrawlConfig holds crawler settings.
type CrawlConfig struct {
	// BaseURL is the documentation root to crawl.
	BaseURL string `toml:"base_url"`

	MaxDepth      int     `toml:"max_depth"`
	MaxPages      int     `toml:"max_pages"`
	Concurrency   int     `toml:"concurrency"`
	RatePerSecond float64 `toml:"rate_per_second"`

	// Render forces the headless browser fetcher instead of probing.
	Render bool `toml:"render"`

	FetchTimeout Duration `toml:"fetch_timeout"`

	// Include and Exclude are regular expressions applied to discovered
	// URLs. Include, when present, must match; Exclude always wins.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	// Limit is the default number of results per search.
	Limit int `toml:"limit"`

	// SessionSize is the number of recent queries retained for
	// struggling-user detection.
	SessionSize int `toml:"session_size"`
}

// GeminiConfig holds question answering settings.
type GeminiConfig struct {
	// Model overrides the Gemini model. Empty uses the asker's default.
	Model string `toml:"model"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		DBPath: "ampdocs.db",
		Crawl: CrawlConfig{
			BaseURL:       "https://docs.amplify.aws/react/",
			MaxDepth:      3,
			MaxPages:      1000,
			Concurrency:   10,
			RatePerSecond: 2,
			FetchTimeout:  Duration(10 * time.Second),
		},
		Search: SearchConfig{
			Limit:       10,
			SessionSize: ampdocs.DefaultSessionSize,
		},
	}
}

// Load reads the configuration file at path, layered over Default. A
// missing file yields the defaults; a file that fails to parse is an
// EINVALID error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, ampdocs.Errorf(ampdocs.EINVALID, "parse config %s: %v", path, err)
	}

	return cfg, nil
}
