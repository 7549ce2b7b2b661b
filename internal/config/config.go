// ABOUTME: Engine configuration: source list and timing knobs in a JSON file
// ABOUTME: Loads from the XDG config dir, writing defaults on first run

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/newsticker/internal/models"
)

// Config stores the engine's inbound contract: the source list plus fetch and
// rotation timing. It is loaded once and passed into constructors; nothing
// here is a process-wide singleton.
type Config struct {
	Sources []models.Source `json:"sources"`

	// FetchTimeoutSeconds bounds one feed fetch. Default 10.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`

	// RotateSeconds is the auto-advance interval. Default 15.
	RotateSeconds int `json:"rotate_seconds,omitempty"`

	// RefreshMinutes is the full-refresh cadence. Default 10.
	RefreshMinutes int `json:"refresh_minutes,omitempty"`

	// MaxArticles caps one refresh cycle's ranked output. Default 30.
	MaxArticles int `json:"max_articles,omitempty"`

	// HistorySize bounds backward navigation. Default 50.
	HistorySize int `json:"history_size,omitempty"`

	// MaxSummaryChars truncates cleaned summaries, in runes. Default 120;
	// set to -1 to disable truncation.
	MaxSummaryChars int `json:"max_summary_chars,omitempty"`

	// StripImageBoilerplate drops photo/image credit sentences from
	// summaries. Default true.
	StripImageBoilerplate *bool `json:"strip_image_boilerplate,omitempty"`
}

// Default timing values, matching the desktop app this engine grew out of.
const (
	DefaultFetchTimeoutSeconds = 10
	DefaultRotateSeconds       = 15
	DefaultRefreshMinutes      = 10
	DefaultMaxArticles         = 30
	DefaultHistorySize         = 50
	DefaultMaxSummaryChars     = 120
)

// FetchTimeout returns the per-source fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return DefaultFetchTimeoutSeconds * time.Second
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// RotateInterval returns the auto-advance interval.
func (c *Config) RotateInterval() time.Duration {
	if c.RotateSeconds <= 0 {
		return DefaultRotateSeconds * time.Second
	}
	return time.Duration(c.RotateSeconds) * time.Second
}

// RefreshInterval returns the full-refresh cadence.
func (c *Config) RefreshInterval() time.Duration {
	if c.RefreshMinutes <= 0 {
		return DefaultRefreshMinutes * time.Minute
	}
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// SummaryRunes returns the summary truncation limit in runes, 0 meaning
// unlimited.
func (c *Config) SummaryRunes() int {
	switch {
	case c.MaxSummaryChars < 0:
		return 0
	case c.MaxSummaryChars == 0:
		return DefaultMaxSummaryChars
	default:
		return c.MaxSummaryChars
	}
}

// StripBoilerplate reports whether summary boilerplate stripping is on.
func (c *Config) StripBoilerplate() bool {
	if c.StripImageBoilerplate == nil {
		return true
	}
	return *c.StripImageBoilerplate
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "newsticker", "config.json")
}

// Load reads config from disk. On first run the default config is written
// back so the user has a file to edit.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultConfig returns the first-run configuration with the stock Japanese
// tech news sources enabled.
func DefaultConfig() *Config {
	return &Config{
		Sources: []models.Source{
			{Name: "Gizmodo Japan", URL: "https://www.gizmodo.jp/index.xml", Enabled: true},
			{Name: "ITmedia", URL: "https://rss.itmedia.co.jp/rss/2.0/news_bursts.xml", Enabled: true},
			{Name: "Gigazine", URL: "https://gigazine.net/news/rss_2.0/", Enabled: true},
		},
	}
}
