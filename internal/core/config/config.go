// Package config handles configuration loading and validation for textbox.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRendererURL    = "https://www.demirramon.com/gen/undertale_text_box.png"
	DefaultScraperBaseURL = "https://www.demirramon.com"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Config holds the application configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Render  RenderConfig  `yaml:"render"`
	Health  HealthConfig  `yaml:"health"`
	Scraper ScraperConfig `yaml:"scraper"`
	Discord DiscordConfig `yaml:"-"` // from the environment only
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// CatalogConfig configures the character catalog.
type CatalogConfig struct {
	Path           string        `yaml:"path"`            // defaults to <data-dir>/characters.json
	ReloadInterval time.Duration `yaml:"reload_interval"` // periodic reload cadence
	Watch          *bool         `yaml:"watch"`           // reload on file change (nil = true)
}

// WatchEnabled reports whether file watching is on.
func (c CatalogConfig) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// RenderConfig configures panel generation.
type RenderConfig struct {
	BaseURL           string `yaml:"base_url"`
	ChunkLimit        int    `yaml:"chunk_limit"`
	DefaultCharacter  string `yaml:"default_character"`
	DefaultExpression string `yaml:"default_expression"`
}

// HealthConfig configures the health check listener.
type HealthConfig struct {
	Addr string `yaml:"addr"`
}

// ScraperConfig configures the offline catalog scraper.
type ScraperConfig struct {
	BaseURL    string        `yaml:"base_url"`
	UserAgent  string        `yaml:"user_agent"`
	BatchSize  int           `yaml:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	Universes  []string      `yaml:"universes"`
}

// DiscordConfig holds secrets and deploy identifiers. These never live in
// the config file.
type DiscordConfig struct {
	Token    string `env:"DISCORD_TOKEN"`
	ClientID string `env:"CLIENT_ID"`
	GuildID  string `env:"GUILD_ID"`
	Port     string `env:"PORT"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			ReloadInterval: 5 * time.Minute,
		},
		Render: RenderConfig{
			BaseURL:           DefaultRendererURL,
			ChunkLimit:        69,
			DefaultCharacter:  "undertale-sans",
			DefaultExpression: "default",
		},
		Health: HealthConfig{
			Addr: ":8000",
		},
		Scraper: ScraperConfig{
			BaseURL:    DefaultScraperBaseURL,
			UserAgent:  DefaultUserAgent,
			BatchSize:  10,
			BatchDelay: 200 * time.Millisecond,
			Timeout:    30 * time.Second,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// dataDir. Discord settings are always read from the environment.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if err := env.Parse(&cfg.Discord); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Catalog.Path == "" && c.DataDir != "" {
		c.Catalog.Path = filepath.Join(c.DataDir, "characters.json")
	}
	if c.Catalog.ReloadInterval == 0 {
		c.Catalog.ReloadInterval = defaults.Catalog.ReloadInterval
	}

	if c.Render.BaseURL == "" {
		c.Render.BaseURL = defaults.Render.BaseURL
	}
	if c.Render.ChunkLimit == 0 {
		c.Render.ChunkLimit = defaults.Render.ChunkLimit
	}
	if c.Render.DefaultCharacter == "" {
		c.Render.DefaultCharacter = defaults.Render.DefaultCharacter
	}
	if c.Render.DefaultExpression == "" {
		c.Render.DefaultExpression = defaults.Render.DefaultExpression
	}

	if c.Health.Addr == "" {
		c.Health.Addr = defaults.Health.Addr
	}
	// The hosting platform hands out the listen port through $PORT.
	if c.Discord.Port != "" {
		c.Health.Addr = ":" + c.Discord.Port
	}

	if c.Scraper.BaseURL == "" {
		c.Scraper.BaseURL = defaults.Scraper.BaseURL
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = defaults.Scraper.UserAgent
	}
	if c.Scraper.BatchSize == 0 {
		c.Scraper.BatchSize = defaults.Scraper.BatchSize
	}
	if c.Scraper.BatchDelay == 0 {
		c.Scraper.BatchDelay = defaults.Scraper.BatchDelay
	}
	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = defaults.Scraper.Timeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path cannot be empty")
	}

	if c.Catalog.ReloadInterval < time.Second {
		return fmt.Errorf("catalog.reload_interval must be at least 1s")
	}

	if c.Render.ChunkLimit < 1 {
		return fmt.Errorf("render.chunk_limit must be at least 1")
	}

	if c.Scraper.BatchSize < 1 {
		return fmt.Errorf("scraper.batch_size must be at least 1")
	}

	return nil
}
