package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// URLs, listen addresses and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateURLs(),
		criterio.Run("health.addr", c.Health.Addr, isListenAddr),
		c.validateUniverses(),
	)
}

// ValidateBot checks the settings the bot needs to connect.
func (c *Config) ValidateBot() error {
	return criterio.ValidateStruct(
		criterio.Run("DISCORD_TOKEN", c.Discord.Token, required),
	)
}

// ValidateDeploy checks the settings command deployment needs.
func (c *Config) ValidateDeploy() error {
	return criterio.ValidateStruct(
		criterio.Run("DISCORD_TOKEN", c.Discord.Token, required),
		criterio.Run("CLIENT_ID", c.Discord.ClientID, required),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if _, err := os.Stat(c.Catalog.Path); os.IsNotExist(err) {
		warnings = append(warnings, ValidationWarning{
			Category: "Catalog",
			Item:     c.Catalog.Path,
			Message:  "catalog file does not exist; run the scraper first",
		})
	}

	if c.Render.ChunkLimit > 69 {
		warnings = append(warnings, ValidationWarning{
			Category: "Render",
			Item:     "chunk_limit",
			Message:  "segments longer than 69 characters overflow the rendered box",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory, and catalog directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("catalog.path", filepath.Dir(c.Catalog.Path), isDirectoryOrNotExist),
	)
}

func (c *Config) validateURLs() error {
	var errs criterio.FieldErrorsBuilder
	for field, raw := range map[string]string{
		"render.base_url":  c.Render.BaseURL,
		"scraper.base_url": c.Scraper.BaseURL,
	} {
		if err := isAbsoluteURL(raw); err != nil {
			errs = errs.Append(field, err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateUniverses() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Scraper.Universes))
	for i, u := range c.Scraper.Universes {
		field := fmt.Sprintf("scraper.universes[%d]", i)
		switch {
		case u == "":
			errs = errs.Append(field, fmt.Errorf("universe id cannot be empty"))
		case seen[u]:
			errs = errs.Append(field, fmt.Errorf("duplicate universe %q", u))
		}
		seen[u] = true
	}
	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func required(v string) error {
	if v == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func isAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

func isListenAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
