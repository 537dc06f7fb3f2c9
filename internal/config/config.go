// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Sender profile
	FullName    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`

	// Resources
	TemplatesDir string `json:"templates_dir,omitempty"` // Directory with templates and resumes
	Contacts     string `json:"contacts,omitempty"`      // Path to the contacts spreadsheet

	// Google OAuth
	GoogleClientID     string `json:"google_client_id,omitempty"`
	GoogleClientSecret string `json:"google_client_secret,omitempty"`
	RedirectURL        string `json:"redirect_url,omitempty"`
	TokenFile          string `json:"token_file,omitempty"` // Stored OAuth token for CLI runs

	// Behavior
	Port        int    `json:"port,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"` // Parallel draft creation; 0 = sequential
	DatabaseURL string `json:"database_url,omitempty"`
	LogLevel    string `json:"log_level,omitempty"`
	LogFormat   string `json:"log_format,omitempty"` // "json" or "console"
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields
// are enforced by CLI flag validation after merging, not here.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.TemplatesDir != "" {
		info, err := os.Stat(c.TemplatesDir)
		if os.IsNotExist(err) || (err == nil && !info.IsDir()) {
			return fmt.Errorf("config error: templates directory not found: %s", c.TemplatesDir)
		}
	}
	if c.Contacts != "" {
		if _, err := os.Stat(c.Contacts); os.IsNotExist(err) {
			return fmt.Errorf("config error: contacts file not found: %s", c.Contacts)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.FullName == "" {
		result.FullName = defaults.FullName
	}
	if result.PhoneNumber == "" {
		result.PhoneNumber = defaults.PhoneNumber
	}
	if result.LinkedInURL == "" {
		result.LinkedInURL = defaults.LinkedInURL
	}
	if result.TemplatesDir == "" {
		result.TemplatesDir = defaults.TemplatesDir
	}
	if result.Contacts == "" {
		result.Contacts = defaults.Contacts
	}
	if result.GoogleClientID == "" {
		result.GoogleClientID = defaults.GoogleClientID
	}
	if result.GoogleClientSecret == "" {
		result.GoogleClientSecret = defaults.GoogleClientSecret
	}
	if result.RedirectURL == "" {
		result.RedirectURL = defaults.RedirectURL
	}
	if result.TokenFile == "" {
		result.TokenFile = defaults.TokenFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	return result
}
