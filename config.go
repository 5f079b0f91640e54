package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	themeDark  = "dark"
	themeLight = "light"
)

// Config holds configuration for the application
type Config struct {
	SyncDelay time.Duration `yaml:"sync_delay"`
	Theme     string        `yaml:"theme"`
	LogFile   string        `yaml:"log_file"`
	LogLevel  string        `yaml:"log_level"`

	// Path the config was read from; empty when defaults were used
	Source string `yaml:"-"`
}

// fileConfig mirrors Config with durations as strings ("1500ms", "2s")
type fileConfig struct {
	SyncDelay string `yaml:"sync_delay"`
	Theme     string `yaml:"theme"`
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SyncDelay: defaultSyncDelay,
		Theme:     themeDark,
		LogLevel:  "info",
	}
}

// TestConfig returns a configuration for testing
func TestConfig(testDir string) *Config {
	return &Config{
		SyncDelay: 10 * time.Millisecond,
		Theme:     themeDark,
		LogFile:   filepath.Join(testDir, "ubermensch.log"),
		LogLevel:  "debug",
	}
}

// DefaultConfigPath returns ~/.ubermensch/config.yaml, or $UBERMENSCH_CONFIG if set
func DefaultConfigPath() string {
	if p := os.Getenv("UBERMENSCH_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ubermensch", "config.yaml")
}

// LoadConfig reads the YAML config at path and applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	default:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error parsing config %s: %w", path, err)
		}
		if err := cfg.merge(fc); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(fc fileConfig) error {
	if fc.SyncDelay != "" {
		d, err := time.ParseDuration(fc.SyncDelay)
		if err != nil {
			return fmt.Errorf("sync_delay: %w", err)
		}
		c.SyncDelay = d
	}
	if fc.Theme != "" {
		c.Theme = strings.ToLower(fc.Theme)
	}
	if fc.LogFile != "" {
		c.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		c.LogLevel = strings.ToLower(fc.LogLevel)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("UBERMENSCH_SYNC_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("UBERMENSCH_SYNC_DELAY: %w", err)
		}
		c.SyncDelay = d
	}
	if v := os.Getenv("UBERMENSCH_THEME"); v != "" {
		c.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("UBERMENSCH_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	return nil
}

// Validate rejects values the UI cannot work with
func (c *Config) Validate() error {
	if c.SyncDelay < 0 {
		return fmt.Errorf("sync_delay must not be negative, got %s", c.SyncDelay)
	}
	if c.Theme != themeDark && c.Theme != themeLight {
		return fmt.Errorf("theme must be %q or %q, got %q", themeDark, themeLight, c.Theme)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// MarshalYAML renders the config the same way it is read
func (c *Config) MarshalYAML() (interface{}, error) {
	return fileConfig{
		SyncDelay: c.SyncDelay.String(),
		Theme:     c.Theme,
		LogFile:   c.LogFile,
		LogLevel:  c.LogLevel,
	}, nil
}
