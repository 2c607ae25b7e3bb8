package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/storyseq/storyseq/fs"
	"gopkg.in/yaml.v3"
)

// Catalog backends.
const (
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Theme       string        `yaml:"theme"`       // "dark" or "light"
	Model       string        `yaml:"model"`       // gemini model override
	Style       string        `yaml:"style"`       // default style override for transforms
	Instruction string        `yaml:"instruction"` // default transform instruction
	Catalog     CatalogConfig `yaml:"catalog"`
	CacheDir    string        `yaml:"cache_dir"` // image cache location
	DataDir     string        `yaml:"-"`         // set by caller, not from config file
}

// CatalogConfig selects where saved sequences live.
type CatalogConfig struct {
	Backend string `yaml:"backend"` // "jsonl" or "sqlite"
	Path    string `yaml:"path"`    // overrides the default location
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(fs.DefaultConfigDir(), "config.yaml")
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Theme:    "dark",
		Catalog:  CatalogConfig{Backend: BackendJSONL},
		CacheDir: fs.DefaultCacheDir(),
	}
}

// LoadConfig reads the config file if it exists and applies defaults.
func LoadConfig(configPath, dataDir string) (*Config, error) {
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
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Catalog.Backend == "" {
		c.Catalog.Backend = BackendJSONL
	}
	if c.Catalog.Path == "" {
		name := "catalog.jsonl"
		if c.Catalog.Backend == BackendSQLite {
			name = "catalog.db"
		}
		c.Catalog.Path = filepath.Join(c.DataDir, name)
	}
	if c.CacheDir == "" {
		c.CacheDir = fs.DefaultCacheDir()
	}
	if c.Theme == "" {
		c.Theme = "dark"
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Catalog.Backend {
	case BackendJSONL, BackendSQLite:
	default:
		return fmt.Errorf("unknown catalog backend %q", c.Catalog.Backend)
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	return nil
}
