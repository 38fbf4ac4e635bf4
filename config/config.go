// Package config loads the nova2k configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/joho/godotenv"
	"github.com/rivsoncs/nova2k"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "nova2k.yaml"

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"log"`
	// Rules adds keywords to the built-in ones, by rule name.
	Rules  nova2k.Keywords `yaml:"rules"`
	Gemini struct {
		Model  string `yaml:"model"`
		APIKey string `yaml:"api_key"`
	} `yaml:"gemini"`
	PDF struct {
		LineTolerance float64 `yaml:"line_tolerance"`
	} `yaml:"pdf"`
}

// Load reads config from a YAML file, then applies the .env file of the
// current directory and environment variable overrides. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("NOVA2K_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("NOVA2K_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("NOVA2K_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}

	// Defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"console", "json"}, c.Log.Format) {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.PDF.LineTolerance < 0 {
		return fmt.Errorf("pdf.line_tolerance must not be negative")
	}
	known := nova2k.DefaultKeywords()
	for name := range c.Rules {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("rules: unknown rule %q", name)
		}
	}
	return nil
}

// Keywords returns the built-in keywords extended with the configured ones.
func (c *Config) Keywords() nova2k.Keywords {
	return nova2k.DefaultKeywords().Merge(c.Rules)
}
