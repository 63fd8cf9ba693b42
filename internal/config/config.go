// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Grammar file, the embedded English grammar when empty
	Grammar string `envconfig:"SENTPARSE_GRAMMAR" yaml:"grammar"`

	// Tokenizer used before parsing: treebank or whitespace
	Tokenizer string `envconfig:"SENTPARSE_TOKENIZER" yaml:"tokenizer"`

	// Number of sentences analyzed concurrently
	Workers int `envconfig:"SENTPARSE_WORKERS" yaml:"workers"`

	// Tagging configuration
	Tagging TaggingConfig `yaml:"tagging"`

	// Output configuration
	Output OutputConfig `yaml:"output"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// TaggingConfig holds POS tagging and tag-pattern chunking settings.
type TaggingConfig struct {
	Enabled bool     `envconfig:"SENTPARSE_TAGGING" yaml:"enabled"`
	Tagger  string   `envconfig:"SENTPARSE_TAGGER" yaml:"tagger"`
	Rules   []string `envconfig:"SENTPARSE_CHUNK_RULES" yaml:"rules"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format string `envconfig:"SENTPARSE_FORMAT" yaml:"format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"SENTPARSE_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"SENTPARSE_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from environment variables and optional config file.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if provided (overrides defaults)
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Tokenizer: "treebank",
		Workers:   4,
		Tagging: TaggingConfig{
			Enabled: true,
			Tagger:  "perceptron",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	validTokenizers := map[string]bool{"treebank": true, "whitespace": true}
	if !validTokenizers[c.Tokenizer] {
		errs = append(errs, fmt.Sprintf("invalid tokenizer: %s (must be treebank or whitespace)", c.Tokenizer))
	}

	if c.Workers < 1 {
		errs = append(errs, "workers must be positive")
	}

	validTaggers := map[string]bool{"perceptron": true, "fixed": true}
	if !validTaggers[c.Tagging.Tagger] {
		errs = append(errs, fmt.Sprintf("invalid tagger: %s (must be perceptron or fixed)", c.Tagging.Tagger))
	}

	validOutputs := map[string]bool{"text": true, "json": true}
	if !validOutputs[c.Output.Format] {
		errs = append(errs, fmt.Sprintf("invalid output format: %s (must be text or json)", c.Output.Format))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
