// Package config loads and validates the checker configuration from an
// optional YAML file. It provides typed structs for BM25 tuning, the
// comparison run, logging, and metrics export.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	BM25    BM25Config    `yaml:"bm25"`
	Check   CheckConfig   `yaml:"check"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// BM25Config holds the scorer's tuning parameters.
type BM25Config struct {
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`
}

// CheckConfig controls the comparison run and how much of it the text
// report shows.
type CheckConfig struct {
	TopK                  int `yaml:"topK"`
	Workers               int `yaml:"workers"`
	PreviewLength         int `yaml:"previewLength"`
	MaxReportedMismatches int `yaml:"maxReportedMismatches"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export. An empty Textfile
// disables it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file (if provided) on top of the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		BM25: BM25Config{
			K1: 1.2,
			B:  0.75,
		},
		Check: CheckConfig{
			TopK:                  50,
			Workers:               0,
			PreviewLength:         80,
			MaxReportedMismatches: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate rejects values the scorer or the report cannot work with.
func (c *Config) Validate() error {
	if c.BM25.K1 < 0 {
		return fmt.Errorf("bm25.k1 must be >= 0, got %v", c.BM25.K1)
	}
	if c.BM25.B < 0 || c.BM25.B > 1 {
		return fmt.Errorf("bm25.b must be within [0, 1], got %v", c.BM25.B)
	}
	if c.Check.TopK < 0 {
		return fmt.Errorf("check.topK must be >= 0, got %d", c.Check.TopK)
	}
	if c.Check.Workers < 0 {
		return fmt.Errorf("check.workers must be >= 0, got %d", c.Check.Workers)
	}
	if c.Check.PreviewLength < 0 {
		return fmt.Errorf("check.previewLength must be >= 0, got %d", c.Check.PreviewLength)
	}
	if c.Check.MaxReportedMismatches < 0 {
		return fmt.Errorf("check.maxReportedMismatches must be >= 0, got %d", c.Check.MaxReportedMismatches)
	}
	return nil
}
