// Package config loads tracer configuration from YAML, validated against an
// embedded CUE schema.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/calltrace/internal/filter"
)

// Config is the decoded tracer configuration. The zero value means: built-in
// exclusion patterns only, tracking enabled, info-level logging.
type Config struct {
	// Exclude holds extra frame-exclusion patterns.
	Exclude []string `yaml:"exclude"`

	// Tracking sets the gate default. Nil means enabled.
	Tracking *bool `yaml:"tracking"`

	// LogLevel is one of debug, info, warn, error. Empty means info.
	LogLevel string `yaml:"log_level"`
}

// Load reads, validates, and decodes a YAML config file.
// Validation runs before decoding so schema violations surface with CUE's
// field-level positions rather than as zero values downstream.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := Validate(path, data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Filter compiles the built-in exclusion patterns plus the configured
// extras.
func (c *Config) Filter() (*filter.Filter, error) {
	return filter.New(c.Exclude...)
}

// TrackingEnabled reports the configured gate default.
func (c *Config) TrackingEnabled() bool {
	return c.Tracking == nil || *c.Tracking
}

// Level maps the configured log level to a slog.Level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
