// Package config provides configuration management for domrules hosts.
package config

import (
	"fmt"
	"slices"
	"strings"
)

// Config holds settings shared by the CLI and embedding hosts.
type Config struct {
	// Debug turns on per-rule diagnostics and makes rule failures propagate
	// to the caller instead of only being logged.
	Debug     bool
	LogLevel  string
	LogFormat string
	// RulesAttr is the markup attribute rules strings are read from when no
	// rules string is given explicitly.
	RulesAttr string
	// CleanArrays is the JSON encoder's default for integer-keyed objects.
	CleanArrays bool
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Debug:       false,
		LogLevel:    "info",
		LogFormat:   "json",
		RulesAttr:   "data-rules",
		CleanArrays: true,
	}
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "text"}
)

// validateConfig checks log level, log format and rules attribute.
func validateConfig(cfg *Config) error {
	if !slices.Contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("log_level must be one of %s, got %q", strings.Join(validLevels, ", "), cfg.LogLevel)
	}
	if !slices.Contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("log_format must be one of %s, got %q", strings.Join(validFormats, ", "), cfg.LogFormat)
	}
	if strings.TrimSpace(cfg.RulesAttr) == "" {
		return fmt.Errorf("rules_attr must not be empty")
	}
	return nil
}
