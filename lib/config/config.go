// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the nuxt-visa
// client.
//
// Configuration is loaded from a single YAML file specified by:
//   - NUXTVISA_CONFIG environment variable, or
//   - --config flag passed to the command
//
// Unlike the session state, the config file is optional: when neither
// is set the built-in defaults apply. When a path IS given, it must
// load cleanly. The only expansion performed is ${VAR} and
// ${VAR:-default} in path values for portability.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// API configures the backend endpoint.
	API APIConfig `yaml:"api"`

	// Notifications configures the notification poller.
	Notifications NotificationsConfig `yaml:"notifications"`

	// State configures where session files live.
	State StateConfig `yaml:"state"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`
}

// APIConfig configures the backend endpoint.
type APIConfig struct {
	// BaseURL is the base URL of the visa service API, including
	// any path prefix (e.g. "https://visa.example.com/api").
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request HTTP timeout as a Go duration
	// string. Default: 15s.
	Timeout string `yaml:"timeout"`
}

// NotificationsConfig configures the notification poller.
type NotificationsConfig struct {
	// Interval is how often the notification list refreshes, as a
	// Go duration string. Default: 30s.
	Interval string `yaml:"interval"`
}

// StateConfig configures where session files live.
type StateConfig struct {
	// Dir is the directory holding session.json and
	// active_tickets.json. Empty means the platform default
	// (see session.DefaultDir).
	Dir string `yaml:"dir"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info.
	Level string `yaml:"level"`

	// File is where log lines are written. Empty discards them,
	// which is the default for an interactive terminal program.
	File string `yaml:"file"`
}

// Default returns the default configuration. The API base URL has no
// default; it must come from the config file or the --api-base flag.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: "15s",
		},
		Notifications: NotificationsConfig{
			Interval: "30s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the NUXTVISA_CONFIG environment
// variable. When it is unset the defaults are returned as-is.
func Load() (*Config, error) {
	configPath := os.Getenv("NUXTVISA_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.State.Dir = expandVars(cfg.State.Dir)
	cfg.Log.File = expandVars(cfg.Log.File)

	return cfg, nil
}

// PollInterval parses Notifications.Interval.
func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Notifications.Interval)
	if err != nil {
		return 0, fmt.Errorf("invalid notifications.interval %q: %w", c.Notifications.Interval, err)
	}
	return d, nil
}

// RequestTimeout parses API.Timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	return d, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	}
	if _, err := c.RequestTimeout(); err != nil {
		errs = append(errs, err)
	}
	if d, err := c.PollInterval(); err != nil {
		errs = append(errs, err)
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("notifications.interval must be positive"))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log.level: %s", c.Log.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// environment.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}
