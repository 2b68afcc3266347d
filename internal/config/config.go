// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// HTTP server
	Port               int      `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	ReadTimeoutSec     int      `json:"read_timeout_sec,omitempty" yaml:"read_timeout_sec,omitempty" validate:"gte=0"`
	WriteTimeoutSec    int      `json:"write_timeout_sec,omitempty" yaml:"write_timeout_sec,omitempty" validate:"gte=0"`
	IdleTimeoutSec     int      `json:"idle_timeout_sec,omitempty" yaml:"idle_timeout_sec,omitempty" validate:"gte=0"`
	ShutdownTimeoutSec int      `json:"shutdown_timeout_sec,omitempty" yaml:"shutdown_timeout_sec,omitempty" validate:"gte=0"`
	MaxBodyBytes       int64    `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"gte=0"`
	CORSOrigins        []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`

	// Behavior
	StrictSchema bool `json:"strict_schema,omitempty" yaml:"strict_schema,omitempty"` // Reject résumés that do not match the résumé schema

	// Logging
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogJSON  bool   `json:"log_json,omitempty" yaml:"log_json,omitempty"`

	RateLimit RateLimitConfig `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	Disabled           bool            `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	DefaultLimit       int             `json:"default_limit,omitempty" yaml:"default_limit,omitempty" validate:"gte=0"`
	DefaultWindowSec   int             `json:"default_window_sec,omitempty" yaml:"default_window_sec,omitempty" validate:"gte=0"`
	CleanupIntervalSec int             `json:"cleanup_interval_sec,omitempty" yaml:"cleanup_interval_sec,omitempty" validate:"gte=0"`
	Whitelist          []string        `json:"whitelist,omitempty" yaml:"whitelist,omitempty" validate:"dive,ip"`
	Blacklist          []string        `json:"blacklist,omitempty" yaml:"blacklist,omitempty" validate:"dive,ip"`
	Endpoints          []EndpointLimit `json:"endpoints,omitempty" yaml:"endpoints,omitempty" validate:"dive"`
}

// EndpointLimit overrides the default rate limit for one endpoint.
type EndpointLimit struct {
	Path      string `json:"path" yaml:"path" validate:"required,startswith=/"`
	Method    string `json:"method" yaml:"method" validate:"required,oneof=GET POST PUT DELETE PATCH"`
	Limit     int    `json:"limit" yaml:"limit" validate:"gte=0"`
	WindowSec int    `json:"window_sec" yaml:"window_sec" validate:"gte=0"`
	Burst     int    `json:"burst,omitempty" yaml:"burst,omitempty" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:               8080,
		ReadTimeoutSec:     30,
		WriteTimeoutSec:    30,
		IdleTimeoutSec:     60,
		ShutdownTimeoutSec: 30,
		MaxBodyBytes:       1 << 20,
		CORSOrigins:        []string{"*"},
		LogLevel:           "info",
		RateLimit: RateLimitConfig{
			DefaultLimit:       1000,
			DefaultWindowSec:   60,
			CleanupIntervalSec: 300,
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
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

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = validator.New()

// Error reports an invalid configuration value.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	blacklisted := make(map[string]bool, len(c.RateLimit.Blacklist))
	for _, ip := range c.RateLimit.Blacklist {
		blacklisted[ip] = true
	}
	for _, ip := range c.RateLimit.Whitelist {
		if blacklisted[ip] {
			return &Error{Field: "RateLimit.Whitelist", Message: ip + " is both whitelisted and blacklisted"}
		}
	}

	for _, e := range c.RateLimit.Endpoints {
		if e.Limit > 0 && e.WindowSec == 0 {
			return &Error{Field: "RateLimit.Endpoints", Message: fmt.Sprintf("rate limit for %s %s needs a window", e.Method, e.Path)}
		}
	}

	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return &Error{Field: fe.Namespace(), Message: fmt.Sprintf("failed '%s' validation", fe.Tag())}
	}
	return fmt.Errorf("config error: %w", err)
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ReadTimeoutSec == 0 {
		result.ReadTimeoutSec = defaults.ReadTimeoutSec
	}
	if result.WriteTimeoutSec == 0 {
		result.WriteTimeoutSec = defaults.WriteTimeoutSec
	}
	if result.IdleTimeoutSec == 0 {
		result.IdleTimeoutSec = defaults.IdleTimeoutSec
	}
	if result.ShutdownTimeoutSec == 0 {
		result.ShutdownTimeoutSec = defaults.ShutdownTimeoutSec
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	rl := &result.RateLimit
	if rl.DefaultLimit == 0 {
		rl.DefaultLimit = defaults.RateLimit.DefaultLimit
	}
	if rl.DefaultWindowSec == 0 {
		rl.DefaultWindowSec = defaults.RateLimit.DefaultWindowSec
	}
	if rl.CleanupIntervalSec == 0 {
		rl.CleanupIntervalSec = defaults.RateLimit.CleanupIntervalSec
	}
	if len(rl.Endpoints) == 0 {
		rl.Endpoints = defaults.RateLimit.Endpoints
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags and env always win for bools)

	return result
}

// ReadTimeout returns the HTTP read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSec)
}

// WriteTimeout returns the HTTP write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return seconds(c.WriteTimeoutSec)
}

// IdleTimeout returns the HTTP keep-alive idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	return seconds(c.IdleTimeoutSec)
}

// ShutdownTimeout returns how long graceful shutdown may take.
func (c *Config) ShutdownTimeout() time.Duration {
	return seconds(c.ShutdownTimeoutSec)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
