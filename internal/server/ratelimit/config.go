package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/resume-agent/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (a trailing "/" enables prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // Buckets untouched for this long are dropped by cleanup
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns the limiter configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// FromConfig builds the limiter configuration from the rate_limit section of the
// application config. Zero values fall back to DefaultConfig.
func FromConfig(rl config.RateLimitConfig) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = !rl.Disabled

	if rl.DefaultLimit > 0 {
		cfg.DefaultLimit = rl.DefaultLimit
	}
	if rl.DefaultWindowSec > 0 {
		cfg.DefaultWindow = time.Duration(rl.DefaultWindowSec) * time.Second
	}
	if rl.CleanupIntervalSec > 0 {
		cfg.CleanupInterval = time.Duration(rl.CleanupIntervalSec) * time.Second
	}
	for _, ip := range rl.Whitelist {
		cfg.Whitelist[ip] = true
	}
	for _, ip := range rl.Blacklist {
		cfg.Blacklist[ip] = true
	}

	if len(rl.Endpoints) > 0 {
		cfg.EndpointConfigs = make([]EndpointConfig, 0, len(rl.Endpoints))
		for _, e := range rl.Endpoints {
			cfg.EndpointConfigs = append(cfg.EndpointConfigs, EndpointConfig{
				Path:   e.Path,
				Method: e.Method,
				Limit:  e.Limit,
				Window: time.Duration(e.WindowSec) * time.Second,
				Burst:  e.Burst,
			})
		}
	}

	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// Anything not listed here uses the global default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/ats-score", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/enhance", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
	}
}
