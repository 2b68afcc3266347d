package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "RESUME_AGENT_"

// ApplyEnv overrides fields from RESUME_AGENT_* environment variables.
// Unset variables leave the field alone; malformed values are an error.
func (c *Config) ApplyEnv() error {
	var err error
	setInt := func(key string, dst *int) {
		if err != nil {
			return
		}
		if v, ok := lookup(key); ok {
			var n int
			if n, err = strconv.Atoi(v); err != nil {
				err = fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if err != nil {
			return
		}
		if v, ok := lookup(key); ok {
			var b bool
			if b, err = strconv.ParseBool(v); err != nil {
				err = fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
				return
			}
			*dst = b
		}
	}

	setInt("PORT", &c.Port)
	setInt("READ_TIMEOUT_SEC", &c.ReadTimeoutSec)
	setInt("WRITE_TIMEOUT_SEC", &c.WriteTimeoutSec)
	setInt("IDLE_TIMEOUT_SEC", &c.IdleTimeoutSec)
	setInt("SHUTDOWN_TIMEOUT_SEC", &c.ShutdownTimeoutSec)
	setBool("STRICT_SCHEMA", &c.StrictSchema)
	setBool("LOG_JSON", &c.LogJSON)
	setBool("RATE_LIMIT_DISABLED", &c.RateLimit.Disabled)
	setInt("RATE_LIMIT_DEFAULT_LIMIT", &c.RateLimit.DefaultLimit)
	setInt("RATE_LIMIT_DEFAULT_WINDOW_SEC", &c.RateLimit.DefaultWindowSec)
	setInt("RATE_LIMIT_CLEANUP_INTERVAL_SEC", &c.RateLimit.CleanupIntervalSec)
	if err != nil {
		return err
	}

	if v, ok := lookup("MAX_BODY_BYTES"); ok {
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid %sMAX_BODY_BYTES: %w", EnvPrefix, perr)
		}
		c.MaxBodyBytes = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}
	if v, ok := lookup("RATE_LIMIT_WHITELIST"); ok {
		c.RateLimit.Whitelist = splitList(v)
	}
	if v, ok := lookup("RATE_LIMIT_BLACKLIST"); ok {
		c.RateLimit.Blacklist = splitList(v)
	}

	return nil
}

// lookup returns the trimmed value of EnvPrefix+key when it is set and non-empty.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	return v, v != ""
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
