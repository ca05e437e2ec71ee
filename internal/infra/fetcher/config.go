package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config controls document fetching over HTTP.
type Config struct {
	// Timeout is the maximum duration for a single request.
	Timeout time.Duration

	// MaxBodySize is the response size cap in bytes. Enforced while
	// reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects is the redirect chain cap. Every redirect target is
	// revalidated against the private address check.
	MaxRedirects int

	// DenyPrivateIPs rejects URLs that resolve to loopback, private, or
	// link-local addresses. Keep it on anywhere the URL is user supplied.
	DenyPrivateIPs bool
}

// DefaultConfig returns production-safe fetch settings.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks the configuration fields.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 100*1024*1024 {
		return fmt.Errorf("max body size must be between 1KB and 100MB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}

// LoadConfigFromEnv loads fetch settings from environment variables,
// starting from the defaults. Unset variables keep their default; set but
// invalid variables are an error rather than a silent fallback, since a
// typo in a security setting should not weaken it.
//
// Environment variables:
//   - FETCH_TIMEOUT: duration string, e.g. "10s"
//   - FETCH_MAX_BODY_SIZE: integer bytes
//   - FETCH_MAX_REDIRECTS: integer
//   - FETCH_DENY_PRIVATE_IPS: "true" or "false"
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_TIMEOUT: %v", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if val := os.Getenv("FETCH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid FETCH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}

	if val := os.Getenv("FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("fetch configuration invalid: %w", err)
	}
	return cfg, nil
}
