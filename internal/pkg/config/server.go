package config

import "time"

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port the server listens on.
	Port string

	// RequestTimeout bounds one summarization request end to end.
	RequestTimeout time.Duration

	// MaxBodyBytes caps request body size. It should fit the largest
	// document the pipeline is expected to accept.
	MaxBodyBytes int64

	// RateLimit and RateWindow define the per-IP request budget.
	RateLimit  int
	RateWindow time.Duration
}

// LoadServerConfig loads server settings from environment variables with
// fallback to defaults. Warnings describe any fallback applied.
//
// Environment variables:
//   - PORT (default: 8080)
//   - REQUEST_TIMEOUT (default: 120s)
//   - MAX_BODY_BYTES (default: 10485760)
//   - RATE_LIMIT, RATE_WINDOW (default: 30 per 1m)
func LoadServerConfig() (ServerConfig, []string) {
	var warnings []string
	collect := func(result LoadResult) LoadResult {
		warnings = append(warnings, result.Warnings...)
		return result
	}

	cfg := ServerConfig{
		Port: LoadEnvString("PORT", "8080"),
		RequestTimeout: collect(LoadEnvDuration("REQUEST_TIMEOUT", 120*time.Second, func(d time.Duration) error {
			return ValidateDuration(d, time.Second, 10*time.Minute)
		})).Value.(time.Duration),
		RateLimit: collect(LoadEnvInt("RATE_LIMIT", 30, func(v int) error {
			return ValidateIntRange(v, 1, 10000)
		})).Value.(int),
		RateWindow: collect(LoadEnvDuration("RATE_WINDOW", time.Minute, ValidatePositiveDuration)).Value.(time.Duration),
	}
	cfg.MaxBodyBytes = int64(collect(LoadEnvInt("MAX_BODY_BYTES", 10*1024*1024, func(v int) error {
		return ValidateIntRange(v, 1024, 100*1024*1024)
	})).Value.(int))

	return cfg, warnings
}
