package summarizer

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// APIConfig holds configuration shared by the hosted-API backends.
// Values are loaded from environment variables with fallback to defaults.
type APIConfig struct {
	// MaxTokens caps the token budget requested from the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration

	// RequestsPerSecond is the sustained rate allowed against the backend
	// API, shared by all chunk invocations of a run.
	RequestsPerSecond float64

	// Burst is the rate limiter's burst capacity.
	Burst int
}

// Validate checks the configuration fields.
func (c APIConfig) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Burst)
	}
	return nil
}

// LoadAPIConfig loads backend API configuration from environment
// variables. Invalid values fall back to the defaults with a warning log.
//
// Environment variables:
//   - SUMMARIZER_MAX_TOKENS: API response token cap (default: 1024)
//   - SUMMARIZER_TIMEOUT: per-call timeout, e.g. "60s" (default: 60s)
//   - SUMMARIZER_RPS: sustained request rate (default: 2)
func LoadAPIConfig() APIConfig {
	cfg := APIConfig{
		MaxTokens:         1024,
		Timeout:           60 * time.Second,
		RequestsPerSecond: 2,
		Burst:             5,
	}

	if v := os.Getenv("SUMMARIZER_MAX_TOKENS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			slog.Warn("invalid SUMMARIZER_MAX_TOKENS, using default",
				slog.String("value", v),
				slog.Int("default", cfg.MaxTokens))
		} else {
			cfg.MaxTokens = parsed
		}
	}

	if v := os.Getenv("SUMMARIZER_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			slog.Warn("invalid SUMMARIZER_TIMEOUT, using default",
				slog.String("value", v),
				slog.Duration("default", cfg.Timeout))
		} else {
			cfg.Timeout = parsed
		}
	}

	if v := os.Getenv("SUMMARIZER_RPS"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			slog.Warn("invalid SUMMARIZER_RPS, using default",
				slog.String("value", v),
				slog.Float64("default", cfg.RequestsPerSecond))
		} else {
			cfg.RequestsPerSecond = parsed
		}
	}

	return cfg
}

// buildPrompt constructs the instruction sent to a hosted model. Length
// bounds are expressed in words; beam count and sampling are decoding
// hints that hosted APIs receive through their own knobs where available.
func buildPrompt(input string, maxWords, minWords int) string {
	return fmt.Sprintf(
		"Summarize the following text in at most %d words and at least %d words. "+
			"Reply with the summary only.\n\n%s",
		maxWords, minWords, input)
}
