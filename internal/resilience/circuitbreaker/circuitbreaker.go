// Package circuitbreaker wraps github.com/sony/gobreaker so calls against
// external services stop quickly once the service is clearly down instead
// of burning the retry budget of every chunk.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the trip policy for one circuit.
type Config struct {
	// Name identifies the circuit in logs.
	Name string

	// MaxRequests is how many probe requests the half-open state allows.
	MaxRequests uint32

	// Interval is the closed-state window after which counts reset.
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit.
	FailureThreshold float64

	// MinRequests is the minimum sample size before the ratio applies.
	MinRequests uint32
}

// DefaultConfig returns a general-purpose trip policy.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// ClaudeAPIConfig returns the trip policy for the Claude API circuit.
func ClaudeAPIConfig() Config {
	return DefaultConfig("claude-api")
}

// OpenAIAPIConfig returns the trip policy for the OpenAI API circuit.
func OpenAIAPIConfig() Config {
	return DefaultConfig("openai-api")
}

// URLFetchConfig returns the trip policy for source document fetching.
// More tolerant than the API circuits since arbitrary sites fail for
// reasons unrelated to our side.
func URLFetchConfig() Config {
	return Config{
		Name:             "url-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          120 * time.Second,
		FailureThreshold: 0.7,
		MinRequests:      10,
	}
}

// CircuitBreaker wraps a gobreaker.CircuitBreaker with state-change logging.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker with the given trip policy.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the circuit. An open circuit returns
// gobreaker.ErrOpenState without calling fn.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the circuit's current state.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the circuit's name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether the circuit is open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
