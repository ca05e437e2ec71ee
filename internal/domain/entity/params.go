package entity

import "fmt"

// Default generation parameters. These mirror the defaults exposed by the
// configuration surface and are used when a caller supplies a zero value.
const (
	// DefaultMaxLength is the default maximum summary length in tokens.
	DefaultMaxLength = 130
	// DefaultMinLength is the default minimum summary length in tokens.
	DefaultMinLength = 30
	// DefaultNumBeams is the default beam search breadth.
	DefaultNumBeams = 4
	// DefaultTopKeywords is the default number of keywords extracted.
	DefaultTopKeywords = 10
)

// SummaryParameters is the immutable configuration value for a single
// pipeline run. It is validated once at pipeline entry and passed through
// to the summarization backend unchanged (except for per-chunk length
// scaling done by the aggregator).
type SummaryParameters struct {
	// Model identifies the summarization backend to use.
	Model string

	// MaxLength is the maximum summary length in tokens. Must exceed MinLength.
	MaxLength int

	// MinLength is the minimum summary length in tokens. Must be positive.
	MinLength int

	// NumBeams is the beam search breadth passed through to the backend.
	// Must be at least 1.
	NumBeams int

	// DoSample enables stochastic generation instead of greedy decoding.
	DoSample bool
}

// DefaultParameters returns SummaryParameters populated with the package
// defaults for the given model identifier.
func DefaultParameters(model string) SummaryParameters {
	return SummaryParameters{
		Model:     model,
		MaxLength: DefaultMaxLength,
		MinLength: DefaultMinLength,
		NumBeams:  DefaultNumBeams,
	}
}

// Validate checks the parameter invariants: max length > min length > 0 and
// beam count >= 1. All violations are reported together, wrapped in
// ErrInvalidParameters so callers can classify the failure with errors.Is.
func (p SummaryParameters) Validate() error {
	var problems []string

	if p.Model == "" {
		problems = append(problems, "model identifier must not be empty")
	}
	if p.MinLength <= 0 {
		problems = append(problems, fmt.Sprintf("min length must be positive, got %d", p.MinLength))
	}
	if p.MaxLength <= p.MinLength {
		problems = append(problems, fmt.Sprintf("max length %d must exceed min length %d", p.MaxLength, p.MinLength))
	}
	if p.NumBeams < 1 {
		problems = append(problems, fmt.Sprintf("beam count must be at least 1, got %d", p.NumBeams))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, problems)
	}
	return nil
}
