// Package config loads service configuration from a YAML file and
// environment variables. Environment values override file values; invalid
// values fall back to defaults with a warning instead of failing startup.
package config

import (
	"fmt"
	"os"
	"time"
)

// LoadResult is the outcome of loading one configuration value: the value
// itself (possibly the default), warnings for any fallback applied, and
// whether a fallback happened.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString returns the environment value, or the default when the
// variable is unset. No validation.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback reads a string variable and validates it. A failing
// value falls back to the default with a warning; an unset variable uses
// the default silently.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return LoadResult{
				Value:           defaultValue,
				Warnings:        []string{fallbackWarning(envKey, value, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return LoadResult{Value: value}
}

// LoadEnvDuration reads a duration variable ("30s", "5m"), validating the
// parsed value. Parse or validation failure falls back to the default
// with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(valueStr)
	if err != nil {
		return LoadResult{
			Value:           defaultValue,
			Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return LoadResult{
				Value:           defaultValue,
				Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return LoadResult{Value: parsed}
}

// LoadEnvInt reads an integer variable, validating the parsed value.
// Parse or validation failure falls back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	var parsed int
	if _, err := fmt.Sscanf(valueStr, "%d", &parsed); err != nil {
		return LoadResult{
			Value:           defaultValue,
			Warnings:        []string{fallbackWarning(envKey, valueStr, fmt.Errorf("invalid integer"), defaultValue)},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return LoadResult{
				Value:           defaultValue,
				Warnings:        []string{fallbackWarning(envKey, valueStr, err, defaultValue)},
				FallbackApplied: true,
			}
		}
	}
	return LoadResult{Value: parsed}
}

// LoadEnvBool reads a boolean variable ("true"/"false"/"1"/"0" and
// case variants). Anything else falls back to the default with a warning.
func LoadEnvBool(envKey string, defaultValue bool) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	switch valueStr {
	case "1", "t", "T", "true", "TRUE", "True":
		return LoadResult{Value: true}
	case "0", "f", "F", "false", "FALSE", "False":
		return LoadResult{Value: false}
	default:
		return LoadResult{
			Value:           defaultValue,
			Warnings:        []string{fallbackWarning(envKey, valueStr, fmt.Errorf("invalid boolean"), defaultValue)},
			FallbackApplied: true,
		}
	}
}

func fallbackWarning(envKey, value string, err error, defaultValue interface{}) string {
	return fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, value, err, defaultValue)
}
