package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", LoadEnvString("TEST_STRING", "default"))
	assert.Equal(t, "default", LoadEnvString("TEST_STRING_UNSET", "default"))
}

func TestLoadEnvWithFallback(t *testing.T) {
	reject := func(string) error { return assert.AnError }
	accept := func(string) error { return nil }

	t.Run("unset uses default silently", func(t *testing.T) {
		result := LoadEnvWithFallback("TEST_UNSET", "default", reject)
		assert.Equal(t, "default", result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("valid value wins", func(t *testing.T) {
		t.Setenv("TEST_VALID", "custom")
		result := LoadEnvWithFallback("TEST_VALID", "default", accept)
		assert.Equal(t, "custom", result.Value)
		assert.False(t, result.FallbackApplied)
	})

	t.Run("invalid value falls back with warning", func(t *testing.T) {
		t.Setenv("TEST_INVALID", "bad")
		result := LoadEnvWithFallback("TEST_INVALID", "default", reject)
		assert.Equal(t, "default", result.Value)
		assert.True(t, result.FallbackApplied)
		assert.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "TEST_INVALID")
	})
}

func TestLoadEnvDuration(t *testing.T) {
	t.Run("parses duration", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "45s")
		result := LoadEnvDuration("TEST_DURATION", time.Minute, nil)
		assert.Equal(t, 45*time.Second, result.Value)
	})

	t.Run("unparseable falls back", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "soon")
		result := LoadEnvDuration("TEST_DURATION", time.Minute, nil)
		assert.Equal(t, time.Minute, result.Value)
		assert.True(t, result.FallbackApplied)
	})

	t.Run("validator rejects", func(t *testing.T) {
		t.Setenv("TEST_DURATION", "-5s")
		result := LoadEnvDuration("TEST_DURATION", time.Minute, ValidatePositiveDuration)
		assert.Equal(t, time.Minute, result.Value)
		assert.True(t, result.FallbackApplied)
	})
}

func TestLoadEnvInt(t *testing.T) {
	t.Run("parses integer", func(t *testing.T) {
		t.Setenv("TEST_INT", "7")
		result := LoadEnvInt("TEST_INT", 3, nil)
		assert.Equal(t, 7, result.Value)
	})

	t.Run("unparseable falls back", func(t *testing.T) {
		t.Setenv("TEST_INT", "seven")
		result := LoadEnvInt("TEST_INT", 3, nil)
		assert.Equal(t, 3, result.Value)
		assert.True(t, result.FallbackApplied)
	})

	t.Run("out of range falls back", func(t *testing.T) {
		t.Setenv("TEST_INT", "999")
		result := LoadEnvInt("TEST_INT", 3, func(v int) error {
			return ValidateIntRange(v, 1, 10)
		})
		assert.Equal(t, 3, result.Value)
		assert.True(t, result.FallbackApplied)
	})
}

func TestLoadEnvBool(t *testing.T) {
	tests := []struct {
		raw      string
		want     bool
		fallback bool
	}{
		{"true", true, false},
		{"True", true, false},
		{"1", true, false},
		{"false", false, false},
		{"0", false, false},
		{"yes", true, true}, // default true, invalid value
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.raw)
			result := LoadEnvBool("TEST_BOOL", true)
			assert.Equal(t, tt.want, result.Value)
			assert.Equal(t, tt.fallback, result.FallbackApplied)
		})
	}
}
