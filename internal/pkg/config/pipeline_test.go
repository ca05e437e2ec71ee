package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/domain/entity"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultPipelineConfig(t *testing.T) {
	cfg := DefaultPipelineConfig()

	assert.Equal(t, "extractive", cfg.Model)
	assert.Equal(t, entity.DefaultMaxLength, cfg.MaxLength)
	assert.Equal(t, entity.DefaultMinLength, cfg.MinLength)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPipelineConfig_NoFile(t *testing.T) {
	cfg, warnings, err := LoadPipelineConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultPipelineConfig(), cfg)
}

func TestLoadPipelineConfig_MissingFileIsFine(t *testing.T) {
	cfg, _, err := LoadPipelineConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPipelineConfig(), cfg)
}

func TestLoadPipelineConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
model: claude
max_length: 200
min_length: 50
max_concurrent: 8
`)

	cfg, warnings, err := LoadPipelineConfig(path, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "claude", cfg.Model)
	assert.Equal(t, 200, cfg.MaxLength)
	assert.Equal(t, 50, cfg.MinLength)
	assert.Equal(t, 8, cfg.MaxConcurrent)
	// Fields the file omits keep their defaults.
	assert.Equal(t, entity.DefaultNumBeams, cfg.NumBeams)
	assert.Equal(t, DefaultMaxChunkTokens, cfg.MaxChunkTokens)
}

func TestLoadPipelineConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "model: claude\n")
	t.Setenv("SUMMARY_MODEL", "gpt-4o-mini")
	t.Setenv("SUMMARY_MAX_LENGTH", "150")

	cfg, _, err := LoadPipelineConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 150, cfg.MaxLength)
}

func TestLoadPipelineConfig_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("SUMMARY_MAX_CONCURRENT", "0")

	cfg, warnings, err := LoadPipelineConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxConcurrent, cfg.MaxConcurrent)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "SUMMARY_MAX_CONCURRENT")
}

func TestLoadPipelineConfig_InvalidFileValuesAreError(t *testing.T) {
	path := writeConfigFile(t, "min_length: 500\n")

	_, _, err := LoadPipelineConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_length")
}

func TestLoadPipelineConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "model: [unclosed\n")

	_, _, err := LoadPipelineConfig(path, nil)
	assert.Error(t, err)
}

func TestPipelineConfig_Params(t *testing.T) {
	cfg := DefaultPipelineConfig()
	cfg.Model = "claude"
	cfg.DoSample = true

	params := cfg.Params()
	assert.Equal(t, "claude", params.Model)
	assert.True(t, params.DoSample)
	assert.NoError(t, params.Validate())
}

func TestPipelineConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PipelineConfig)
	}{
		{"empty model", func(c *PipelineConfig) { c.Model = "" }},
		{"zero min length", func(c *PipelineConfig) { c.MinLength = 0 }},
		{"max not above min", func(c *PipelineConfig) { c.MaxLength = c.MinLength }},
		{"zero beams", func(c *PipelineConfig) { c.NumBeams = 0 }},
		{"zero chunk tokens", func(c *PipelineConfig) { c.MaxChunkTokens = 0 }},
		{"zero keywords", func(c *PipelineConfig) { c.TopKeywords = 0 }},
		{"excessive concurrency", func(c *PipelineConfig) { c.MaxConcurrent = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPipelineConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	cfg, warnings := LoadServerConfig()

	assert.Empty(t, warnings)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "2m0s", cfg.RequestTimeout.String())
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodyBytes)
	assert.Equal(t, 30, cfg.RateLimit)
}

func TestLoadServerConfig_EnvAndFallback(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT", "-1")

	cfg, warnings := LoadServerConfig()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "30s", cfg.RequestTimeout.String())
	assert.Equal(t, 30, cfg.RateLimit)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "RATE_LIMIT")
}
