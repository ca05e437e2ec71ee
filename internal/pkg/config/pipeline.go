package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"textsum/internal/domain/entity"
)

// Pipeline defaults for fields with no entity-level counterpart.
const (
	DefaultModel          = "extractive"
	DefaultMaxChunkTokens = 400
	DefaultMaxConcurrent  = 4
)

// PipelineConfig holds the summarization pipeline settings. Values come
// from defaults, then the YAML file, then environment overrides, in that
// order.
type PipelineConfig struct {
	Model          string `yaml:"model"`
	MaxChunkTokens int    `yaml:"max_chunk_tokens"`
	MaxLength      int    `yaml:"max_length"`
	MinLength      int    `yaml:"min_length"`
	NumBeams       int    `yaml:"num_beams"`
	DoSample       bool   `yaml:"do_sample"`
	TopKeywords    int    `yaml:"top_keywords"`
	MaxConcurrent  int    `yaml:"max_concurrent"`
}

// DefaultPipelineConfig returns the built-in pipeline settings.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Model:          DefaultModel,
		MaxChunkTokens: DefaultMaxChunkTokens,
		MaxLength:      entity.DefaultMaxLength,
		MinLength:      entity.DefaultMinLength,
		NumBeams:       entity.DefaultNumBeams,
		DoSample:       false,
		TopKeywords:    entity.DefaultTopKeywords,
		MaxConcurrent:  DefaultMaxConcurrent,
	}
}

// Validate checks the combined configuration. File and environment values
// have already been merged by the time this runs, so a failure here means
// the deployment config is wrong as a whole.
func (c PipelineConfig) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}
	if err := ValidateIntRange(c.MaxChunkTokens, 1, 10000); err != nil {
		return fmt.Errorf("max_chunk_tokens: %w", err)
	}
	if c.MinLength <= 0 {
		return fmt.Errorf("min_length must be positive, got %d", c.MinLength)
	}
	if c.MaxLength <= c.MinLength {
		return fmt.Errorf("max_length %d must exceed min_length %d", c.MaxLength, c.MinLength)
	}
	if c.NumBeams < 1 {
		return fmt.Errorf("num_beams must be at least 1, got %d", c.NumBeams)
	}
	if err := ValidateIntRange(c.TopKeywords, 1, 100); err != nil {
		return fmt.Errorf("top_keywords: %w", err)
	}
	if err := ValidateIntRange(c.MaxConcurrent, 1, 50); err != nil {
		return fmt.Errorf("max_concurrent: %w", err)
	}
	return nil
}

// Params returns the generation parameters this configuration describes.
func (c PipelineConfig) Params() entity.SummaryParameters {
	return entity.SummaryParameters{
		Model:     c.Model,
		MaxLength: c.MaxLength,
		MinLength: c.MinLength,
		NumBeams:  c.NumBeams,
		DoSample:  c.DoSample,
	}
}

// LoadPipelineConfig builds the pipeline configuration: defaults, merged
// with the YAML file at path (skipped when path is empty or the file does
// not exist), then environment overrides. Environment fallbacks are
// reported as warnings and recorded on metrics when given; a config that
// is still invalid after merging is an error.
//
// Environment overrides:
//   - SUMMARY_MODEL, SUMMARY_MAX_CHUNK_TOKENS, SUMMARY_MAX_LENGTH,
//     SUMMARY_MIN_LENGTH, SUMMARY_NUM_BEAMS, SUMMARY_DO_SAMPLE,
//     SUMMARY_TOP_KEYWORDS, SUMMARY_MAX_CONCURRENT
func LoadPipelineConfig(path string, metrics *Metrics) (PipelineConfig, []string, error) {
	cfg := DefaultPipelineConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; defaults plus environment take over.
		case err != nil:
			return cfg, nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	var warnings []string
	track := func(field string, result LoadResult) LoadResult {
		if result.FallbackApplied {
			warnings = append(warnings, result.Warnings...)
			if metrics != nil {
				metrics.RecordFallback(field)
			}
		}
		return result
	}

	cfg.Model = LoadEnvString("SUMMARY_MODEL", cfg.Model)
	cfg.MaxChunkTokens = track("max_chunk_tokens",
		LoadEnvInt("SUMMARY_MAX_CHUNK_TOKENS", cfg.MaxChunkTokens, func(v int) error {
			return ValidateIntRange(v, 1, 10000)
		})).Value.(int)
	cfg.MaxLength = track("max_length",
		LoadEnvInt("SUMMARY_MAX_LENGTH", cfg.MaxLength, nil)).Value.(int)
	cfg.MinLength = track("min_length",
		LoadEnvInt("SUMMARY_MIN_LENGTH", cfg.MinLength, nil)).Value.(int)
	cfg.NumBeams = track("num_beams",
		LoadEnvInt("SUMMARY_NUM_BEAMS", cfg.NumBeams, func(v int) error {
			return ValidateIntRange(v, 1, 16)
		})).Value.(int)
	cfg.DoSample = track("do_sample",
		LoadEnvBool("SUMMARY_DO_SAMPLE", cfg.DoSample)).Value.(bool)
	cfg.TopKeywords = track("top_keywords",
		LoadEnvInt("SUMMARY_TOP_KEYWORDS", cfg.TopKeywords, func(v int) error {
			return ValidateIntRange(v, 1, 100)
		})).Value.(int)
	cfg.MaxConcurrent = track("max_concurrent",
		LoadEnvInt("SUMMARY_MAX_CONCURRENT", cfg.MaxConcurrent, func(v int) error {
			return ValidateIntRange(v, 1, 50)
		})).Value.(int)

	if err := cfg.Validate(); err != nil {
		return cfg, warnings, fmt.Errorf("pipeline configuration invalid: %w", err)
	}

	if metrics != nil {
		metrics.RecordLoad()
		metrics.SetFallbackActive(len(warnings) > 0)
	}
	return cfg, warnings, nil
}
