// Package summarize implements the summarization orchestration pipeline:
// normalization, sentence-preserving chunking, per-chunk summarization
// through a pluggable backend, ordered aggregation with a bounded second
// compression pass, and text analysis of both input and output.
package summarize

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"textsum/internal/domain/entity"
	"textsum/internal/observability/metrics"
	"textsum/internal/observability/tracing"
	"textsum/internal/usecase/analyze"
	"textsum/internal/utils/text"
)

// Config holds the orchestrator's operational settings. Zero values fall
// back to the package defaults in NewService.
type Config struct {
	// MaxChunkTokens is the chunk size bound in estimated tokens.
	MaxChunkTokens int

	// MaxConcurrent bounds concurrent chunk summarizations. The default is
	// 1 (sequential): the backend is typically a single shared inference
	// resource that does not support unbounded concurrent use.
	MaxConcurrent int

	// TopKeywords is the number of keywords extracted from the input.
	TopKeywords int
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		MaxChunkTokens: DefaultMaxChunkTokens,
		MaxConcurrent:  1,
		TopKeywords:    entity.DefaultTopKeywords,
	}
}

// Service is the pipeline orchestrator. It composes the normalizer, the
// chunker, the summarization backend, and the analyzer into a single Run
// call. The Service holds no per-run state and is safe for concurrent use.
type Service struct {
	summarizer     Summarizer
	maxChunkTokens int
	maxConcurrent  int
	topKeywords    int
	recorder       metrics.PipelineRecorder
}

// NewService creates a pipeline orchestrator around the given summarization
// backend. A nil recorder disables metrics.
func NewService(summarizer Summarizer, cfg Config, recorder metrics.PipelineRecorder) *Service {
	if cfg.MaxChunkTokens <= 0 {
		cfg.MaxChunkTokens = DefaultMaxChunkTokens
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.TopKeywords <= 0 {
		cfg.TopKeywords = entity.DefaultTopKeywords
	}
	if recorder == nil {
		recorder = metrics.NoOpPipeline{}
	}
	return &Service{
		summarizer:     summarizer,
		maxChunkTokens: cfg.MaxChunkTokens,
		maxConcurrent:  cfg.MaxConcurrent,
		topKeywords:    cfg.TopKeywords,
		recorder:       recorder,
	}
}

// Run executes the full pipeline for rawText under the given parameters.
//
// It fails fast with entity.ErrInvalidParameters on a validation failure
// and entity.ErrInvalidInput when the normalized text is empty, before any
// chunking or backend invocation. On success it returns the merged summary
// with analysis metrics for both the input and the summary, and the
// keywords extracted from the input.
func (s *Service) Run(ctx context.Context, rawText string, params entity.SummaryParameters) (*entity.PipelineResult, error) {
	requestID := uuid.New().String()
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "pipeline.run")
	defer span.End()
	span.SetAttributes(attribute.String("summarize.model", params.Model))

	if err := params.Validate(); err != nil {
		slog.WarnContext(ctx, "parameter validation failed",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		s.recorder.RecordRun(metrics.StatusInvalidParameters, time.Since(start))
		return nil, err
	}

	canonical := text.Normalize(rawText)
	if canonical == "" {
		slog.WarnContext(ctx, "input empty after normalization",
			slog.String("request_id", requestID))
		s.recorder.RecordRun(metrics.StatusInvalidInput, time.Since(start))
		return nil, entity.NewStageError(entity.StageNormalize, entity.ErrInvalidInput)
	}

	chunks := ChunkText(canonical, s.maxChunkTokens)
	s.recorder.RecordChunks(len(chunks))
	span.SetAttributes(attribute.Int("summarize.chunks", len(chunks)))

	slog.InfoContext(ctx, "starting pipeline run",
		slog.String("request_id", requestID),
		slog.String("model", params.Model),
		slog.Int("input_chars", text.CountRunes(rawText)),
		slog.Int("chunks", len(chunks)),
		slog.Int("max_concurrent", s.maxConcurrent))

	summary, secondPass, err := s.aggregate(ctx, chunks, params)
	if err != nil {
		slog.ErrorContext(ctx, "pipeline run failed",
			slog.String("request_id", requestID),
			slog.Any("error", err))
		s.recorder.RecordRun(statusFor(err), time.Since(start))
		return nil, err
	}

	originalChars := text.CountRunes(rawText)
	summaryChars := text.CountRunes(summary)
	ratio := 0.0
	if originalChars > 0 {
		ratio = float64(summaryChars) / float64(originalChars)
	}

	result := &entity.PipelineResult{
		Summary:          summary,
		Model:            params.Model,
		InputMetrics:     analyze.Metrics(rawText),
		SummaryMetrics:   analyze.Metrics(summary),
		Keywords:         analyze.Keywords(rawText, s.topKeywords),
		ChunksProcessed:  len(chunks),
		SecondPass:       secondPass,
		OriginalChars:    originalChars,
		SummaryChars:     summaryChars,
		CompressionRatio: ratio,
		Elapsed:          time.Since(start),
	}

	if secondPass {
		s.recorder.RecordSecondPass()
	}
	s.recorder.RecordCompression(ratio)
	s.recorder.RecordRun(metrics.StatusOK, result.Elapsed)

	slog.InfoContext(ctx, "pipeline run completed",
		slog.String("request_id", requestID),
		slog.Int("summary_chars", summaryChars),
		slog.Bool("second_pass", secondPass),
		slog.Duration("elapsed", result.Elapsed))

	return result, nil
}

// statusFor maps a pipeline failure to its metrics status label.
func statusFor(err error) string {
	switch {
	case errors.Is(err, entity.ErrTimeout):
		return metrics.StatusTimeout
	case errors.Is(err, entity.ErrModelUnavailable):
		return metrics.StatusModelUnavailable
	case errors.Is(err, entity.ErrGenerationFailed):
		return metrics.StatusGenerationFailed
	case errors.Is(err, entity.ErrInvalidInput):
		return metrics.StatusInvalidInput
	case errors.Is(err, entity.ErrInvalidParameters):
		return metrics.StatusInvalidParameters
	default:
		return metrics.StatusGenerationFailed
	}
}
