package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"textsum/internal/domain/entity"
	"textsum/internal/resilience/circuitbreaker"
	"textsum/internal/resilience/retry"
	"textsum/internal/utils/text"
)

// DefaultOpenAIModel is the API model used when the identifier names only
// the family ("openai" or "gpt").
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI is a summarization backend on the OpenAI chat completion API.
// Resilience wiring mirrors the Claude backend.
type OpenAI struct {
	client         *openai.Client
	model          string
	config         APIConfig
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *apiLimiter
	metrics        MetricsRecorder
}

// NewOpenAI creates an OpenAI backend for the given model identifier.
func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	cfg := LoadAPIConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid openai configuration: %w", err)
	}
	if model == "" || model == ModelFamilyOpenAI || model == "gpt" {
		model = DefaultOpenAIModel
	}

	slog.Info("initialized openai summarizer",
		slog.String("model", model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Duration("timeout", cfg.Timeout))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		model:          model,
		config:         cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		limiter:        newAPILimiter(cfg.RequestsPerSecond, cfg.Burst),
		metrics:        NewPrometheusMetrics(),
	}, nil
}

// Summarize generates a summary of the input under the given parameters.
func (o *OpenAI) Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSummarize(ctx, input, params)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		o.metrics.RecordFailure("openai")
		if errors.Is(retryErr, context.DeadlineExceeded) || errors.Is(retryErr, context.Canceled) {
			return "", retryErr
		}
		return "", fmt.Errorf("%w: openai: %v", entity.ErrGenerationFailed, retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	requestID := uuid.New().String()

	if err := o.limiter.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	prompt := buildPrompt(input, params.MaxLength, params.MinLength)

	slog.InfoContext(ctx, "starting openai summarization",
		slog.String("request_id", requestID),
		slog.String("model", o.model),
		slog.Int("input_chars", text.CountRunes(input)),
		slog.Int("max_words", params.MaxLength))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		MaxTokens:   o.responseTokens(params),
		Temperature: float32(temperatureFor(params)),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "openai summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned no choices")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	o.metrics.RecordLength(text.CountRunes(summary))
	o.metrics.RecordDuration(duration)

	slog.InfoContext(ctx, "openai summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_chars", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}

func (o *OpenAI) responseTokens(params entity.SummaryParameters) int {
	est := params.MaxLength * 2
	if est < 64 {
		est = 64
	}
	if est > o.config.MaxTokens {
		est = o.config.MaxTokens
	}
	return est
}
