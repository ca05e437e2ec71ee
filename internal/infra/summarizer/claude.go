package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"textsum/internal/domain/entity"
	"textsum/internal/resilience/circuitbreaker"
	"textsum/internal/resilience/retry"
	"textsum/internal/utils/text"
)

// DefaultClaudeModel is the API model used when the identifier names only
// the family ("claude").
const DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude is a summarization backend on Anthropic's Claude API. It wraps
// calls in circuit breaker and retry logic and rate-limits them against
// the shared API resource.
type Claude struct {
	client         anthropic.Client
	model          string
	config         APIConfig
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *apiLimiter
	metrics        MetricsRecorder
}

// NewClaude creates a Claude backend for the given model identifier. An
// identifier of just the family name selects DefaultClaudeModel.
func NewClaude(apiKey, model string) (*Claude, error) {
	cfg := LoadAPIConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid claude configuration: %w", err)
	}
	if model == "" || model == ModelFamilyClaude {
		model = DefaultClaudeModel
	}

	slog.Info("initialized claude summarizer",
		slog.String("model", model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Duration("timeout", cfg.Timeout))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          model,
		config:         cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		limiter:        newAPILimiter(cfg.RequestsPerSecond, cfg.Burst),
		metrics:        NewPrometheusMetrics(),
	}, nil
}

// Summarize generates a summary of the input under the given parameters.
// Failures are reported through the pipeline taxonomy: generation errors
// wrap entity.ErrGenerationFailed and are non-retryable for this run once
// the internal retry budget is exhausted.
func (c *Claude) Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSummarize(ctx, input, params)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		c.metrics.RecordFailure("claude")
		if errors.Is(retryErr, context.DeadlineExceeded) || errors.Is(retryErr, context.Canceled) {
			return "", retryErr
		}
		return "", fmt.Errorf("%w: claude: %v", entity.ErrGenerationFailed, retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	requestID := uuid.New().String()

	if err := c.limiter.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	prompt := buildPrompt(input, params.MaxLength, params.MinLength)

	slog.InfoContext(ctx, "starting claude summarization",
		slog.String("request_id", requestID),
		slog.String("model", c.model),
		slog.Int("input_chars", text.CountRunes(input)),
		slog.Int("max_words", params.MaxLength))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.responseTokens(params)),
		Temperature: anthropic.Float(temperatureFor(params)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "claude summarization failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	summary := textBlock.Text
	c.metrics.RecordLength(text.CountRunes(summary))
	c.metrics.RecordDuration(duration)

	slog.InfoContext(ctx, "claude summarization completed",
		slog.String("request_id", requestID),
		slog.Int("summary_chars", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}

// responseTokens converts the word budget into an API token cap. Words run
// roughly 1.5 tokens each in English; the configured cap bounds the
// estimate.
func (c *Claude) responseTokens(params entity.SummaryParameters) int {
	est := params.MaxLength * 2
	if est < 64 {
		est = 64
	}
	if est > c.config.MaxTokens {
		est = c.config.MaxTokens
	}
	return est
}

// temperatureFor maps the sampling flag onto the API's temperature knob.
// Beam breadth has no hosted-API equivalent and is carried only for
// backends with a decoding-level interface.
func temperatureFor(params entity.SummaryParameters) float64 {
	if params.DoSample {
		return 1.0
	}
	return 0.0
}
