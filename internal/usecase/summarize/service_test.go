package summarize_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/domain/entity"
	"textsum/internal/usecase/summarize"
)

// mockSummarizer is an injectable summarization backend for tests. The
// summarize function receives the chunk text and the scaled parameters;
// calls are recorded under a mutex because the aggregator may run chunks
// concurrently.
type mockSummarizer struct {
	mu        sync.Mutex
	calls     []mockCall
	summarize func(input string, params entity.SummaryParameters) (string, error)
}

type mockCall struct {
	input  string
	params entity.SummaryParameters
}

func (m *mockSummarizer) Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.calls = append(m.calls, mockCall{input: input, params: params})
	m.mu.Unlock()
	return m.summarize(input, params)
}

func (m *mockSummarizer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func testParams() entity.SummaryParameters {
	return entity.SummaryParameters{
		Model:     "extractive",
		MaxLength: 60,
		MinLength: 10,
		NumBeams:  1,
	}
}

func TestRun_SingleChunk(t *testing.T) {
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			return "A short summary.", nil
		},
	}
	svc := summarize.NewService(mock, summarize.DefaultConfig(), nil)

	result, err := svc.Run(context.Background(), "The cat sat. The cat ran. The dog slept.", testParams())
	require.NoError(t, err)

	assert.Equal(t, "A short summary.", result.Summary)
	assert.Equal(t, 1, result.ChunksProcessed)
	assert.False(t, result.SecondPass)
	assert.Equal(t, 9, result.InputMetrics.WordCount)
	assert.Equal(t, 3, result.InputMetrics.SentenceCount)
	assert.Equal(t, 6, result.InputMetrics.UniqueWords)
	assert.InDelta(t, 6.0/9.0, result.InputMetrics.LexicalDiversity, 1e-9)
	assert.Equal(t, 1, mock.callCount())
}

func TestRun_PreservesChunkOrder(t *testing.T) {
	// Three chunks summarize to "A", "B", "C"; the merged draft must be
	// "A B C" regardless of completion order.
	labels := map[string]string{
		"one two three.":    "A",
		"four five six.":    "B",
		"seven eight nine.": "C",
	}
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			if out, ok := labels[input]; ok {
				return out, nil
			}
			return "", fmt.Errorf("unexpected chunk %q", input)
		},
	}
	cfg := summarize.Config{MaxChunkTokens: 3, MaxConcurrent: 3}
	svc := summarize.NewService(mock, cfg, nil)

	result, err := svc.Run(context.Background(), "one two three. four five six. seven eight nine.", testParams())
	require.NoError(t, err)
	assert.Equal(t, "A B C", result.Summary)
	assert.Equal(t, 3, result.ChunksProcessed)
	assert.False(t, result.SecondPass)
}

func TestRun_ScalesPerChunkBudget(t *testing.T) {
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			return "s", nil
		},
	}
	cfg := summarize.Config{MaxChunkTokens: 3}
	svc := summarize.NewService(mock, cfg, nil)

	params := testParams() // MaxLength 60
	_, err := svc.Run(context.Background(), "one two three. four five six. seven eight nine.", params)
	require.NoError(t, err)

	require.Equal(t, 3, mock.callCount())
	for _, call := range mock.calls {
		assert.Equal(t, 20, call.params.MaxLength, "per-chunk budget must be maxLength / chunkCount")
		assert.Equal(t, 1, call.params.MinLength, "min length floor only applies to single-chunk runs")
	}
}

func TestRun_SecondPassWhenDraftTooLong(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("token ", 20))
	var secondPassInput string
	mock := &mockSummarizer{}
	mock.summarize = func(input string, params entity.SummaryParameters) (string, error) {
		switch input {
		case "Stocks rose today everywhere.":
			return "Stocks rose. " + long, nil
		case "Markets rallied strongly worldwide.":
			return "Markets rallied. " + long, nil
		default:
			secondPassInput = input
			return "Everything went up.", nil
		}
	}

	cfg := summarize.Config{MaxChunkTokens: 4}
	svc := summarize.NewService(mock, cfg, nil)

	params := entity.SummaryParameters{Model: "extractive", MaxLength: 20, MinLength: 5, NumBeams: 1}
	result, err := svc.Run(context.Background(), "Stocks rose today everywhere. Markets rallied strongly worldwide.", params)
	require.NoError(t, err)

	assert.True(t, result.SecondPass)
	assert.Equal(t, "Everything went up.", result.Summary, "second pass output becomes the final summary")
	assert.Equal(t, 3, mock.callCount(), "exactly one extra invocation beyond the two chunks")
	assert.Equal(t, "Stocks rose. "+long+" Markets rallied. "+long, secondPassInput,
		"second pass input is the draft merged in chunk order")
}

func TestRun_NoSecondPassForSingleChunk(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("token ", 50))
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			return long, nil
		},
	}
	svc := summarize.NewService(mock, summarize.DefaultConfig(), nil)

	result, err := svc.Run(context.Background(), "A single small input.", testParams())
	require.NoError(t, err)
	assert.False(t, result.SecondPass)
	assert.Equal(t, 1, mock.callCount())
}

func TestRun_InvalidParameters(t *testing.T) {
	mock := &mockSummarizer{
		summarize: func(string, entity.SummaryParameters) (string, error) {
			return "never", nil
		},
	}
	svc := summarize.NewService(mock, summarize.DefaultConfig(), nil)

	tests := []struct {
		name   string
		params entity.SummaryParameters
	}{
		{
			name:   "max not above min",
			params: entity.SummaryParameters{Model: "extractive", MaxLength: 10, MinLength: 20, NumBeams: 1},
		},
		{
			name:   "zero min length",
			params: entity.SummaryParameters{Model: "extractive", MaxLength: 10, MinLength: 0, NumBeams: 1},
		},
		{
			name:   "zero beams",
			params: entity.SummaryParameters{Model: "extractive", MaxLength: 30, MinLength: 10, NumBeams: 0},
		},
		{
			name:   "missing model",
			params: entity.SummaryParameters{MaxLength: 30, MinLength: 10, NumBeams: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Run(context.Background(), "Some valid text.", tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInvalidParameters)
		})
	}
	assert.Zero(t, mock.callCount(), "validation failures must not reach the backend")
}

func TestRun_EmptyInput(t *testing.T) {
	mock := &mockSummarizer{
		summarize: func(string, entity.SummaryParameters) (string, error) {
			return "never", nil
		},
	}
	svc := summarize.NewService(mock, summarize.DefaultConfig(), nil)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := svc.Run(context.Background(), input, testParams())
		require.Error(t, err, "input %q", input)
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	}
	assert.Zero(t, mock.callCount(), "empty input must not reach the backend")
}

func TestRun_ChunkFailureAbortsRun(t *testing.T) {
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			if strings.HasPrefix(input, "four") {
				return "", fmt.Errorf("%w: backend exploded", entity.ErrGenerationFailed)
			}
			return "ok", nil
		},
	}
	cfg := summarize.Config{MaxChunkTokens: 3}
	svc := summarize.NewService(mock, cfg, nil)

	_, err := svc.Run(context.Background(), "one two three. four five six. seven eight nine.", testParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrGenerationFailed)

	var stageErr *entity.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, entity.StageSummarize, stageErr.Stage)
	assert.Equal(t, 1, stageErr.ChunkIndex, "failure context must name the failed chunk")
}

func TestRun_ModelUnavailablePropagates(t *testing.T) {
	mock := &mockSummarizer{
		summarize: func(string, entity.SummaryParameters) (string, error) {
			return "", fmt.Errorf("%w: no backend for %q", entity.ErrModelUnavailable, "missing-model")
		},
	}
	svc := summarize.NewService(mock, summarize.DefaultConfig(), nil)

	_, err := svc.Run(context.Background(), "Some text to summarize.", testParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrModelUnavailable)
}

func TestRun_Timeout(t *testing.T) {
	release := make(chan struct{})
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			if strings.HasPrefix(input, "one") {
				return "first", nil
			}
			<-release
			return "", context.DeadlineExceeded
		},
	}
	cfg := summarize.Config{MaxChunkTokens: 3, MaxConcurrent: 1}
	svc := summarize.NewService(mock, cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(100 * time.Millisecond)
		close(release)
	}()

	_, err := svc.Run(ctx, "one two three. four five six. seven eight nine.", testParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrTimeout)

	var timeoutErr *entity.TimeoutError
	require.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, 3, timeoutErr.TotalChunks)
	assert.Contains(t, timeoutErr.CompletedChunks, 0, "completed chunks are reported in the failure")
}

func TestRun_ChunkFailureRacingDeadlineStaysChunkFailure(t *testing.T) {
	// The backend fails outright, but not before the run's deadline has
	// expired. The failure must keep its generation classification instead
	// of being reported as a timeout.
	mock := &mockSummarizer{
		summarize: func(input string, _ entity.SummaryParameters) (string, error) {
			time.Sleep(60 * time.Millisecond)
			return "", fmt.Errorf("%w: backend rejected the request", entity.ErrGenerationFailed)
		},
	}
	svc := summarize.NewService(mock, summarize.DefaultConfig(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := svc.Run(ctx, "Some text to summarize.", testParams())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrGenerationFailed)
	assert.NotErrorIs(t, err, entity.ErrTimeout)

	var timeoutErr *entity.TimeoutError
	assert.False(t, errors.As(err, &timeoutErr))
}
