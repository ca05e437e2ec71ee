package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the pipeline failure taxonomy. Every failure
// surfaced by the pipeline wraps exactly one of these, so callers can
// classify it with errors.Is and render a precise message.
var (
	// ErrInvalidInput indicates the input text is empty after normalization.
	ErrInvalidInput = errors.New("input text is empty or whitespace only")

	// ErrInvalidParameters indicates SummaryParameters failed validation.
	ErrInvalidParameters = errors.New("invalid summary parameters")

	// ErrModelUnavailable indicates the requested model identifier could
	// not be resolved to a registered backend.
	ErrModelUnavailable = errors.New("summarization model unavailable")

	// ErrGenerationFailed indicates a runtime failure while the backend was
	// generating a summary. The whole run aborts; a summary with a silently
	// missing section is worse than a clear failure.
	ErrGenerationFailed = errors.New("summary generation failed")

	// ErrTimeout indicates the caller-supplied deadline expired before all
	// chunks were summarized.
	ErrTimeout = errors.New("summarization timed out")
)

// Pipeline stage names used in StageError for failure context.
const (
	StageNormalize  = "normalize"
	StageChunk      = "chunk"
	StageSummarize  = "summarize"
	StageSecondPass = "second_pass"
	StageAnalyze    = "analyze"
)

// StageError annotates a pipeline failure with the stage it occurred in and,
// where applicable, the index of the chunk being processed. ChunkIndex is -1
// when the failure is not tied to a specific chunk.
type StageError struct {
	Stage      string
	ChunkIndex int
	Err        error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.ChunkIndex >= 0 {
		return fmt.Sprintf("stage %s (chunk %d): %v", e.Stage, e.ChunkIndex, e.Err)
	}
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a StageError for a failure not tied to a chunk.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, ChunkIndex: -1, Err: err}
}

// NewChunkError creates a StageError for a failure on a specific chunk.
func NewChunkError(stage string, chunkIndex int, err error) *StageError {
	return &StageError{Stage: stage, ChunkIndex: chunkIndex, Err: err}
}

// TimeoutError reports a run that hit its deadline partway through chunk
// summarization. CompletedChunks lists the indices whose summaries had
// finished before the deadline; the run still returns no final summary.
// The partial summaries themselves are deliberately not exposed: a summary
// assembled from a subset of chunks would misrepresent the document.
type TimeoutError struct {
	CompletedChunks []int
	TotalChunks     int
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%v: %d of %d chunks completed", ErrTimeout, len(e.CompletedChunks), e.TotalChunks)
}

// Unwrap makes errors.Is(err, ErrTimeout) true for TimeoutError values.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}
