package summarize

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"textsum/internal/domain/entity"
	"textsum/internal/utils/text"
)

// Summarizer is the abstract summarization capability consumed by the
// pipeline. Implementations compress a text span into a shorter text under
// the given length and quality parameters.
//
// Implementations report failures through the entity taxonomy: wrap
// entity.ErrModelUnavailable when the backend cannot be resolved or loaded,
// and entity.ErrGenerationFailed for runtime generation failures. Both are
// non-retryable within a single pipeline run.
type Summarizer interface {
	Summarize(ctx context.Context, input string, params entity.SummaryParameters) (string, error)
}

// aggregate invokes the summarizer over each chunk with scaled length
// budgets, merges the per-chunk summaries in chunk order, and applies at
// most one second-pass compression when the merged draft still exceeds the
// requested maximum length.
//
// Chunk invocations run concurrently up to maxConcurrent workers; results
// are written to disjoint slots so the merge always preserves chunk order.
// A failed chunk aborts the whole run; the pipeline never returns a
// summary with a silently missing section.
func (s *Service) aggregate(ctx context.Context, chunks []entity.Chunk, params entity.SummaryParameters) (string, bool, error) {
	scaled := scaleParams(params, len(chunks))

	summaries := make([]string, len(chunks))
	completed := make([]bool, len(chunks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.maxConcurrent)

	for _, chunk := range chunks {
		// Deadline already hit: stop issuing not-yet-started chunks.
		if ctx.Err() != nil {
			break
		}

		c := chunk
		eg.Go(func() error {
			out, err := s.summarizer.Summarize(egCtx, c.Text, scaled)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					return err
				}
				return entity.NewChunkError(entity.StageSummarize, c.Index, err)
			}
			summaries[c.Index] = out
			completed[c.Index] = true
			return nil
		})
	}

	waitErr := eg.Wait()

	if timedOut(ctx, waitErr) {
		var done []int
		for i, ok := range completed {
			if ok {
				done = append(done, i)
			}
		}
		return "", false, &entity.TimeoutError{CompletedChunks: done, TotalChunks: len(chunks)}
	}
	if waitErr != nil {
		return "", false, waitErr
	}

	draft := strings.Join(summaries, " ")

	// One bounded second pass: compress the summary of summaries when the
	// draft still exceeds the requested budget. Never recurses further.
	if len(chunks) > 1 && text.CountWords(draft) > params.MaxLength {
		slog.InfoContext(ctx, "draft summary exceeds budget, running second pass",
			slog.Int("draft_tokens", text.CountWords(draft)),
			slog.Int("max_length", params.MaxLength))

		final, err := s.summarizer.Summarize(ctx, draft, params)
		if err != nil {
			if timedOut(ctx, err) {
				all := make([]int, len(chunks))
				for i := range all {
					all[i] = i
				}
				return "", false, &entity.TimeoutError{CompletedChunks: all, TotalChunks: len(chunks)}
			}
			return "", false, entity.NewStageError(entity.StageSecondPass, err)
		}
		return final, true, nil
	}

	return draft, false, nil
}

// scaleParams divides the overall summary length budget across chunks so
// the sum of per-chunk budgets does not exceed the requested maximum.
// MinLength stays in force only for a single chunk; with multiple chunks
// each slice of the budget may legitimately be very small.
func scaleParams(params entity.SummaryParameters, chunkCount int) entity.SummaryParameters {
	if chunkCount <= 1 {
		return params
	}

	scaled := params
	scaled.MaxLength = params.MaxLength / chunkCount
	if scaled.MaxLength < 1 {
		scaled.MaxLength = 1
	}
	scaled.MinLength = 1
	return scaled
}

// timedOut reports whether err indicates a deadline expiry. The context is
// consulted only when err carries no failure of its own (nil, or itself a
// context error): a chunk that failed outright stays a chunk failure even
// when the deadline happens to expire while the group winds down.
func timedOut(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
