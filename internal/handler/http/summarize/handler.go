// Package summarize exposes the summarization pipeline over HTTP.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"textsum/internal/domain/entity"
	"textsum/internal/handler/http/requestid"
	"textsum/internal/handler/http/respond"
	"textsum/internal/infra/fetcher"
)

// Runner runs the summarization pipeline over raw text.
type Runner interface {
	Run(ctx context.Context, rawText string, params entity.SummaryParameters) (*entity.PipelineResult, error)
}

// DocumentFetcher turns a URL into document text.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (entity.Document, error)
}

// Handler serves POST requests that summarize inline text or a fetched
// URL.
type Handler struct {
	pipeline     Runner
	fetcher      DocumentFetcher
	defaultModel string
}

// NewHandler creates the summarize handler. defaultModel is used when the
// request names no model.
func NewHandler(pipeline Runner, f DocumentFetcher, defaultModel string) *Handler {
	return &Handler{
		pipeline:     pipeline,
		fetcher:      f,
		defaultModel: defaultModel,
	}
}

// Register mounts the handler on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST /api/summarize", h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %v", err))
		return
	}

	if (req.Text == "") == (req.URL == "") {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("exactly one of text and url is required"))
		return
	}

	ctx := r.Context()
	doc := entity.NewDocument(req.Text, entity.SourceTyped)

	if req.URL != "" {
		if h.fetcher == nil {
			respond.SafeError(w, http.StatusBadRequest,
				fmt.Errorf("url input is not enabled"))
			return
		}
		fetched, err := h.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			h.writeFetchError(ctx, w, req.URL, err)
			return
		}
		doc = fetched
	}

	result, err := h.pipeline.Run(ctx, doc.Text, req.params(h.defaultModel))
	if err != nil {
		h.writePipelineError(ctx, w, err)
		return
	}

	respond.JSON(w, http.StatusOK, Response{
		Source:         string(doc.Source),
		PipelineResult: result,
	})
}

func (h *Handler) writeFetchError(ctx context.Context, w http.ResponseWriter, url string, err error) {
	slog.WarnContext(ctx, "document fetch failed",
		slog.String("request_id", requestid.FromContext(ctx)),
		slog.String("url", url),
		slog.String("error", err.Error()))

	switch {
	case errors.Is(err, fetcher.ErrInvalidURL), errors.Is(err, fetcher.ErrPrivateAddress):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, fetcher.ErrBodyTooLarge):
		respond.SafeError(w, http.StatusRequestEntityTooLarge, err)
	default:
		respond.SafeError(w, http.StatusBadGateway,
			respond.NewAppError(http.StatusBadGateway, "failed to fetch document", err))
	}
}

func (h *Handler) writePipelineError(ctx context.Context, w http.ResponseWriter, err error) {
	slog.WarnContext(ctx, "summarization failed",
		slog.String("request_id", requestid.FromContext(ctx)),
		slog.String("error", err.Error()))

	var timeoutErr *entity.TimeoutError
	switch {
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrInvalidParameters):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrModelUnavailable):
		respond.SafeError(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "requested model is not available", err))
	case errors.As(err, &timeoutErr):
		respond.JSON(w, http.StatusGatewayTimeout, map[string]interface{}{
			"error":            "summarization timed out",
			"completed_chunks": timeoutErr.CompletedChunks,
			"total_chunks":     timeoutErr.TotalChunks,
		})
	case errors.Is(err, entity.ErrTimeout):
		respond.SafeError(w, http.StatusGatewayTimeout,
			respond.NewAppError(http.StatusGatewayTimeout, "summarization timed out", err))
	case errors.Is(err, entity.ErrGenerationFailed):
		respond.SafeError(w, http.StatusBadGateway,
			respond.NewAppError(http.StatusBadGateway, "summarization backend failed", err))
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
