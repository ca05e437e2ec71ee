// Package main runs the summarization HTTP API server.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "textsum/internal/handler/http"
	"textsum/internal/handler/http/requestid"
	hsummarize "textsum/internal/handler/http/summarize"
	"textsum/internal/infra/fetcher"
	"textsum/internal/infra/summarizer"
	"textsum/internal/observability/logging"
	"textsum/internal/observability/metrics"
	"textsum/internal/observability/tracing"
	"textsum/internal/pkg/config"
	"textsum/internal/usecase/summarize"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the pipeline config file")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	shutdownTracing := tracing.InitProvider()
	defer shutdownTracing()

	serverCfg, warnings := config.LoadServerConfig()
	logWarnings(logger, warnings)

	pipelineCfg, warnings, err := config.LoadPipelineConfig(*configPath, config.NewMetrics("pipeline"))
	if err != nil {
		logger.Error("failed to load pipeline configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logWarnings(logger, warnings)

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load fetcher configuration", slog.Any("error", err))
		os.Exit(1)
	}

	registry := summarizer.NewDefaultRegistry()
	pipeline := summarize.NewService(
		summarizer.NewDispatcher(registry),
		summarize.Config{
			MaxChunkTokens: pipelineCfg.MaxChunkTokens,
			MaxConcurrent:  pipelineCfg.MaxConcurrent,
			TopKeywords:    pipelineCfg.TopKeywords,
		},
		metrics.NewPrometheusPipeline(),
	)

	version := getVersion()
	handler := setupRoutes(registry, pipeline, fetcher.New(fetchCfg), pipelineCfg.Model, version)
	handler = applyMiddleware(logger, handler, serverCfg)

	logger.Info("pipeline configured",
		slog.String("default_model", pipelineCfg.Model),
		slog.Int("max_chunk_tokens", pipelineCfg.MaxChunkTokens),
		slog.Int("max_concurrent", pipelineCfg.MaxConcurrent),
		slog.Any("models", registry.Models()))

	runServer(logger, handler, serverCfg, version)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return "dev"
}

func logWarnings(logger *slog.Logger, warnings []string) {
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", w))
	}
}

// setupRoutes registers all HTTP routes.
func setupRoutes(registry *summarizer.Registry, pipeline *summarize.Service, f *fetcher.Fetcher, defaultModel, version string) http.Handler {
	mux := http.NewServeMux()

	hsummarize.NewHandler(pipeline, f, defaultModel).Register(mux)
	mux.Handle("GET /healthz", &hhttp.HealthHandler{Registry: registry, Version: version})
	mux.Handle("GET /livez", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	return mux
}

// applyMiddleware builds the middleware chain, innermost first.
func applyMiddleware(logger *slog.Logger, handler http.Handler, cfg config.ServerConfig) http.Handler {
	rateLimiter := hhttp.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	chain := handler
	chain = hhttp.Timeout(cfg.RequestTimeout)(chain)
	chain = hhttp.LimitRequestBody(cfg.MaxBodyBytes)(chain)
	chain = rateLimiter.Limit(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, cfg config.ServerConfig, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
