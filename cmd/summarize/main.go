// Package main provides a CLI command for summarizing a document.
// Usage: summarize [--file PATH | --url URL | --text STRING] [--model NAME] [--output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"textsum/internal/domain/entity"
	"textsum/internal/infra/fetcher"
	"textsum/internal/infra/summarizer"
	"textsum/internal/observability/logging"
	"textsum/internal/pkg/config"
	"textsum/internal/usecase/summarize"
)

func main() {
	var (
		filePath     string
		pageURL      string
		inlineText   string
		model        string
		maxLength    int
		minLength    int
		configPath   string
		outputFormat string
		outputPath   string
		timeout      time.Duration
	)

	flag.StringVar(&filePath, "file", "", "Read the document from this file ('-' for stdin)")
	flag.StringVar(&pageURL, "url", "", "Fetch the document from this URL")
	flag.StringVar(&inlineText, "text", "", "Summarize this literal text")
	flag.StringVar(&model, "model", "", "Backend model (overrides the config file)")
	flag.IntVar(&maxLength, "max", 0, "Maximum summary length in words (overrides the config file)")
	flag.IntVar(&minLength, "min", 0, "Minimum summary length in words (overrides the config file)")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to the pipeline config file")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.StringVar(&outputPath, "o", "", "Write the summary to this file instead of stdout")
	flag.DurationVar(&timeout, "timeout", 120*time.Second, "Overall run timeout")
	flag.Parse()

	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	if outputFormat != "text" && outputFormat != "json" {
		fatalf("invalid output format %q (must be 'text' or 'json')", outputFormat)
	}

	cfg, warnings, err := config.LoadPipelineConfig(configPath, nil)
	if err != nil {
		fatalf("invalid configuration: %v", err)
	}
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", w))
	}

	params := cfg.Params()
	if model != "" {
		params.Model = model
	}
	if maxLength > 0 {
		params.MaxLength = maxLength
	}
	if minLength > 0 {
		params.MinLength = minLength
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	text, err := readInput(ctx, filePath, pageURL, inlineText)
	if err != nil {
		fatalf("%v", err)
	}

	pipeline := summarize.NewService(
		summarizer.NewDispatcher(summarizer.NewDefaultRegistry()),
		summarize.Config{
			MaxChunkTokens: cfg.MaxChunkTokens,
			MaxConcurrent:  cfg.MaxConcurrent,
			TopKeywords:    cfg.TopKeywords,
		},
		nil,
	)

	result, err := pipeline.Run(ctx, text, params)
	if err != nil {
		fatalf("summarization failed: %v", err)
	}

	if err := writeResult(result, outputFormat, outputPath); err != nil {
		fatalf("%v", err)
	}
}

// readInput resolves the document text from exactly one of the three
// sources. With no source given it reads stdin.
func readInput(ctx context.Context, filePath, pageURL, inlineText string) (string, error) {
	sources := 0
	for _, s := range []string{filePath, pageURL, inlineText} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return "", fmt.Errorf("at most one of --file, --url and --text may be given")
	}

	switch {
	case inlineText != "":
		return inlineText, nil
	case pageURL != "":
		fetchCfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			return "", fmt.Errorf("invalid fetcher configuration: %w", err)
		}
		doc, err := fetcher.New(fetchCfg).Fetch(ctx, pageURL)
		if err != nil {
			return "", fmt.Errorf("fetching %s: %w", pageURL, err)
		}
		return doc.Text, nil
	case filePath == "" || filePath == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filePath, err)
		}
		return string(data), nil
	}
}

func writeResult(result *entity.PipelineResult, format, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(out, result.Summary)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "model: %s  chunks: %d  second pass: %t\n",
		result.Model, result.ChunksProcessed, result.SecondPass)
	fmt.Fprintf(out, "compression: %d -> %d chars (%.2f)\n",
		result.OriginalChars, result.SummaryChars, result.CompressionRatio)
	fmt.Fprintf(out, "input: %d words, %d sentences  summary: %d words, %d sentences\n",
		result.InputMetrics.WordCount, result.InputMetrics.SentenceCount,
		result.SummaryMetrics.WordCount, result.SummaryMetrics.SentenceCount)
	if len(result.Keywords) > 0 {
		fmt.Fprint(out, "keywords:")
		for _, kw := range result.Keywords {
			fmt.Fprintf(out, " %s(%d)", kw.Term, kw.Count)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "elapsed: %s\n", result.Elapsed.Round(time.Millisecond))
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
