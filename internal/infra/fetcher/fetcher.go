// Package fetcher turns a URL into pipeline input text. It downloads the
// page with SSRF validation, size and redirect limits, then extracts the
// readable article body with go-readability, falling back to paragraph
// extraction with goquery for pages the readability heuristics reject.
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"textsum/internal/domain/entity"
	"textsum/internal/resilience/circuitbreaker"
	"textsum/internal/resilience/retry"
	"textsum/internal/utils/text"
)

const userAgent = "textsum/1.0"

// Fetcher downloads and extracts document text from URLs. Safe for
// concurrent use.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// New creates a Fetcher with the given configuration. Redirect targets go
// through the same address validation as the initial URL.
func New(cfg Config) *Fetcher {
	f := &Fetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.URLFetchConfig()),
		retryConfig:    retry.URLFetchConfig(),
		config:         cfg,
	}

	f.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("%w: %d", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), cfg.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}
			return nil
		},
	}
	return f
}

// Fetch downloads the page at urlStr and returns its readable text as a
// URL-sourced Document. Transport-level failures are retried; the circuit
// opens after sustained failures so a dead site stops consuming the retry
// budget of every request.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (entity.Document, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return entity.Document{}, err
	}

	var extracted string
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		extracted = result.(string)
		return nil
	})
	if retryErr != nil {
		return entity.Document{}, retryErr
	}

	slog.InfoContext(ctx, "fetched document",
		slog.String("url", urlStr),
		slog.Int("chars", text.CountRunes(extracted)))

	return entity.NewDocument(extracted, entity.SourceURL), nil
}

func (f *Fetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("http request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	limited := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL, _ := url.Parse(urlStr)
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	return extractText(htmlBytes, finalURL, urlStr)
}

// extractText pulls the article body out of an HTML page. Readability
// handles article-shaped pages; for everything else the goquery fallback
// collects paragraph text, which is crude but beats returning markup.
func extractText(htmlBytes []byte, pageURL *url.URL, urlStr string) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent, nil
	}

	slog.Debug("readability extraction failed, falling back to paragraphs",
		slog.String("url", urlStr))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return "", fmt.Errorf("%w: parsing html: %v", ErrNoContent, err)
	}
	doc.Find("script, style, noscript").Remove()

	var parts []string
	doc.Find("p, h1, h2, h3, li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return "", ErrNoContent
	}
	return strings.Join(parts, "\n"), nil
}
