package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/domain/entity"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	cfg := DefaultConfig()
	// Test servers listen on loopback.
	cfg.DenyPrivateIPs = false
	return New(cfg)
}

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Quarterly Report</title></head>
<body>
<article>
<h1>Quarterly Report</h1>
<p>Revenue grew steadily across all regions during the first quarter of the year,
driven mostly by renewals in the enterprise segment and a modest uptick in new
customer acquisition through the partner channel.</p>
<p>Operating costs stayed flat compared to the previous quarter, with increased
infrastructure spending offset by lower travel and office expenses across the
whole organization.</p>
<p>The outlook for the second quarter remains cautiously optimistic, although
currency headwinds are expected to reduce reported growth by a small margin.</p>
</article>
</body>
</html>`

func TestFetch_ExtractsArticleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	doc, err := testFetcher(t).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, entity.SourceURL, doc.Source)
	assert.Contains(t, doc.Text, "Revenue grew steadily")
	assert.Contains(t, doc.Text, "cautiously optimistic")
	assert.NotContains(t, doc.Text, "<p>")
	assert.Positive(t, doc.CharCount)
}

func TestFetch_FallsBackToParagraphs(t *testing.T) {
	// Too little structure for readability; the goquery fallback should
	// still collect the paragraph and heading text.
	page := `<html><head><script>var x = 1;</script></head>
<body><h2>Notice</h2><p>Short page body.</p></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	doc, err := testFetcher(t).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "Short page body.")
	assert.NotContains(t, doc.Text, "var x")
}

func TestFetch_RejectsBadURLs(t *testing.T) {
	f := testFetcher(t)

	tests := []struct {
		name string
		url  string
	}{
		{"unsupported scheme", "ftp://example.com/file.txt"},
		{"no hostname", "http://"},
		{"unparseable", "http://exa mple.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), tt.url)
			assert.ErrorIs(t, err, ErrInvalidURL)
		})
	}
}

func TestFetch_RejectsPrivateAddresses(t *testing.T) {
	cfg := DefaultConfig()
	f := New(cfg)

	_, err := f.Fetch(context.Background(), "http://127.0.0.1:9/anything")
	assert.ErrorIs(t, err, ErrPrivateAddress)
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testFetcher(t).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_BodySizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>"))
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
		_, _ = w.Write([]byte("</p></body></html>"))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.DenyPrivateIPs = false
	cfg.MaxBodySize = 1024
	f := New(cfg)

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, false},
		{"tiny body cap", func(c *Config) { c.MaxBodySize = 10 }, false},
		{"negative redirects", func(c *Config) { c.MaxRedirects = -1 }, false},
		{"excessive redirects", func(c *Config) { c.MaxRedirects = 50 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("FETCH_MAX_BODY_SIZE", "2048")
	t.Setenv("FETCH_DENY_PRIVATE_IPS", "false")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, int64(2048), cfg.MaxBodySize)
	assert.False(t, cfg.DenyPrivateIPs)
	assert.Equal(t, "5s", cfg.Timeout.String())
}

func TestLoadConfigFromEnv_InvalidValueIsError(t *testing.T) {
	t.Setenv("FETCH_MAX_REDIRECTS", "lots")

	_, err := LoadConfigFromEnv()
	assert.Error(t, err)
}
