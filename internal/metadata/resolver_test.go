package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mkbkakwk/mynav/internal/logger"
)

func testLogger() logger.Logger {
	return logger.New("error", false)
}

func TestResolveHostedTier(t *testing.T) {
	hosted := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") == "" {
			t.Error("hosted tier called without url parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {
				"title": "Example",
				"description": "An example page",
				"logo": {"url": "https://example.com/logo.png"},
				"image": {"url": "https://example.com/og.png"}
			}
		}`))
	}))
	defer hosted.Close()

	resolver := NewResolver(Options{HostedEndpoint: hosted.URL}, testLogger())

	result, err := resolver.Resolve(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result.Title != "Example" || result.Description != "An example page" {
		t.Errorf("result = %+v", result)
	}
	if len(result.Icons) != 2 || result.Icons[0] != "https://example.com/logo.png" {
		t.Errorf("icons = %v, want logo then image", result.Icons)
	}
}

func TestResolveAdvancesToProxyTier(t *testing.T) {
	hosted := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer hosted.Close()

	page := `<html><head>
		<title>Doc Title</title>
		<meta property="og:title" content="OG Title">
		<meta name="description" content="Meta description">
		<link rel="apple-touch-icon" href="/apple-touch-icon.png">
		<link rel="icon" href="/favicon.ico">
	</head><body></body></html>`

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer proxy.Close()

	resolver := NewResolver(Options{
		HostedEndpoint: hosted.URL,
		ProxyFormats:   []string{proxy.URL + "/?url=%s"},
	}, testLogger())

	result, err := resolver.Resolve(context.Background(), "https://example.com/page")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result.Title != "OG Title" {
		t.Errorf("Title = %q, want og:title to win over document title", result.Title)
	}
	if result.Description != "Meta description" {
		t.Errorf("Description = %q", result.Description)
	}
	// High-quality scraped icon first, ico dropped, provider URLs appended.
	if len(result.Icons) == 0 || !strings.Contains(result.Icons[0], "apple-touch-icon.png") {
		t.Errorf("icons = %v, want apple-touch-icon first", result.Icons)
	}
	for _, icon := range result.Icons {
		if strings.HasSuffix(icon, "favicon.ico") {
			t.Errorf("icons = %v, low-quality favicon.ico should be dropped", result.Icons)
		}
	}
}

func TestResolveProxyJSONEnvelope(t *testing.T) {
	hosted := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer hosted.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contents": "<html><head><title>Wrapped</title></head></html>"}`))
	}))
	defer proxy.Close()

	resolver := NewResolver(Options{
		HostedEndpoint: hosted.URL,
		ProxyFormats:   []string{proxy.URL + "/?url=%s"},
	}, testLogger())

	result, err := resolver.Resolve(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result.Title != "Wrapped" {
		t.Errorf("Title = %q, want title from JSON-wrapped page", result.Title)
	}
}

func TestResolveUnreachableFallsBackToFaviconServices(t *testing.T) {
	// Closed server: every network tier fails immediately.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	resolver := NewResolver(Options{
		HostedEndpoint: dead.URL,
		ProxyFormats:   []string{dead.URL + "/?url=%s"},
		Deadline:       500 * time.Millisecond,
		TierTimeout:    100 * time.Millisecond,
	}, testLogger())

	result, err := resolver.Resolve(context.Background(), "https://unreachable.example")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if result == nil {
		t.Fatal("Resolve() = nil, final tier must always produce a result")
	}
	if len(result.Icons) == 0 {
		t.Error("icons empty, want domain favicon service URLs")
	}
	if result.Title != "" || result.Description != "" {
		t.Errorf("fallback result carries metadata: %+v", result)
	}
}

func TestResolveCachesWithinWindow(t *testing.T) {
	var calls atomic.Int64
	hosted := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status":"success","data":{"title":"T","description":"D"}}`))
	}))
	defer hosted.Close()

	now := time.Now()
	clock := func() time.Time { return now }

	resolver := NewResolver(Options{
		HostedEndpoint: hosted.URL,
		Clock:          clock,
	}, testLogger())

	first, err := resolver.Resolve(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := resolver.Resolve(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if first != second {
		t.Error("cached call did not return the identical object")
	}
	if calls.Load() != 1 {
		t.Errorf("upstream calls = %d, want 1", calls.Load())
	}

	// Jump past the window: upstream consulted again.
	now = now.Add(DefaultCacheTTL + time.Second)
	if _, err := resolver.Resolve(context.Background(), "https://example.com"); err != nil {
		t.Fatalf("third Resolve() error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("upstream calls after expiry = %d, want 2", calls.Load())
	}
}

func TestResolveCancellationPropagates(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer slow.Close()

	resolver := NewResolver(Options{
		HostedEndpoint: slow.URL,
		ProxyFormats:   []string{slow.URL + "/?url=%s"},
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	result, err := resolver.Resolve(ctx, "https://example.com")
	if err == nil {
		t.Errorf("Resolve() = %+v, want cancellation error", result)
	}
}
