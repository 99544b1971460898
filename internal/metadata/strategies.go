package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkbkakwk/mynav/internal/favicon"
	"github.com/mkbkakwk/mynav/internal/utils"
)

const (
	// DefaultHostedEndpoint is the primary hosted extraction API.
	DefaultHostedEndpoint = "https://api.microlink.io"

	// maxBodySize bounds how much proxied HTML is read per attempt.
	maxBodySize = 5 * 1024 * 1024

	userAgent = "mynav/1.0 (start-page)"
)

// DefaultProxyFormats are the CORS proxy URL templates, tried in order.
// %s receives the encoded target URL.
var DefaultProxyFormats = []string{
	"https://corsproxy.io/?url=%s",
	"https://api.allorigins.win/get?url=%s",
}

// errNoMetadata advances the runner to the next tier.
var errNoMetadata = errors.New("no usable metadata")

// Strategy is one resolution tier. Attempt returns a usable result or an
// error meaning "advance"; only context cancellation is terminal.
type Strategy interface {
	Name() string
	Timeout() time.Duration
	Attempt(ctx context.Context, target string) (*Result, error)
}

// ─────────────────────────────────────────────────────────────────
// Tier 1: hosted extraction API
// ─────────────────────────────────────────────────────────────────

type hostedStrategy struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

func (s *hostedStrategy) Name() string           { return "hosted" }
func (s *hostedStrategy) Timeout() time.Duration { return s.timeout }

// hostedResponse is the microlink-shaped envelope.
type hostedResponse struct {
	Status string `json:"status"`
	Data   struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Logo        struct {
			URL string `json:"url"`
		} `json:"logo"`
		Image struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"data"`
}

func (s *hostedStrategy) Attempt(ctx context.Context, target string) (*Result, error) {
	reqURL := fmt.Sprintf("%s?url=%s", s.endpoint, url.QueryEscape(target))
	body, err := fetch(ctx, s.client, reqURL)
	if err != nil {
		return nil, err
	}

	var parsed hostedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("hosted response decode: %w", err)
	}
	if parsed.Status != "success" {
		return nil, errNoMetadata
	}
	if parsed.Data.Title == "" && parsed.Data.Description == "" {
		return nil, errNoMetadata
	}

	var icons []string
	if parsed.Data.Logo.URL != "" {
		icons = append(icons, parsed.Data.Logo.URL)
	}
	if parsed.Data.Image.URL != "" {
		icons = append(icons, parsed.Data.Image.URL)
	}

	return &Result{
		Title:       parsed.Data.Title,
		Description: parsed.Data.Description,
		Icons:       dedupe(icons),
	}, nil
}

// ─────────────────────────────────────────────────────────────────
// Tier 2/3: CORS proxy + HTML parse
// ─────────────────────────────────────────────────────────────────

type proxyStrategy struct {
	name    string
	format  string
	client  *http.Client
	timeout time.Duration
}

func (s *proxyStrategy) Name() string           { return s.name }
func (s *proxyStrategy) Timeout() time.Duration { return s.timeout }

// proxyEnvelope covers proxies that wrap the page in JSON.
type proxyEnvelope struct {
	Contents string `json:"contents"`
}

func (s *proxyStrategy) Attempt(ctx context.Context, target string) (*Result, error) {
	reqURL := fmt.Sprintf(s.format, url.QueryEscape(target))
	body, err := fetch(ctx, s.client, reqURL)
	if err != nil {
		return nil, err
	}

	// Some proxies return {"contents": "<html>..."}, others the raw page.
	page := body
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		var envelope proxyEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Contents != "" {
			page = []byte(envelope.Contents)
		}
	}

	result := extractFromHTML(page, target)
	if result == nil || (result.Title == "" && result.Description == "") {
		return nil, errNoMetadata
	}

	// Scraped link-rel icons are often low-quality defaults: keep only the
	// high-quality candidates and back them with the favicon services.
	kept := make([]string, 0, len(result.Icons))
	for _, icon := range result.Icons {
		if iconQuality(icon) {
			kept = append(kept, icon)
		}
	}
	result.Icons = dedupe(append(kept, favicon.ProviderURLs(target, 64)...))

	return result, nil
}

// fallbackResult is the final tier: no scraping, domain-keyed favicon
// services only. It never fails.
func fallbackResult(target string) *Result {
	icons := favicon.ProviderURLs(target, 64)
	if icons == nil {
		icons = []string{}
	}
	return &Result{Icons: icons}
}

func fetch(ctx context.Context, client *http.Client, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
