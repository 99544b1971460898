package suggest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/utils"
)

const (
	// MaxSuggestions caps what is returned to the UI.
	MaxSuggestions = 8
	// DefaultTimeout bounds one JSONP round trip.
	DefaultTimeout = 5 * time.Second

	maxBodySize = 1 << 20
)

// Options configures a Client. Zero values take the defaults.
type Options struct {
	Endpoints Endpoints
	Timeout   time.Duration
	Client    *http.Client
}

// Client fetches autocomplete suggestions from JSONP-only upstreams.
// Each call owns its one-off callback name; nothing ambient leaks
// between requests.
type Client struct {
	endpoints Endpoints
	timeout   time.Duration
	client    *http.Client
	logger    logger.Logger
}

// NewClient creates a suggestion client.
func NewClient(opts Options, log logger.Logger) *Client {
	if opts.Endpoints == (Endpoints{}) {
		opts.Endpoints = DefaultEndpoints()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	return &Client{
		endpoints: opts.Endpoints,
		timeout:   opts.Timeout,
		client:    opts.Client,
		logger:    log,
	}
}

// Suggest returns up to MaxSuggestions completions for a query. Every
// failure path (network, parse, timeout, unknown source) yields an empty
// list — autocomplete degradation is invisible to the user.
func (c *Client) Suggest(ctx context.Context, query string, source domain.SuggestionSource) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	p, ok := providerFor(source)
	if !ok {
		return nil
	}

	payload, err := c.fetchJSONP(ctx, p.buildURL(c.endpoints, query), p.callbackParam)
	if err != nil {
		c.logger.Debug("suggestion fetch failed",
			logger.String("provider", p.name),
			logger.Error(err))
		return nil
	}

	results, err := p.parse(payload)
	if err != nil {
		c.logger.Debug("suggestion parse failed",
			logger.String("provider", p.name),
			logger.Error(err))
		return nil
	}

	if len(results) > MaxSuggestions {
		results = results[:MaxSuggestions]
	}
	return results
}

// fetchJSONP performs one padded round trip: a generated callback name is
// bound to the request, and the response payload is unwrapped from the
// `name(...)` padding before JSON decoding.
func (c *Client) fetchJSONP(ctx context.Context, rawURL, callbackParam string) ([]byte, error) {
	callbackName := fmt.Sprintf("mynav_cb_%d_%d", time.Now().UnixNano(), rand.Intn(10000))

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	reqURL := rawURL + sep + callbackParam + "=" + callbackName

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
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

	return stripPadding(body)
}

// stripPadding extracts the JSON argument from callback padding.
// A bare JSON body (some upstreams skip the padding) passes through.
func stripPadding(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return trimmed, nil
	}

	open := bytes.IndexByte(trimmed, '(')
	end := bytes.LastIndexByte(trimmed, ')')
	if open < 0 || end <= open {
		return nil, fmt.Errorf("malformed padding")
	}
	return bytes.TrimSpace(trimmed[open+1 : end]), nil
}
