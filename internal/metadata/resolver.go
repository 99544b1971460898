package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mkbkakwk/mynav/internal/logger"
)

const (
	// DefaultDeadline bounds a whole resolution across all tiers.
	DefaultDeadline = 4 * time.Second
	// DefaultTierTimeout bounds each individual tier attempt.
	DefaultTierTimeout = 2 * time.Second
)

// Result is the best-effort metadata for a URL. Icons are ordered best
// first and, thanks to the final tier, never empty for a parseable URL.
type Result struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Icons       []string `json:"icons"`
}

// Options configures a Resolver. Zero values take the defaults above,
// so tests can point endpoints at local fakes.
type Options struct {
	HostedEndpoint string
	ProxyFormats   []string
	Deadline       time.Duration
	TierTimeout    time.Duration
	CacheTTL       time.Duration
	Clock          func() time.Time
	Client         *http.Client
}

// Resolver walks an ordered strategy list under a global deadline.
// Per-tier failures advance to the next tier; only cancellation escapes.
type Resolver struct {
	strategies []Strategy
	cache      *Cache
	deadline   time.Duration
	logger     logger.Logger
}

// NewResolver builds the tiered resolver: hosted API, then each CORS
// proxy, with the favicon-service fallback applied when every network
// tier has failed.
func NewResolver(opts Options, log logger.Logger) *Resolver {
	if opts.HostedEndpoint == "" {
		opts.HostedEndpoint = DefaultHostedEndpoint
	}
	if opts.ProxyFormats == nil {
		opts.ProxyFormats = DefaultProxyFormats
	}
	if opts.Deadline <= 0 {
		opts.Deadline = DefaultDeadline
	}
	if opts.TierTimeout <= 0 {
		opts.TierTimeout = DefaultTierTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}

	strategies := []Strategy{
		&hostedStrategy{endpoint: opts.HostedEndpoint, client: opts.Client, timeout: opts.TierTimeout},
	}
	for i, format := range opts.ProxyFormats {
		strategies = append(strategies, &proxyStrategy{
			name:    fmt.Sprintf("proxy-%d", i+1),
			format:  format,
			client:  opts.Client,
			timeout: opts.TierTimeout,
		})
	}

	return &Resolver{
		strategies: strategies,
		cache:      NewCache(opts.CacheTTL, opts.Clock),
		deadline:   opts.Deadline,
		logger:     log,
	}
}

// Resolve returns best-effort metadata for a URL. It consults the cache
// first, walks the network tiers, and falls back to domain favicon
// services so a non-nil result is always produced unless the caller
// cancels.
func (r *Resolver) Resolve(ctx context.Context, target string) (*Result, error) {
	if cached, ok := r.cache.Get(target); ok {
		r.logger.Debug("metadata cache hit", logger.String("url", target))
		return cached, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, r.deadline)
	defer cancel()

	for _, strategy := range r.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if runCtx.Err() != nil {
			// Overall deadline spent; the fallback tier needs no network.
			break
		}

		attemptCtx, cancelAttempt := context.WithTimeout(runCtx, strategy.Timeout())
		result, err := strategy.Attempt(attemptCtx, target)
		cancelAttempt()

		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, ctx.Err()
			}
			r.logger.Debug("metadata tier failed",
				logger.String("tier", strategy.Name()),
				logger.String("url", target),
				logger.Error(err))
			continue
		}

		r.cache.Set(target, result)
		r.logger.Debug("metadata resolved",
			logger.String("tier", strategy.Name()),
			logger.String("url", target))
		return result, nil
	}

	result := fallbackResult(target)
	r.cache.Set(target, result)
	return result, nil
}
