package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/metadata"
	"github.com/mkbkakwk/mynav/internal/service"
	"github.com/mkbkakwk/mynav/internal/suggest"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed to access the server
	AllowedCIDRS  []string           // IPs allowed to access healthz/readyz endpoints
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	DevMode       bool               // enables the defaults write-back endpoint
	DefaultsFile  string             // Path to the shipped defaults file
	RedisClient   *redis.Client      // Redis client connection
	Service       *service.Service   // Authoritative dataset + mutations
	Resolver      *metadata.Resolver // Link metadata lookups
	Suggest       *suggest.Client    // Search suggestion upstream client
	RateLimit     mw.RateLimitConfig // Applied to the outbound-fetching endpoints
	ReloadTrigger chan struct{}      // Channel to trigger manual defaults reload
}
