package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DefaultsFile   string        // path to defaults.yaml (shipped sections + categories)
	PublicURL      string        // public URL this instance is reachable at (ex: https://nav.domain.ext)
	ReloadInterval time.Duration // interval to reload defaults.yaml (default: 24h)
	DevMode        bool          // true => enable the defaults write-back endpoint

	// Metadata resolution
	ResolveDeadline    time.Duration // overall budget for one metadata lookup (default: 4s)
	ResolveTierTimeout time.Duration // per-tier budget inside a lookup (default: 2s)
	ResolveCacheTTL    time.Duration // how long a resolved result is served from memory (default: 5m)

	// Search suggestions
	SuggestTimeout time.Duration // budget for one upstream suggestion call (default: 5s)

	// Cloud sync
	SyncFilePath   string        // path of the data file inside the remote repo
	SyncAllowLocal bool          // allow pushes even when PublicURL points at localhost
	SyncTimeout    time.Duration // budget for one remote read or write (default: 10s)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Rate limiting for the outbound-fetching endpoints
	RateLimitBurst  int // token bucket burst per IP
	RateLimitPerMin int // refill per IP per minute

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MYNAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MYNAV_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MYNAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MYNAV_PRETTY_LOG", true),

		// Dataset defaults
		DefaultsFile:   getenv("MYNAV_DEFAULTS_FILE", "/app/defaults.yaml"),
		PublicURL:      requireEnv("MYNAV_PUBLIC_URL"),
		ReloadInterval: mustDuration("MYNAV_RELOAD_DEFAULTS_INTERVAL", 24*time.Hour),
		DevMode:        mustBool("MYNAV_DEV_MODE", false),

		// Metadata resolution
		ResolveDeadline:    mustDuration("MYNAV_RESOLVE_DEADLINE", 4*time.Second),
		ResolveTierTimeout: mustDuration("MYNAV_RESOLVE_TIER_TIMEOUT", 2*time.Second),
		ResolveCacheTTL:    mustDuration("MYNAV_RESOLVE_CACHE_TTL", 5*time.Minute),

		// Search suggestions
		SuggestTimeout: mustDuration("MYNAV_SUGGEST_TIMEOUT", 5*time.Second),

		// Cloud sync
		SyncFilePath:   getenv("MYNAV_SYNC_FILE_PATH", "mynav-data.json"),
		SyncAllowLocal: mustBool("MYNAV_SYNC_ALLOW_LOCAL", false),
		SyncTimeout:    mustDuration("MYNAV_SYNC_TIMEOUT", 10*time.Second),

		// Redis settings
		RedisAddr:             requireEnv("MYNAV_REDIS_ADDR"),
		RedisUser:             getenv("MYNAV_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("MYNAV_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("MYNAV_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("MYNAV_REDIS_DB"),
		RedisDT:               mustDuration("MYNAV_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("MYNAV_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("MYNAV_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("MYNAV_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("MYNAV_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("MYNAV_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("MYNAV_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("MYNAV_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("MYNAV_REDIS_WARN_THRESHOLD", 3),

		// Rate limiting
		RateLimitBurst:  getenvInt("MYNAV_RATE_LIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("MYNAV_RATE_LIMIT_PER_MIN", 30),

		// Access restrictions
		AllowedHosts: requireEnvSlice("MYNAV_ALLOWED_HOSTS"),
		AllowedCIDRS: parseAllowedIPs(getenv("MYNAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("MYNAV_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: MYNAV_REDIS_PASSWORD is required when MYNAV_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func requireEnvSlice(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return splitAndTrim(v)
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
