package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mkbkakwk/mynav/internal/config"
	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/httpserver"
	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/metadata"
	"github.com/mkbkakwk/mynav/internal/redis"
	"github.com/mkbkakwk/mynav/internal/scheduler"
	"github.com/mkbkakwk/mynav/internal/service"
	redisstore "github.com/mkbkakwk/mynav/internal/store/redis"
	"github.com/mkbkakwk/mynav/internal/suggest"
	cloudsync "github.com/mkbkakwk/mynav/internal/sync"
	"github.com/mkbkakwk/mynav/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	service     *service.Service
	reloader    *scheduler.DefaultsReloader
	puller      *scheduler.RemotePuller
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Error("failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Snapshot store over Redis
	store := redisstore.NewStore(redisClient)

	// Cloud sync client
	syncer := cloudsync.NewClient(cloudsync.Options{
		FilePath:   cfg.SyncFilePath,
		Timeout:    cfg.SyncTimeout,
		PublicURL:  cfg.PublicURL,
		AllowLocal: cfg.SyncAllowLocal,
	}, loggerClient)

	// Dataset service (defaults arrive via the reloader's first pass)
	svc := service.NewService(store, syncer, domain.Dataset{}, loggerClient)

	// Metadata resolver and suggestion client
	resolver := metadata.NewResolver(metadata.Options{
		Deadline:    cfg.ResolveDeadline,
		TierTimeout: cfg.ResolveTierTimeout,
		CacheTTL:    cfg.ResolveCacheTTL,
	}, loggerClient)

	suggestClient := suggest.NewClient(suggest.Options{
		Timeout: cfg.SuggestTimeout,
	}, loggerClient)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	// Initialize defaults reloader
	reloader := scheduler.NewDefaultsReloader(
		cfg.DefaultsFile,
		svc,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Remote pull on startup
	puller := scheduler.NewRemotePuller(svc, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		DevMode:      cfg.DevMode,
		DefaultsFile: cfg.DefaultsFile,
		RedisClient:  redisClient,
		Service:      svc,
		Resolver:     resolver,
		Suggest:      suggestClient,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitPerMin,
			TrustProxy:        cfg.TrustProxy,
		},
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		service:     svc,
		reloader:    reloader,
		puller:      puller,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting MyNav v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("MyNav %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = a.logger.Sync() }()

	// Restore snapshots before anything touches the dataset
	if err := a.service.Load(ctx); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// Start defaults reloader (merges defaults.yaml and keeps it fresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start defaults reloader: %w", err)
	}
	a.logger.Info("defaults reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Pull the cloud copy once at startup (best effort)
	if err := a.puller.Pull(ctx); err != nil {
		return fmt.Errorf("failed to pull remote dataset: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	// Stop reloader
	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Let in-flight cloud pushes finish
	a.service.Wait()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ MyNav stopped cleanly")
	return nil
}
