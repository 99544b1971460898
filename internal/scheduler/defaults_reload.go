package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/service"
	"github.com/mkbkakwk/mynav/internal/sources/defaults"
)

// DefaultsReloader periodically re-reads the shipped defaults file and
// re-reconciles the live dataset against it, so edits to the file show
// up without a restart.
type DefaultsReloader struct {
	loader        *defaults.Loader
	mapper        *defaults.Mapper
	service       *service.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewDefaultsReloader creates a new defaults reloader
func NewDefaultsReloader(
	defaultsFile string,
	svc *service.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DefaultsReloader {
	return &DefaultsReloader{
		loader:        defaults.NewLoader(defaultsFile),
		mapper:        defaults.NewMapper(),
		service:       svc,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (dr *DefaultsReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := dr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(dr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload defaults",
						logger.Error(err))
				}
			case <-dr.manualTrigger:
				dr.logger.Info("manual defaults reload triggered")
				if err := dr.Reload(ctx); err != nil {
					dr.logger.Error("failed to reload defaults",
						logger.Error(err))
				}
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (dr *DefaultsReloader) Stop() {
	close(dr.stopCh)
}

// Reload re-reads the defaults file and merges it into the live dataset
func (dr *DefaultsReloader) Reload(ctx context.Context) error {
	config, err := dr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}

	dataset, err := dr.mapper.MapDataset(config)
	if err != nil {
		return fmt.Errorf("failed to map defaults: %w", err)
	}

	dr.logger.Info("loaded defaults file",
		logger.Int("sections", len(dataset.Sections)),
		logger.Int("categories", len(dataset.Categories)))

	if err := dr.service.ReloadDefaults(ctx, dataset); err != nil {
		return fmt.Errorf("failed to merge defaults: %w", err)
	}

	return nil
}
