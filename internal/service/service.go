package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/logger"
	redisstore "github.com/mkbkakwk/mynav/internal/store/redis"
	cloudsync "github.com/mkbkakwk/mynav/internal/sync"
)

// DefaultPushTimeout bounds the background cloud push that follows a
// mutation. The mutation itself never waits on it.
const DefaultPushTimeout = 15 * time.Second

// Store is the snapshot persistence the service writes through after
// every mutation.
type Store interface {
	SaveSections(ctx context.Context, sections []domain.Section) error
	GetSections(ctx context.Context) ([]domain.Section, error)
	SaveCategories(ctx context.Context, categories []domain.Category) error
	GetCategories(ctx context.Context) ([]domain.Category, error)
	SaveSyncSettings(ctx context.Context, settings domain.SyncSettings) error
	GetSyncSettings(ctx context.Context) (domain.SyncSettings, error)
}

// Syncer mirrors the dataset to a remote repository.
type Syncer interface {
	Enabled(settings domain.SyncSettings) bool
	Pull(ctx context.Context, settings domain.SyncSettings) (*cloudsync.Document, error)
	Push(ctx context.Context, settings domain.SyncSettings, doc cloudsync.Document) error
}

// Service owns the authoritative in-memory dataset. Every mutation goes
// through the domain rules, is persisted synchronously, and then mirrored
// to the cloud in the background.
type Service struct {
	mu       sync.RWMutex
	data     domain.Dataset
	settings domain.SyncSettings

	defaults    domain.Dataset
	store       Store
	syncer      Syncer
	logger      logger.Logger
	pushTimeout time.Duration

	wg sync.WaitGroup
}

// NewService creates a service around the shipped defaults. Call Load
// before serving.
func NewService(store Store, syncer Syncer, defaults domain.Dataset, log logger.Logger) *Service {
	return &Service{
		defaults:    defaults,
		store:       store,
		syncer:      syncer,
		logger:      log,
		pushTimeout: DefaultPushTimeout,
	}
}

// Load restores the dataset: stored snapshots when present, shipped
// defaults otherwise, always merged through the reconciler so new
// defaults appear and placeholder entries heal.
func (s *Service) Load(ctx context.Context) error {
	sections, err := s.store.GetSections(ctx)
	if err != nil && !errors.Is(err, redisstore.ErrNotFound) {
		return fmt.Errorf("failed to load sections: %w", err)
	}

	categories, err := s.store.GetCategories(ctx)
	if err != nil && !errors.Is(err, redisstore.ErrNotFound) {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	settings, err := s.store.GetSyncSettings(ctx)
	if err != nil && !errors.Is(err, redisstore.ErrNotFound) {
		return fmt.Errorf("failed to load sync settings: %w", err)
	}

	local := domain.Dataset{Sections: sections, Categories: categories}
	merged := domain.Reconcile(local, s.defaults)

	s.mu.Lock()
	s.data = merged
	s.settings = settings
	s.mu.Unlock()

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.logger.Info("dataset loaded",
		logger.Int("sections", len(merged.Sections)),
		logger.Int("categories", len(merged.Categories)),
	)
	return nil
}

// PullRemote replaces the local dataset with the cloud copy when one
// exists, then reconciles against the shipped defaults. Best effort:
// a missing or unreachable remote leaves the local dataset in place.
func (s *Service) PullRemote(ctx context.Context) error {
	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()

	if s.syncer == nil || !s.syncer.Enabled(settings) {
		return nil
	}

	doc, err := s.syncer.Pull(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to pull remote dataset: %w", err)
	}
	if doc == nil {
		return nil
	}

	remote := domain.Dataset{Sections: doc.Sections, Categories: doc.Categories}
	merged := domain.Reconcile(remote, s.defaults)

	s.mu.Lock()
	s.data = merged
	s.mu.Unlock()

	return s.persist(ctx)
}

// ReloadDefaults swaps in a freshly loaded defaults dataset and
// re-reconciles the live one against it.
func (s *Service) ReloadDefaults(ctx context.Context, defaults domain.Dataset) error {
	s.mu.Lock()
	s.defaults = defaults
	s.data = domain.Reconcile(s.data, defaults)
	s.mu.Unlock()

	return s.persist(ctx)
}

// Dataset returns a deep copy safe for concurrent readers.
func (s *Service) Dataset() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.Clone()
}

// ─────────────────────────────────────────────────────────────────
// Section / item mutations
// ─────────────────────────────────────────────────────────────────

func (s *Service) AddSection(ctx context.Context, sec domain.Section) (domain.Section, error) {
	s.mu.Lock()
	created, err := s.data.AddSection(sec)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return domain.Section{}, err
	}
	s.pushAsync()
	return created, nil
}

func (s *Service) UpdateSection(ctx context.Context, id, title, icon string) error {
	s.mu.Lock()
	err := s.data.UpdateSection(id, title, icon)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.data.DeleteSection(id)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) SwapSections(ctx context.Context, i, j int) error {
	s.mu.Lock()
	err := s.data.SwapSections(i, j)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) AddItem(ctx context.Context, sectionID string, item domain.BookmarkItem) (domain.BookmarkItem, error) {
	s.mu.Lock()
	created, err := s.data.AddItem(sectionID, item)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return domain.BookmarkItem{}, err
	}
	s.pushAsync()
	return created, nil
}

func (s *Service) UpdateItem(ctx context.Context, sectionID string, item domain.BookmarkItem) error {
	s.mu.Lock()
	err := s.data.UpdateItem(sectionID, item)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) DeleteItem(ctx context.Context, sectionID, itemID string) error {
	s.mu.Lock()
	err := s.data.DeleteItem(sectionID, itemID)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) SwapItems(ctx context.Context, sectionID string, i, j int) error {
	s.mu.Lock()
	err := s.data.SwapItems(sectionID, i, j)
	if err == nil {
		err = s.store.SaveSections(ctx, s.data.Sections)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Category / engine mutations
// ─────────────────────────────────────────────────────────────────

func (s *Service) AddCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	s.mu.Lock()
	created, err := s.data.AddCategory(c)
	if err == nil {
		err = s.store.SaveCategories(ctx, s.data.Categories)
	}
	s.mu.Unlock()

	if err != nil {
		return domain.Category{}, err
	}
	s.pushAsync()
	return created, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.data.DeleteCategory(id)
	if err == nil {
		err = s.store.SaveCategories(ctx, s.data.Categories)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) SwapCategories(ctx context.Context, i, j int) error {
	s.mu.Lock()
	err := s.data.SwapCategories(i, j)
	if err == nil {
		err = s.store.SaveCategories(ctx, s.data.Categories)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

func (s *Service) AddEngine(ctx context.Context, categoryID string, e domain.SearchEngine) (domain.SearchEngine, error) {
	s.mu.Lock()
	created, err := s.data.AddEngine(categoryID, e)
	if err == nil {
		err = s.store.SaveCategories(ctx, s.data.Categories)
	}
	s.mu.Unlock()

	if err != nil {
		return domain.SearchEngine{}, err
	}
	s.pushAsync()
	return created, nil
}

func (s *Service) DeleteEngine(ctx context.Context, categoryID, name string) error {
	s.mu.Lock()
	err := s.data.DeleteEngine(categoryID, name)
	if err == nil {
		err = s.store.SaveCategories(ctx, s.data.Categories)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.pushAsync()
	return nil
}

// FindEngine looks an engine up by name, for suggestion-source routing.
func (s *Service) FindEngine(name string) (domain.SearchEngine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.FindEngine(name)
}

// ─────────────────────────────────────────────────────────────────
// Sync settings
// ─────────────────────────────────────────────────────────────────

// Settings returns the current cloud sync settings, token included.
// Handlers redact before responding.
func (s *Service) Settings() domain.SyncSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// UpdateSettings persists new sync settings. An empty incoming token
// keeps the stored one, so the redacted GET payload can round-trip.
func (s *Service) UpdateSettings(ctx context.Context, settings domain.SyncSettings) error {
	s.mu.Lock()
	if settings.Token == "" {
		settings.Token = s.settings.Token
	}
	s.settings = settings
	err := s.store.SaveSyncSettings(ctx, settings)
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to save sync settings: %w", err)
	}
	return nil
}

// SyncNow pushes the current dataset to the cloud synchronously.
func (s *Service) SyncNow(ctx context.Context) error {
	s.mu.RLock()
	settings := s.settings
	doc := s.document()
	s.mu.RUnlock()

	if s.syncer == nil {
		return cloudsync.ErrSkipped
	}
	return s.syncer.Push(ctx, settings, doc)
}

// Wait blocks until in-flight background pushes finish. Used on shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

// persist writes both snapshots. Called outside mutation paths (load,
// pulls, defaults reloads) where the whole dataset may have changed.
func (s *Service) persist(ctx context.Context) error {
	s.mu.RLock()
	sections := s.data.Sections
	categories := s.data.Categories
	s.mu.RUnlock()

	if err := s.store.SaveSections(ctx, sections); err != nil {
		return fmt.Errorf("failed to persist sections: %w", err)
	}
	if err := s.store.SaveCategories(ctx, categories); err != nil {
		return fmt.Errorf("failed to persist categories: %w", err)
	}
	return nil
}

// document snapshots the dataset for a cloud push. Caller holds the lock.
func (s *Service) document() cloudsync.Document {
	clone := s.data.Clone()
	return cloudsync.Document{
		Sections:   clone.Sections,
		Categories: clone.Categories,
		SavedAt:    time.Now().UTC(),
	}
}

// pushAsync mirrors the dataset to the cloud without blocking the
// mutation that triggered it. Conflicts are logged and abandoned: the
// next mutation re-reads the remote head and wins.
func (s *Service) pushAsync() {
	if s.syncer == nil {
		return
	}

	s.mu.RLock()
	settings := s.settings
	doc := s.document()
	s.mu.RUnlock()

	if !s.syncer.Enabled(settings) {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.pushTimeout)
		defer cancel()

		err := s.syncer.Push(ctx, settings, doc)
		switch {
		case err == nil, errors.Is(err, cloudsync.ErrSkipped):
		case errors.Is(err, cloudsync.ErrConflict):
			s.logger.Warn("cloud push abandoned after conflict", logger.Error(err))
		default:
			s.logger.Error("cloud push failed", logger.Error(err))
		}
	}()
}
