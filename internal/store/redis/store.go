package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mkbkakwk/mynav/internal/domain"
)

// ErrNotFound is returned when a snapshot key has never been written.
// Callers treat it as "fall back to the shipped defaults".
var ErrNotFound = errors.New("snapshot not found")

// Store persists dataset snapshots as JSON under stable keys. Each domain
// collection is one key holding one serialized snapshot, written
// synchronously after every mutation.
type Store struct {
	client *redis.Client
}

// NewStore creates a new snapshot store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// SaveSections replaces the sections snapshot.
func (s *Store) SaveSections(ctx context.Context, sections []domain.Section) error {
	data, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}
	if err := s.client.Set(ctx, KeySections, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save sections: %w", err)
	}
	return nil
}

// GetSections reads the sections snapshot. ErrNotFound when never written.
func (s *Store) GetSections(ctx context.Context) ([]domain.Section, error) {
	data, err := s.client.Get(ctx, KeySections).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sections: %w", err)
	}

	var sections []domain.Section
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}
	return sections, nil
}

// SaveCategories replaces the categories snapshot in the current
// (list-shaped) format.
func (s *Store) SaveCategories(ctx context.Context, categories []domain.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	if err := s.client.Set(ctx, KeyCategories, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// GetCategories reads the categories snapshot. Legacy record-shaped
// snapshots are normalized here, once, at load.
func (s *Store) GetCategories(ctx context.Context) ([]domain.Category, error) {
	data, err := s.client.Get(ctx, KeyCategories).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	categories, err := domain.DecodeCategories(data)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize categories: %w", err)
	}
	return categories, nil
}

// SaveSyncSettings replaces the sync settings snapshot.
func (s *Store) SaveSyncSettings(ctx context.Context, settings domain.SyncSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal sync settings: %w", err)
	}
	if err := s.client.Set(ctx, KeySyncSettings, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save sync settings: %w", err)
	}
	return nil
}

// GetSyncSettings reads the sync settings snapshot.
func (s *Store) GetSyncSettings(ctx context.Context) (domain.SyncSettings, error) {
	data, err := s.client.Get(ctx, KeySyncSettings).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SyncSettings{}, ErrNotFound
		}
		return domain.SyncSettings{}, fmt.Errorf("failed to get sync settings: %w", err)
	}

	var settings domain.SyncSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.SyncSettings{}, fmt.Errorf("failed to unmarshal sync settings: %w", err)
	}
	return settings, nil
}
