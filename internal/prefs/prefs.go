// Package prefs persists the small set of per-owner UI preferences that
// survive a session. Today that is exactly one key: the sort preference.
package prefs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

// Store reads and writes owner preferences in Redis
type Store struct {
	client *redis.Client
}

// NewStore creates a preference store over an existing Redis client
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Connect opens a Redis connection from a URL and verifies connectivity
func Connect(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func sortKeyKey(userID uuid.UUID) string {
	return fmt.Sprintf("prefs:%s:sort_key", userID)
}

// GetSortKey returns the owner's persisted sort preference, or the default
// when none is stored.
func (s *Store) GetSortKey(ctx context.Context, userID uuid.UUID) (models.SortKey, error) {
	val, err := s.client.Get(ctx, sortKeyKey(userID)).Result()
	if err == redis.Nil {
		return models.DefaultSortKey, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read sort preference: %w", err)
	}

	key := models.SortKey(val)
	switch key {
	case models.SortRecent, models.SortNameAsc, models.SortNameDesc:
		return key, nil
	default:
		// A stale or hand-edited value falls back rather than erroring.
		return models.DefaultSortKey, nil
	}
}

// SetSortKey persists the owner's sort preference.
func (s *Store) SetSortKey(ctx context.Context, userID uuid.UUID, key models.SortKey) error {
	if err := s.client.Set(ctx, sortKeyKey(userID), string(key), 0).Err(); err != nil {
		return fmt.Errorf("failed to write sort preference: %w", err)
	}
	return nil
}

// DeleteSortKey removes the owner's persisted preference, restoring the
// default on next read.
func (s *Store) DeleteSortKey(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, sortKeyKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete sort preference: %w", err)
	}
	return nil
}
