package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Store implements storage.Store on a Redis backend. Redis failures are
// logged and swallowed so the storefront keeps working with storage acting
// as empty.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStore creates a Redis-backed key-value store.
func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}

// Read returns the value for key, or ok=false when absent or unreachable.
func (s *Store) Read(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("redis read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return "", false
	}
	return val, true
}

// Write persists value under key with no expiry. Failures are swallowed.
func (s *Store) Write(ctx context.Context, key, value string) {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Warn("redis write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Remove deletes key. Failures are swallowed.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("redis remove failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
