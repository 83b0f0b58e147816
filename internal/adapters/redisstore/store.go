// internal/adapters/redisstore/store.go
package redisstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/avasquez/stitchstock-be/internal/core/ports"
)

// Store is the Redis-backed blob store: one string value per blob key,
// namespaced under a configurable prefix, no expiry.
type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// Statically assert that *Store implements the BlobStore interface.
var _ ports.BlobStore = (*Store)(nil)

// New creates a Redis blob store.
func New(client *redis.Client, prefix string, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("component", "redisstore")),
	}
}

// Get returns the blob at key, or found=false when it was never written.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			s.logger.DebugContext(ctx, "blob absent", slog.String("key", key))
			return "", false, nil
		}
		s.logger.ErrorContext(ctx, "failed to get blob",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", false, fmt.Errorf("redis get error: %w", err)
	}
	return value, true, nil
}

// Set writes the blob at key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to set blob",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.DebugContext(ctx, "blob written",
		slog.String("key", key),
		slog.Int("bytes", len(value)))
	return nil
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping error: %w", err)
	}
	return nil
}

func (s *Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
