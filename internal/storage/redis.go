package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/realm-engine/pkg/storage"
)

// Redis key layout. Characters, world state, scene cache and settings
// live in hashes; the game log is a list pushed newest-first.
const (
	keyCharacters = "characters"
	keyWorldState = "worldstate"
	keyGameLog    = "gamelog"
	keyGameLogSeq = "gamelog:seq"
	keySceneCache = "scenecache"
	keySettings   = "settings"
)

// RedisStore implements the Store interface using Redis for all five
// collections.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStore implements Store interface
var _ storage.Store = (*RedisStore)(nil)

// NewRedisStore creates a new Redis store instance.
func NewRedisStore(redisURL string, logger *slog.Logger) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisStore{
		client: rdb,
		logger: logger,
	}
}

// Health and lifecycle methods

func (r *RedisStore) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStore) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Reset clears characters, world state, game log and scene cache in a
// single MULTI/EXEC, so a concurrent reader never observes a mix of
// old characters with cleared world state. Settings are kept.
func (r *RedisStore) Reset(ctx context.Context) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, keyCharacters)
	pipe.Del(ctx, keyWorldState)
	pipe.Del(ctx, keyGameLog)
	pipe.Del(ctx, keyGameLogSeq)
	pipe.Del(ctx, keySceneCache)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to reset database", "error", err)
		return fmt.Errorf("failed to reset database: %w", err)
	}
	r.logger.Info("Database reset")
	return nil
}
