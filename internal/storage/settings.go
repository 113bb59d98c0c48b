package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Settings operations. Plain key/value pairs; settings survive a
// database reset.

func (r *RedisStore) SaveSetting(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, keySettings, key, value).Err(); err != nil {
		r.logger.Error("Failed to save setting", "key", key, "error", err)
		return fmt.Errorf("failed to save setting: %w", err)
	}
	return nil
}

func (r *RedisStore) GetSetting(ctx context.Context, key string) (string, error) {
	cmd := r.client.HGet(ctx, keySettings, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return "", nil // Return empty string for not found, not an error
		}
		r.logger.Error("Failed to load setting", "key", key, "error", err)
		return "", fmt.Errorf("failed to load setting: %w", err)
	}
	return cmd.Val(), nil
}
