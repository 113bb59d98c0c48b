package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/realm-engine/pkg/state"
)

// World state operations. Each fact is stored as a WorldStateEntry so
// the last-write timestamp rides along with the value.

func (r *RedisStore) SaveWorldState(ctx context.Context, key string, value any) error {
	entry := state.WorldStateEntry{
		Key:       key,
		Value:     value,
		Timestamp: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to marshal world state", "key", key, "error", err)
		return fmt.Errorf("failed to marshal world state: %w", err)
	}

	if err := r.client.HSet(ctx, keyWorldState, key, string(data)).Err(); err != nil {
		r.logger.Error("Failed to save world state", "key", key, "error", err)
		return fmt.Errorf("failed to save world state: %w", err)
	}
	return nil
}

func (r *RedisStore) GetWorldState(ctx context.Context, key string) (any, error) {
	cmd := r.client.HGet(ctx, keyWorldState, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load world state", "key", key, "error", err)
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	var entry state.WorldStateEntry
	if err := json.Unmarshal([]byte(cmd.Val()), &entry); err != nil {
		r.logger.Error("Failed to unmarshal world state", "key", key, "error", err)
		return nil, fmt.Errorf("failed to unmarshal world state: %w", err)
	}
	return entry.Value, nil
}

// GetAllWorldState reads the full fact set back as a flat mapping.
func (r *RedisStore) GetAllWorldState(ctx context.Context) (map[string]any, error) {
	entries, err := r.client.HGetAll(ctx, keyWorldState).Result()
	if err != nil {
		r.logger.Error("Failed to list world state", "error", err)
		return nil, fmt.Errorf("failed to list world state: %w", err)
	}

	facts := make(map[string]any, len(entries))
	for key, data := range entries {
		var entry state.WorldStateEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			r.logger.Error("Failed to unmarshal world state", "key", key, "error", err)
			return nil, fmt.Errorf("failed to unmarshal world state %s: %w", key, err)
		}
		facts[key] = entry.Value
	}
	return facts, nil
}
