package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/realm-engine/pkg/state"
)

// Scene cache operations

func (r *RedisStore) SaveSceneCache(ctx context.Context, entry *state.SceneCacheEntry) error {
	if entry.SceneID == "" {
		return fmt.Errorf("scene cache entry requires a scene id")
	}
	entry.Timestamp = time.Now()

	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to marshal scene cache entry", "scene_id", entry.SceneID, "error", err)
		return fmt.Errorf("failed to marshal scene cache entry: %w", err)
	}

	if err := r.client.HSet(ctx, keySceneCache, entry.SceneID, string(data)).Err(); err != nil {
		r.logger.Error("Failed to save scene cache entry", "scene_id", entry.SceneID, "error", err)
		return fmt.Errorf("failed to save scene cache entry: %w", err)
	}
	return nil
}

func (r *RedisStore) GetSceneCache(ctx context.Context, sceneID string) (*state.SceneCacheEntry, error) {
	cmd := r.client.HGet(ctx, keySceneCache, sceneID)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load scene cache entry", "scene_id", sceneID, "error", err)
		return nil, fmt.Errorf("failed to load scene cache entry: %w", err)
	}

	var entry state.SceneCacheEntry
	if err := json.Unmarshal([]byte(cmd.Val()), &entry); err != nil {
		r.logger.Error("Failed to unmarshal scene cache entry", "scene_id", sceneID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal scene cache entry: %w", err)
	}
	return &entry, nil
}

// ClearSceneCache invalidates one entry by scene ID, or every entry
// when sceneID is empty.
func (r *RedisStore) ClearSceneCache(ctx context.Context, sceneID string) error {
	var err error
	if sceneID == "" {
		err = r.client.Del(ctx, keySceneCache).Err()
	} else {
		err = r.client.HDel(ctx, keySceneCache, sceneID).Err()
	}
	if err != nil {
		r.logger.Error("Failed to clear scene cache", "scene_id", sceneID, "error", err)
		return fmt.Errorf("failed to clear scene cache: %w", err)
	}
	return nil
}
