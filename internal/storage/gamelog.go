package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwebster45206/realm-engine/pkg/state"
)

// Game log operations. The log is a Redis list pushed newest-first, so
// a bounded LRANGE reads entries in reverse-chronological order
// without scanning the whole log. IDs come from a separate counter.

func (r *RedisStore) AppendGameLog(ctx context.Context, entry *state.GameLogEntry) error {
	id, err := r.client.Incr(ctx, keyGameLogSeq).Result()
	if err != nil {
		r.logger.Error("Failed to number game log entry", "error", err)
		return fmt.Errorf("failed to number game log entry: %w", err)
	}
	entry.ID = id
	entry.Timestamp = time.Now()

	data, err := json.Marshal(entry)
	if err != nil {
		r.logger.Error("Failed to marshal game log entry", "id", id, "error", err)
		return fmt.Errorf("failed to marshal game log entry: %w", err)
	}

	if err := r.client.LPush(ctx, keyGameLog, string(data)).Err(); err != nil {
		r.logger.Error("Failed to append game log entry", "id", id, "error", err)
		return fmt.Errorf("failed to append game log entry: %w", err)
	}
	return nil
}

func (r *RedisStore) GetGameLog(ctx context.Context, limit int) ([]*state.GameLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.client.LRange(ctx, keyGameLog, 0, int64(limit-1)).Result()
	if err != nil {
		r.logger.Error("Failed to read game log", "error", err)
		return nil, fmt.Errorf("failed to read game log: %w", err)
	}

	entries := make([]*state.GameLogEntry, 0, len(rows))
	for _, data := range rows {
		var entry state.GameLogEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			r.logger.Error("Failed to unmarshal game log entry", "error", err)
			return nil, fmt.Errorf("failed to unmarshal game log entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
