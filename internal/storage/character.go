package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/realm-engine/pkg/character"
)

// Character operations. All characters live in a single hash keyed by
// ID; type lookups filter client-side, which is fine at the scale of
// one player plus a handful of NPCs.

func (r *RedisStore) SaveCharacter(ctx context.Context, c *character.Character) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.LastUpdated = time.Now()

	data, err := json.Marshal(c)
	if err != nil {
		r.logger.Error("Failed to marshal character", "id", c.ID, "error", err)
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.HSet(ctx, keyCharacters, c.ID, string(data)).Err(); err != nil {
		r.logger.Error("Failed to save character", "id", c.ID, "error", err)
		return fmt.Errorf("failed to save character: %w", err)
	}
	return nil
}

func (r *RedisStore) GetCharacter(ctx context.Context, id string) (*character.Character, error) {
	cmd := r.client.HGet(ctx, keyCharacters, id)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load character: %w", err)
	}

	var c character.Character
	if err := json.Unmarshal([]byte(cmd.Val()), &c); err != nil {
		r.logger.Error("Failed to unmarshal character", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &c, nil
}

func (r *RedisStore) GetAllCharacters(ctx context.Context) ([]*character.Character, error) {
	entries, err := r.client.HGetAll(ctx, keyCharacters).Result()
	if err != nil {
		r.logger.Error("Failed to list characters", "error", err)
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	characters := make([]*character.Character, 0, len(entries))
	for id, data := range entries {
		var c character.Character
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			r.logger.Error("Failed to unmarshal character", "id", id, "error", err)
			return nil, fmt.Errorf("failed to unmarshal character %s: %w", id, err)
		}
		characters = append(characters, &c)
	}
	return characters, nil
}

func (r *RedisStore) GetCharactersByType(ctx context.Context, charType string) ([]*character.Character, error) {
	all, err := r.GetAllCharacters(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*character.Character, 0, len(all))
	for _, c := range all {
		if c.Type == charType {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// GetPlayerCharacter returns the live player character, or nil when no
// character has been created yet. At most one player character exists
// at a time, by convention rather than constraint.
func (r *RedisStore) GetPlayerCharacter(ctx context.Context) (*character.Character, error) {
	players, err := r.GetCharactersByType(ctx, character.TypePlayer)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}
	return players[0], nil
}

func (r *RedisStore) DeleteCharacter(ctx context.Context, id string) error {
	if err := r.client.HDel(ctx, keyCharacters, id).Err(); err != nil {
		r.logger.Error("Failed to delete character", "id", id, "error", err)
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// Equipment and inventory operations. Each loads the character,
// applies the move in memory, and saves only when the move succeeded,
// so memory and storage never diverge on failure.

func (r *RedisStore) EquipItem(ctx context.Context, characterID, itemID, slot string) (*character.Character, error) {
	c, err := r.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}

	if err := c.Equip(itemID, slot); err != nil {
		return nil, err
	}
	if err := r.SaveCharacter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *RedisStore) UnequipItem(ctx context.Context, characterID, slot string) (*character.Character, error) {
	c, err := r.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}

	if err := c.Unequip(slot); err != nil {
		return nil, err
	}
	if err := r.SaveCharacter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *RedisStore) AddItemToInventory(ctx context.Context, characterID string, item *character.Item) (*character.Character, error) {
	c, err := r.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}

	if err := c.AddItem(item); err != nil {
		return nil, err
	}
	if err := r.SaveCharacter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *RedisStore) RemoveItemFromInventory(ctx context.Context, characterID, itemID string) (*character.Item, error) {
	c, err := r.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}

	item, err := c.RemoveItem(itemID)
	if err != nil {
		return nil, err
	}
	if err := r.SaveCharacter(ctx, c); err != nil {
		return nil, err
	}
	return item, nil
}
