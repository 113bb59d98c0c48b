package storage

import (
	"context"

	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// Store defines a unified interface for all persistence operations:
// characters, world-state facts, the append-only game log, the scene
// cache, and settings.
type Store interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Character operations. SaveCharacter is an upsert keyed by ID;
	// it assigns an ID if absent and stamps LastUpdated. GetCharacter
	// returns nil for a missing character, not an error.
	SaveCharacter(ctx context.Context, c *character.Character) error
	GetCharacter(ctx context.Context, id string) (*character.Character, error)
	GetAllCharacters(ctx context.Context) ([]*character.Character, error)
	GetCharactersByType(ctx context.Context, charType string) ([]*character.Character, error)
	GetPlayerCharacter(ctx context.Context) (*character.Character, error)
	DeleteCharacter(ctx context.Context, id string) error

	// Equipment and inventory operations. Each loads the character,
	// applies the move, and persists only on success, so a failed
	// precondition never leaves a half-applied move behind. The
	// updated character is returned.
	EquipItem(ctx context.Context, characterID, itemID, slot string) (*character.Character, error)
	UnequipItem(ctx context.Context, characterID, slot string) (*character.Character, error)
	AddItemToInventory(ctx context.Context, characterID string, item *character.Item) (*character.Character, error)
	RemoveItemFromInventory(ctx context.Context, characterID, itemID string) (*character.Item, error)

	// World state operations. GetWorldState returns nil for a missing
	// key.
	SaveWorldState(ctx context.Context, key string, value any) error
	GetWorldState(ctx context.Context, key string) (any, error)
	GetAllWorldState(ctx context.Context) (map[string]any, error)

	// Game log operations. Entries are auto-numbered and returned
	// newest first, at most limit entries.
	AppendGameLog(ctx context.Context, entry *state.GameLogEntry) error
	GetGameLog(ctx context.Context, limit int) ([]*state.GameLogEntry, error)

	// Scene cache operations. ClearSceneCache with an empty sceneID
	// clears every entry.
	SaveSceneCache(ctx context.Context, entry *state.SceneCacheEntry) error
	GetSceneCache(ctx context.Context, sceneID string) (*state.SceneCacheEntry, error)
	ClearSceneCache(ctx context.Context, sceneID string) error

	// Settings operations
	SaveSetting(ctx context.Context, key, value string) error
	GetSetting(ctx context.Context, key string) (string, error)

	// Reset clears characters, world state, game log and scene cache
	// as one logical operation. Settings survive a reset.
	Reset(ctx context.Context) error
}
