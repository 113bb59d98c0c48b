package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// MockStore is an in-memory implementation of Store for testing.
type MockStore struct {
	mu         sync.RWMutex
	characters map[string]*character.Character
	worldState map[string]any
	gameLog    []*state.GameLogEntry
	sceneCache map[string]*state.SceneCacheEntry
	settings   map[string]string
	logSeq     int64
	pingError  error
}

// Ensure MockStore implements Store interface
var _ Store = (*MockStore)(nil)

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{
		characters: make(map[string]*character.Character),
		worldState: make(map[string]any),
		gameLog:    make([]*state.GameLogEntry, 0),
		sceneCache: make(map[string]*state.SceneCacheEntry),
		settings:   make(map[string]string),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStore) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) SaveCharacter(ctx context.Context, c *character.Character) error {
	if c == nil {
		return errors.New("character cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.LastUpdated = time.Now()
	m.characters[c.ID] = c
	return nil
}

func (m *MockStore) GetCharacter(ctx context.Context, id string) (*character.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.characters[id], nil
}

func (m *MockStore) GetAllCharacters(ctx context.Context) ([]*character.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*character.Character, 0, len(m.characters))
	for _, c := range m.characters {
		all = append(all, c)
	}
	return all, nil
}

func (m *MockStore) GetCharactersByType(ctx context.Context, charType string) ([]*character.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	matched := make([]*character.Character, 0)
	for _, c := range m.characters {
		if c.Type == charType {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (m *MockStore) GetPlayerCharacter(ctx context.Context) (*character.Character, error) {
	players, err := m.GetCharactersByType(ctx, character.TypePlayer)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}
	return players[0], nil
}

func (m *MockStore) DeleteCharacter(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.characters, id)
	return nil
}

func (m *MockStore) EquipItem(ctx context.Context, characterID, itemID, slot string) (*character.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.characters[characterID]
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}
	if err := c.Equip(itemID, slot); err != nil {
		return nil, err
	}
	c.LastUpdated = time.Now()
	return c, nil
}

func (m *MockStore) UnequipItem(ctx context.Context, characterID, slot string) (*character.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.characters[characterID]
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}
	if err := c.Unequip(slot); err != nil {
		return nil, err
	}
	c.LastUpdated = time.Now()
	return c, nil
}

func (m *MockStore) AddItemToInventory(ctx context.Context, characterID string, item *character.Item) (*character.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.characters[characterID]
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}
	if err := c.AddItem(item); err != nil {
		return nil, err
	}
	c.LastUpdated = time.Now()
	return c, nil
}

func (m *MockStore) RemoveItemFromInventory(ctx context.Context, characterID, itemID string) (*character.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.characters[characterID]
	if c == nil {
		return nil, fmt.Errorf("character %s not found", characterID)
	}
	item, err := c.RemoveItem(itemID)
	if err != nil {
		return nil, err
	}
	c.LastUpdated = time.Now()
	return item, nil
}

func (m *MockStore) SaveWorldState(ctx context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.worldState[key] = value
	return nil
}

func (m *MockStore) GetWorldState(ctx context.Context, key string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.worldState[key], nil
}

func (m *MockStore) GetAllWorldState(ctx context.Context) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	facts := make(map[string]any, len(m.worldState))
	for k, v := range m.worldState {
		facts[k] = v
	}
	return facts, nil
}

func (m *MockStore) AppendGameLog(ctx context.Context, entry *state.GameLogEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logSeq++
	entry.ID = m.logSeq
	entry.Timestamp = time.Now()
	// Prepend so reads are newest-first
	m.gameLog = append([]*state.GameLogEntry{entry}, m.gameLog...)
	return nil
}

func (m *MockStore) GetGameLog(ctx context.Context, limit int) ([]*state.GameLogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.gameLog) {
		limit = len(m.gameLog)
	}
	entries := make([]*state.GameLogEntry, limit)
	copy(entries, m.gameLog[:limit])
	return entries, nil
}

func (m *MockStore) SaveSceneCache(ctx context.Context, entry *state.SceneCacheEntry) error {
	if entry == nil || entry.SceneID == "" {
		return errors.New("scene cache entry requires a scene id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.Timestamp = time.Now()
	m.sceneCache[entry.SceneID] = entry
	return nil
}

func (m *MockStore) GetSceneCache(ctx context.Context, sceneID string) (*state.SceneCacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sceneCache[sceneID], nil
}

func (m *MockStore) ClearSceneCache(ctx context.Context, sceneID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sceneID == "" {
		m.sceneCache = make(map[string]*state.SceneCacheEntry)
		return nil
	}
	delete(m.sceneCache, sceneID)
	return nil
}

func (m *MockStore) SaveSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MockStore) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *MockStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters = make(map[string]*character.Character)
	m.worldState = make(map[string]any)
	m.gameLog = make([]*state.GameLogEntry, 0)
	m.sceneCache = make(map[string]*state.SceneCacheEntry)
	m.logSeq = 0
	return nil
}
