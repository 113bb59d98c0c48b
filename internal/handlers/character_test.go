package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/internal/engine"
	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/storage"
)

func setupCharacterHandler(t *testing.T, llmResponse string) (*CharacterHandler, *storage.MockStore) {
	t.Helper()
	store := storage.NewMockStore()
	llm := &services.MockTextGenerator{Responses: []string{llmResponse}}
	processor := engine.NewActionProcessor(store, llm, nil, testLogger())
	return NewCharacterHandler(store, processor, testLogger()), store
}

func TestCharacterHandler_Create(t *testing.T) {
	handler, store := setupCharacterHandler(t, `{
		"plot": "你睁开眼睛。",
		"gameState": {"character": {"profession": "剑士"}}
	}`)

	body := `{"name": "艾莉丝", "gender": "女"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/characters", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var response engine.ActionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "艾莉丝", response.Character.Name)
	assert.Equal(t, "剑士", response.Character.Profession)

	saved, err := store.GetPlayerCharacter(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
}

func TestCharacterHandler_CreateMissingName(t *testing.T) {
	handler, _ := setupCharacterHandler(t, "{}")

	req := httptest.NewRequest(http.MethodPost, "/v1/characters", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCharacterHandler_Random(t *testing.T) {
	handler, _ := setupCharacterHandler(t,
		"```json\n{\"name\": \"林小雨\", \"description\": \"精灵弓箭手\"}\n```")

	req := httptest.NewRequest(http.MethodPost, "/v1/characters/random", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var concept engine.RandomCharacterConcept
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&concept))
	assert.Equal(t, "林小雨", concept.Name)
}

func TestCharacterHandler_ListAndFilter(t *testing.T) {
	handler, store := setupCharacterHandler(t, "{}")
	ctx := context.Background()
	require.NoError(t, store.SaveCharacter(ctx, character.New("玩家", character.TypePlayer)))
	require.NoError(t, store.SaveCharacter(ctx, character.New("村长", character.TypeNPC)))

	req := httptest.NewRequest(http.MethodGet, "/v1/characters", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []*character.Character
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&all))
	assert.Len(t, all, 2)

	req = httptest.NewRequest(http.MethodGet, "/v1/characters?type=npc", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var npcs []*character.Character
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&npcs))
	require.Len(t, npcs, 1)
	assert.Equal(t, "村长", npcs[0].Name)
}

func TestCharacterHandler_PlayerNotFound(t *testing.T) {
	handler, _ := setupCharacterHandler(t, "{}")

	req := httptest.NewRequest(http.MethodGet, "/v1/characters/player", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCharacterHandler_ReadNotFound(t *testing.T) {
	handler, _ := setupCharacterHandler(t, "{}")

	req := httptest.NewRequest(http.MethodGet, "/v1/characters/no-such-id", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCharacterHandler_EquipFlow(t *testing.T) {
	handler, store := setupCharacterHandler(t, "{}")
	ctx := context.Background()

	player := character.New("艾莉丝", character.TypePlayer)
	sword := character.NewItem("铁剑", "weapon", 50)
	sword.Equipable = true
	sword.Slot = character.SlotWeapon
	player.Inventory = append(player.Inventory, sword)
	require.NoError(t, store.SaveCharacter(ctx, player))

	body := `{"itemId": "` + sword.ID + `", "slot": "weapon"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/characters/"+player.ID+"/equip", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated character.Character
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	require.NotNil(t, updated.Equipment[character.SlotWeapon])
	assert.Equal(t, "铁剑", updated.Equipment[character.SlotWeapon].Name)
	assert.Empty(t, updated.Inventory)

	// unequip moves it back to the inventory
	req = httptest.NewRequest(http.MethodPost, "/v1/characters/"+player.ID+"/unequip", strings.NewReader(`{"slot": "weapon"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Nil(t, updated.Equipment[character.SlotWeapon])
	require.Len(t, updated.Inventory, 1)
	assert.Equal(t, "铁剑", updated.Inventory[0].Name)
}

func TestCharacterHandler_EquipInvalidSlot(t *testing.T) {
	handler, store := setupCharacterHandler(t, "{}")
	player := character.New("艾莉丝", character.TypePlayer)
	require.NoError(t, store.SaveCharacter(context.Background(), player))

	body := `{"itemId": "x", "slot": "backpack"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/characters/"+player.ID+"/equip", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCharacterHandler_InventoryAddRemove(t *testing.T) {
	handler, store := setupCharacterHandler(t, "{}")
	player := character.New("艾莉丝", character.TypePlayer)
	require.NoError(t, store.SaveCharacter(context.Background(), player))

	req := httptest.NewRequest(http.MethodPost, "/v1/characters/"+player.ID+"/inventory",
		strings.NewReader(`{"name": "草药", "type": "consumable", "value": 5}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated character.Character
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	require.Len(t, updated.Inventory, 1)
	itemID := updated.Inventory[0].ID
	require.NotEmpty(t, itemID)

	req = httptest.NewRequest(http.MethodDelete, "/v1/characters/"+player.ID+"/inventory/"+itemID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var removed character.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&removed))
	assert.Equal(t, "草药", removed.Name)
}
