package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/realm-engine/internal/engine"
	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/storage"
)

const creationTimeout = 180 * time.Second

type EquipRequest struct {
	ItemID string `json:"itemId"`
	Slot   string `json:"slot"`
}

type UnequipRequest struct {
	Slot string `json:"slot"`
}

// CharacterHandler handles character CRUD, creation through the
// narrative engine, and equipment moves.
//
// Routes:
//
//	POST   /v1/characters                      - create via the model
//	POST   /v1/characters/random               - random character concept
//	GET    /v1/characters                      - list (optional ?type=)
//	GET    /v1/characters/player               - the player character
//	GET    /v1/characters/{id}                 - read by ID
//	DELETE /v1/characters/{id}                 - delete by ID
//	POST   /v1/characters/{id}/equip           - equip an inventory item
//	POST   /v1/characters/{id}/unequip         - clear a slot
//	POST   /v1/characters/{id}/inventory       - add an item
//	DELETE /v1/characters/{id}/inventory/{itemId} - remove an item
type CharacterHandler struct {
	store     storage.Store
	processor *engine.ActionProcessor
	logger    *slog.Logger
}

func NewCharacterHandler(store storage.Store, processor *engine.ActionProcessor, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{
		store:     store,
		processor: processor,
		logger:    logger,
	}
}

func (h *CharacterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/characters"), "/")
	parts := []string{}
	if path != "" {
		parts = strings.Split(path, "/")
	}

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.handleList(w, r)
	case len(parts) == 1 && parts[0] == "random" && r.Method == http.MethodPost:
		h.handleRandom(w, r)
	case len(parts) == 1 && parts[0] == "player" && r.Method == http.MethodGet:
		h.handlePlayer(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleRead(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleDelete(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "equip" && r.Method == http.MethodPost:
		h.handleEquip(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "unequip" && r.Method == http.MethodPost:
		h.handleUnequip(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "inventory" && r.Method == http.MethodPost:
		h.handleAddItem(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "inventory" && r.Method == http.MethodDelete:
		h.handleRemoveItem(w, r, parts[0], parts[2])
	default:
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "Not found"})
	}
}

func (h *CharacterHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft engine.CharacterDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.logger.Warn("Invalid character draft", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'name' field."})
		return
	}
	if draft.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Character name is required."})
		return
	}

	ctx, cancel := contextWithTimeout(r, creationTimeout)
	defer cancel()

	response, err := h.processor.CreateCharacter(ctx, &draft)
	if err != nil {
		h.writeEngineError(w, err, "Failed to create character.")
		return
	}

	h.logger.Info("Character created", "name", draft.Name, "id", response.Character.ID)
	w.WriteHeader(http.StatusCreated)
	h.encode(w, response)
}

func (h *CharacterHandler) handleRandom(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, creationTimeout)
	defer cancel()

	concept, err := h.processor.RandomCharacter(ctx)
	if err != nil {
		h.writeEngineError(w, err, "Failed to generate a random character.")
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, concept)
}

func (h *CharacterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		chars []*character.Character
		err   error
	)
	if charType := r.URL.Query().Get("type"); charType != "" {
		chars, err = h.store.GetCharactersByType(r.Context(), charType)
	} else {
		chars, err = h.store.GetAllCharacters(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list characters", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.encode(w, ErrorResponse{Error: "Failed to list characters."})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, chars)
}

func (h *CharacterHandler) handlePlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.store.GetPlayerCharacter(r.Context())
	if err != nil {
		h.logger.Error("Failed to load player character", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.encode(w, ErrorResponse{Error: "Failed to load player character."})
		return
	}
	if player == nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "No player character exists."})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, player)
}

func (h *CharacterHandler) handleRead(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.GetCharacter(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load character", "id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.encode(w, ErrorResponse{Error: "Failed to load character."})
		return
	}
	if c == nil {
		w.WriteHeader(http.StatusNotFound)
		h.encode(w, ErrorResponse{Error: "Character not found."})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, c)
}

func (h *CharacterHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.DeleteCharacter(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete character", "id", id, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.encode(w, ErrorResponse{Error: "Failed to delete character."})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CharacterHandler) handleEquip(w http.ResponseWriter, r *http.Request, id string) {
	var request EquipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'itemId' and 'slot'."})
		return
	}

	updated, err := h.store.EquipItem(r.Context(), id, request.ItemID, request.Slot)
	if err != nil {
		h.logger.Warn("Equip failed", "id", id, "item", request.ItemID, "slot", request.Slot, "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.encode(w, ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, updated)
}

func (h *CharacterHandler) handleUnequip(w http.ResponseWriter, r *http.Request, id string) {
	var request UnequipRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'slot'."})
		return
	}

	updated, err := h.store.UnequipItem(r.Context(), id, request.Slot)
	if err != nil {
		h.logger.Warn("Unequip failed", "id", id, "slot", request.Slot, "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.encode(w, ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, updated)
}

func (h *CharacterHandler) handleAddItem(w http.ResponseWriter, r *http.Request, id string) {
	var item character.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil || item.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected an item with a 'name'."})
		return
	}

	updated, err := h.store.AddItemToInventory(r.Context(), id, &item)
	if err != nil {
		h.logger.Warn("Add item failed", "id", id, "item", item.Name, "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.encode(w, ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, updated)
}

func (h *CharacterHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, id, itemID string) {
	item, err := h.store.RemoveItemFromInventory(r.Context(), id, itemID)
	if err != nil {
		h.logger.Warn("Remove item failed", "id", id, "item", itemID, "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.encode(w, ErrorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusOK)
	h.encode(w, item)
}

func (h *CharacterHandler) writeEngineError(w http.ResponseWriter, err error, fallback string) {
	status := http.StatusInternalServerError
	message := fallback
	if errors.Is(err, services.ErrNoAPIKey) {
		status = http.StatusServiceUnavailable
		message = "API key is not configured."
	}
	h.logger.Error("Character operation failed", "error", err)
	w.WriteHeader(status)
	h.encode(w, ErrorResponse{Error: message})
}

func (h *CharacterHandler) encode(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
