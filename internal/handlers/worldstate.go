package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/realm-engine/pkg/storage"
)

// WorldStateHandler exposes the world-state key/value facts.
type WorldStateHandler struct {
	store  storage.Store
	logger *slog.Logger
}

func NewWorldStateHandler(store storage.Store, logger *slog.Logger) *WorldStateHandler {
	return &WorldStateHandler{
		store:  store,
		logger: logger,
	}
}

func (h *WorldStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Only GET is supported."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if key := r.URL.Query().Get("key"); key != "" {
		value, err := h.store.GetWorldState(r.Context(), key)
		if err != nil {
			h.logger.Error("Failed to load world state", "key", key, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Failed to load world state."}); err != nil {
				h.logger.Error("Failed to encode error response", "error", err)
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(map[string]any{key: value}); err != nil {
			h.logger.Error("Failed to encode world state response", "error", err)
		}
		return
	}

	all, err := h.store.GetAllWorldState(r.Context())
	if err != nil {
		h.logger.Error("Failed to load world state", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Failed to load world state."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(all); err != nil {
		h.logger.Error("Failed to encode world state response", "error", err)
	}
}
