package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jwebster45206/realm-engine/pkg/storage"
)

// GameLogHandler serves the recent game log, newest first.
type GameLogHandler struct {
	store  storage.Store
	logger *slog.Logger
}

func NewGameLogHandler(store storage.Store, logger *slog.Logger) *GameLogHandler {
	return &GameLogHandler{
		store:  store,
		logger: logger,
	}
}

func (h *GameLogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Only GET is supported."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			w.WriteHeader(http.StatusBadRequest)
			if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid limit parameter."}); err != nil {
				h.logger.Error("Failed to encode error response", "error", err)
			}
			return
		}
		limit = parsed
	}

	entries, err := h.store.GetGameLog(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to load game log", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Failed to load game log."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.logger.Error("Failed to encode game log response", "error", err)
	}
}
