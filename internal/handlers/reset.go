package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/realm-engine/internal/engine"
)

// ResetHandler wipes the game world. Settings survive.
type ResetHandler struct {
	processor *engine.ActionProcessor
	logger    *slog.Logger
}

func NewResetHandler(processor *engine.ActionProcessor, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Only POST is supported."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if err := h.processor.Reset(r.Context()); err != nil {
		h.logger.Error("Reset failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Failed to reset game."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	h.logger.Info("Game reset", "remote_addr", r.RemoteAddr)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "reset"}); err != nil {
		h.logger.Error("Failed to encode reset response", "error", err)
	}
}
