package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/realm-engine/internal/engine"
	"github.com/jwebster45206/realm-engine/internal/services"
)

const environmentTimeout = 180 * time.Second

// EnvironmentHandler serves environment queries. Cached scenes come
// back immediately; a cache miss costs a model call and possibly an
// image generation.
type EnvironmentHandler struct {
	processor *engine.ActionProcessor
	logger    *slog.Logger
}

func NewEnvironmentHandler(processor *engine.ActionProcessor, logger *slog.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *EnvironmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Only GET is supported."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	ctx, cancel := contextWithTimeout(r, environmentTimeout)
	defer cancel()

	info, err := h.processor.EnvironmentInfo(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to load environment info."
		switch {
		case errors.Is(err, engine.ErrNoPlayerCharacter):
			status = http.StatusConflict
			message = "No player character exists. Create a character first."
		case errors.Is(err, services.ErrNoAPIKey):
			status = http.StatusServiceUnavailable
			message = "API key is not configured."
		}
		h.logger.Error("Environment query failed", "error", err)
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	h.logger.Debug("Environment served", "scene_id", info.SceneID, "cached", info.Cached)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		h.logger.Error("Failed to encode environment response", "error", err)
	}
}
