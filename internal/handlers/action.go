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
)

// actionTimeout bounds one full turn, most of which is the model call.
const actionTimeout = 180 * time.Second

type ActionRequest struct {
	Input string `json:"input"`
}

// ActionHandler handles player action requests. Inputs starting with
// "/" are special commands (status, chars, env) that inspect state
// without advancing the story.
type ActionHandler struct {
	processor *engine.ActionProcessor
	logger    *slog.Logger
}

func NewActionHandler(processor *engine.ActionProcessor, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{
		processor: processor,
		logger:    logger,
	}
}

func (h *ActionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := ErrorResponse{Error: "Method not allowed. Only POST is supported."}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	var request ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{Error: "Invalid request body. Expected JSON with 'input' field."}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	input := strings.TrimSpace(request.Input)
	if input == "" {
		w.WriteHeader(http.StatusBadRequest)
		response := ErrorResponse{Error: "Input cannot be empty."}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	h.logger.Info("Action requested", "input", input, "remote_addr", r.RemoteAddr)

	ctx, cancel := contextWithTimeout(r, actionTimeout)
	defer cancel()

	if strings.HasPrefix(input, "/") {
		command := strings.ToLower(strings.TrimPrefix(input, "/"))
		result, err := h.processor.SpecialCommand(ctx, command)
		if err != nil {
			h.writeProcessorError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(engine.ActionResponse{Result: result}); err != nil {
			h.logger.Error("Failed to encode action response", "error", err)
		}
		return
	}

	response, err := h.processor.ProcessAction(ctx, input)
	if err != nil {
		h.writeProcessorError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode action response", "error", err)
	}
}

// writeProcessorError maps engine errors to status codes.
func (h *ActionHandler) writeProcessorError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Failed to process action. Please try again."

	switch {
	case errors.Is(err, engine.ErrNoPlayerCharacter):
		status = http.StatusConflict
		message = "No player character exists. Create a character first."
	case errors.Is(err, services.ErrNoAPIKey):
		status = http.StatusServiceUnavailable
		message = "API key is not configured."
	}

	h.logger.Error("Action processing failed", "error", err)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
