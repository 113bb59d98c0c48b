package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/realm-engine/pkg/storage"
)

// APIKeySetting is the settings key holding the model credential.
const APIKeySetting = "apiKey"

type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingsHandler persists client settings. When the API key setting
// changes, the onAPIKey hook pushes it into the live model services.
//
// Routes:
//
//	PUT /v1/settings        - save a key/value pair
//	GET /v1/settings/{key}  - read a value
type SettingsHandler struct {
	store    storage.Store
	logger   *slog.Logger
	onAPIKey func(string)
}

func NewSettingsHandler(store storage.Store, logger *slog.Logger, onAPIKey func(string)) *SettingsHandler {
	return &SettingsHandler{
		store:    store,
		logger:   logger,
		onAPIKey: onAPIKey,
	}
}

func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodPut, http.MethodPost:
		h.handleSave(w, r)
	case http.MethodGet:
		key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/settings"), "/")
		if key == "" {
			w.WriteHeader(http.StatusBadRequest)
			h.encode(w, ErrorResponse{Error: "Setting key is required."})
			return
		}
		h.handleRead(w, r, key)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		h.encode(w, ErrorResponse{Error: "Method not allowed."})
	}
}

func (h *SettingsHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var request SettingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Key == "" {
		w.WriteHeader(http.StatusBadRequest)
		h.encode(w, ErrorResponse{Error: "Invalid request body. Expected JSON with 'key' and 'value'."})
		return
	}

	if err := h.store.SaveSetting(r.Context(), request.Key, request.Value); err != nil {
		h.logger.Error("Failed to save setting", "key", request.Key, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.encode(w, ErrorResponse{Error: "Failed to save setting."})
		return
	}

	if request.Key == APIKeySetting && h.onAPIKey != nil {
		h.onAPIKey(request.Value)
		h.logger.Info("API key updated")
	}

	w.WriteHeader(http.StatusOK)
	h.encode(w, map[string]string{"status": "saved"})
}

func (h *SettingsHandler) handleRead(w http.ResponseWriter, r *http.Request, key string) {
	value, err := h.store.GetSetting(r.Context(), key)
	if err != nil {
		h.logger.Error("Failed to load setting", "key", key, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		h.encode(w, ErrorResponse{Error: "Failed to load setting."})
		return
	}

	// The credential itself never leaves the server
	if key == APIKeySetting && value != "" {
		value = "configured"
	}

	w.WriteHeader(http.StatusOK)
	h.encode(w, map[string]string{"key": key, "value": value})
}

func (h *SettingsHandler) encode(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
