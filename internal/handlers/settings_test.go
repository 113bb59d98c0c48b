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

	"github.com/jwebster45206/realm-engine/pkg/storage"
)

func TestSettingsHandler_SaveAndRead(t *testing.T) {
	store := storage.NewMockStore()
	handler := NewSettingsHandler(store, testLogger(), nil)

	req := httptest.NewRequest(http.MethodPut, "/v1/settings",
		strings.NewReader(`{"key": "language", "value": "zh-CN"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/settings/language", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "zh-CN", response["value"])
}

func TestSettingsHandler_APIKeyHookAndMasking(t *testing.T) {
	store := storage.NewMockStore()
	var received string
	handler := NewSettingsHandler(store, testLogger(), func(key string) {
		received = key
	})

	req := httptest.NewRequest(http.MethodPut, "/v1/settings",
		strings.NewReader(`{"key": "apiKey", "value": "secret-key"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "secret-key", received)

	// stored, but never echoed back
	stored, err := store.GetSetting(context.Background(), "apiKey")
	require.NoError(t, err)
	assert.Equal(t, "secret-key", stored)

	req = httptest.NewRequest(http.MethodGet, "/v1/settings/apiKey", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "configured", response["value"])
}

func TestSettingsHandler_MissingKey(t *testing.T) {
	handler := NewSettingsHandler(storage.NewMockStore(), testLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
