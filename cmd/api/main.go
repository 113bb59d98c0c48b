package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/realm-engine/internal/config"
	"github.com/jwebster45206/realm-engine/internal/engine"
	"github.com/jwebster45206/realm-engine/internal/handlers"
	"github.com/jwebster45206/realm-engine/internal/logger"
	"github.com/jwebster45206/realm-engine/internal/middleware"
	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Realm Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment)

	store := storage.NewRedisStore(cfg.RedisURL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	// API key may arrive from env or from the persisted settings
	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		stored, err := store.GetSetting(storageCtx, handlers.APIKeySetting)
		if err != nil {
			log.Warn("Failed to read stored API key", "error", err)
		} else {
			apiKey = stored
		}
	}
	if apiKey == "" {
		log.Warn("No Gemini API key configured; model requests will fail until one is set")
	}

	textService := services.NewGeminiService(apiKey, cfg.GeminiModel, log)
	imageService := services.NewGeminiImageService(apiKey, cfg.GeminiImageModel, log)

	processor := engine.NewActionProcessor(store, textService, imageService, log)

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/action", handlers.NewActionHandler(processor, log))

	characterHandler := handlers.NewCharacterHandler(store, processor, log)
	mux.Handle("/v1/characters", characterHandler)
	mux.Handle("/v1/characters/", characterHandler)

	mux.Handle("/v1/environment", handlers.NewEnvironmentHandler(processor, log))
	mux.Handle("/v1/gamelog", handlers.NewGameLogHandler(store, log))
	mux.Handle("/v1/worldstate", handlers.NewWorldStateHandler(store, log))
	mux.Handle("/v1/reset", handlers.NewResetHandler(processor, log))

	settingsHandler := handlers.NewSettingsHandler(store, log, func(key string) {
		textService.SetAPIKey(key)
		imageService.SetAPIKey(key)
	})
	mux.Handle("/v1/settings", settingsHandler)
	mux.Handle("/v1/settings/", settingsHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
