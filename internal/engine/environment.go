package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/pkg/action"
	"github.com/jwebster45206/realm-engine/pkg/prompts"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// EnvironmentInfo answers an environment query from the scene cache
// when possible. On a miss it asks the model for a description,
// illustrates it, and caches both under the current scene ID.
func (p *ActionProcessor) EnvironmentInfo(ctx context.Context) (*EnvironmentInfo, error) {
	sceneID, err := p.currentSceneID(ctx)
	if err != nil {
		return nil, err
	}

	cached, err := p.store.GetSceneCache(ctx, sceneID)
	if err != nil {
		p.logger.Warn("Scene cache lookup failed", "scene_id", sceneID, "error", err)
	}
	if cached != nil {
		return &EnvironmentInfo{
			SceneID:     sceneID,
			Description: cached.Description,
			ImageURL:    cached.ImageURL,
			Cached:      true,
		}, nil
	}

	player, err := p.store.GetPlayerCharacter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load player character: %w", err)
	}
	if player == nil {
		return nil, ErrNoPlayerCharacter
	}

	rawText, err := p.llm.Generate(ctx, prompts.SpecialCommandPrompt("env", player.Name))
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	result := action.Parse(rawText)

	info := &EnvironmentInfo{
		SceneID:     sceneID,
		Description: result.Plot,
		Suggestions: result.SuggestedActions,
	}

	// Image failure degrades to text-only, never fails the query
	if p.images != nil && result.Plot != "" {
		img, err := p.images.GenerateImage(ctx, result.Plot)
		if err != nil {
			p.logger.Warn("Environment image generation failed", "error", err)
		} else {
			info.ImageURL = img.URL
		}
	}

	if err := p.store.SaveSceneCache(ctx, &state.SceneCacheEntry{
		SceneID:     sceneID,
		Description: info.Description,
		ImageURL:    info.ImageURL,
		Timestamp:   time.Now(),
	}); err != nil {
		p.logger.Error("Failed to cache scene", "scene_id", sceneID, "error", err)
	}

	return info, nil
}

// SpecialCommand handles the out-of-band commands (status, chars,
// env) that inspect state without advancing the story.
func (p *ActionProcessor) SpecialCommand(ctx context.Context, command string) (*action.ActionResult, error) {
	player, err := p.store.GetPlayerCharacter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load player character: %w", err)
	}
	if player == nil {
		return nil, ErrNoPlayerCharacter
	}

	rawText, err := p.llm.Generate(ctx, prompts.SpecialCommandPrompt(command, player.Name))
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	return action.Parse(rawText), nil
}

// currentSceneID reads the active scene ID from world state, minting
// and persisting one when the world has none yet.
func (p *ActionProcessor) currentSceneID(ctx context.Context) (string, error) {
	value, err := p.store.GetWorldState(ctx, state.CurrentSceneKey)
	if err != nil {
		return "", fmt.Errorf("failed to load scene id: %w", err)
	}
	if id, ok := value.(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	if err := p.store.SaveWorldState(ctx, state.CurrentSceneKey, id); err != nil {
		return "", fmt.Errorf("failed to save scene id: %w", err)
	}
	return id, nil
}
