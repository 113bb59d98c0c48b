// Package engine orchestrates one game turn: prompt construction, the
// model call, response parsing, numeric reconciliation, persistence,
// and scene-change detection.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/pkg/action"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/prompts"
	"github.com/jwebster45206/realm-engine/pkg/scene"
	"github.com/jwebster45206/realm-engine/pkg/state"
	"github.com/jwebster45206/realm-engine/pkg/stats"
	"github.com/jwebster45206/realm-engine/pkg/storage"
)

// imageTimeout bounds the background scene-image generation, which
// outlives the request that started it.
const imageTimeout = 3 * time.Minute

// ActionProcessor runs game turns against a store and the model
// services. It is safe for concurrent use; per-character write races
// resolve last-writer-wins, same as the store beneath it.
type ActionProcessor struct {
	store    storage.Store
	llm      services.TextGenerator
	images   services.ImageGenerator
	detector *scene.Detector
	logger   *slog.Logger
}

// ActionResponse is the outcome of one processed turn.
type ActionResponse struct {
	Result         *action.ActionResult `json:"result"`
	Character      *character.Character `json:"character"`
	Reconciliation stats.Result         `json:"reconciliation"`
	SceneChanged   bool                 `json:"sceneChanged"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// RandomCharacterConcept is the model's answer to a random character
// request: a name and a short description for the player to edit.
type RandomCharacterConcept struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EnvironmentInfo is the answer to an environment query.
type EnvironmentInfo struct {
	SceneID     string   `json:"sceneId"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Cached      bool     `json:"cached"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// NewActionProcessor wires a processor. images may be nil when image
// generation is not configured; scene images are then skipped.
func NewActionProcessor(store storage.Store, llm services.TextGenerator, images services.ImageGenerator, logger *slog.Logger) *ActionProcessor {
	return &ActionProcessor{
		store:    store,
		llm:      llm,
		images:   images,
		detector: scene.NewDetector(),
		logger:   logger,
	}
}

// ProcessAction runs one player action through the full pipeline and
// returns the narrative result plus everything that changed.
func (p *ActionProcessor) ProcessAction(ctx context.Context, input string) (*ActionResponse, error) {
	player, err := p.store.GetPlayerCharacter(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load player character: %w", err)
	}
	if player == nil {
		return nil, ErrNoPlayerCharacter
	}

	prompt, err := p.buildActionPrompt(ctx, player, input)
	if err != nil {
		return nil, err
	}

	rawText, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		p.logError(ctx, input, fmt.Sprintf("行动处理失败: %v", err))
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	result := action.Parse(rawText)
	response := &ActionResponse{Result: result, Character: player}

	p.applyGameState(ctx, player, result, response)
	p.applyNumericChanges(ctx, player, result, response)
	p.applyItemGrants(ctx, player, result, response)
	p.applyEquipmentChanges(ctx, player, result, response)
	p.applyWorldState(ctx, result, response)

	if err := p.store.AppendGameLog(ctx, &state.GameLogEntry{
		Type:        state.LogTypeAction,
		PlayerInput: input,
		Response:    result,
		Timestamp:   time.Now(),
	}); err != nil {
		p.logger.Error("Failed to append game log", "error", err)
	}

	response.SceneChanged = p.detector.Detect(result)
	if response.SceneChanged {
		p.advanceScene(ctx)
	}

	if result.ImagePrompt != "" {
		p.generateSceneImageAsync(result.ImagePrompt)
	}

	return response, nil
}

// buildActionPrompt gathers context from the store and assembles the
// prompt. History comes back newest first and is reversed so the
// window reads chronologically.
func (p *ActionProcessor) buildActionPrompt(ctx context.Context, player *character.Character, input string) (string, error) {
	worldState, err := p.store.GetAllWorldState(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load world state: %w", err)
	}
	npcs, err := p.store.GetCharactersByType(ctx, character.TypeNPC)
	if err != nil {
		return "", fmt.Errorf("failed to load npcs: %w", err)
	}
	history, err := p.store.GetGameLog(ctx, prompts.DefaultHistoryLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load game log: %w", err)
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	return prompts.New().
		WithPlayer(player).
		WithWorldState(worldState).
		WithOtherCharacters(npcs).
		WithHistory(history).
		WithPlayerInput(input).
		Build()
}

// applyGameState merges the partial character sheet from the delta
// into the player, then persists.
func (p *ActionProcessor) applyGameState(ctx context.Context, player *character.Character, result *action.ActionResult, response *ActionResponse) {
	if len(result.GameState.Character) == 0 {
		return
	}
	if err := mergeCharacter(player, result.GameState.Character); err != nil {
		p.logger.Error("Failed to merge character delta", "error", err)
		response.Warnings = append(response.Warnings, "角色状态更新失败")
		return
	}
	if err := p.store.SaveCharacter(ctx, player); err != nil {
		p.logger.Error("Failed to save character", "id", player.ID, "error", err)
		response.Warnings = append(response.Warnings, "角色保存失败")
	}
}

// applyNumericChanges reconciles the proposed deltas against the live
// sheet, persists the survivors, and surfaces ignored fields.
func (p *ActionProcessor) applyNumericChanges(ctx context.Context, player *character.Character, result *action.ActionResult, response *ActionResponse) {
	if len(result.NumericChanges) == 0 {
		return
	}
	response.Reconciliation = stats.Apply(player, result.NumericChanges)
	if len(response.Reconciliation.Updates) > 0 {
		if err := p.store.SaveCharacter(ctx, player); err != nil {
			p.logger.Error("Failed to save character stats", "id", player.ID, "error", err)
			response.Warnings = append(response.Warnings, "数值变化保存失败")
		}
	}
	for _, ignored := range response.Reconciliation.Ignored {
		p.logger.Warn("Ignored numeric change", "field", ignored.Field, "reason", ignored.Reason)
		response.Warnings = append(response.Warnings,
			fmt.Sprintf("忽略了字段 %s (%s)", ignored.Field, ignored.Reason))
	}
}

func (p *ActionProcessor) applyItemGrants(ctx context.Context, player *character.Character, result *action.ActionResult, response *ActionResponse) {
	for _, grant := range result.GameState.AddItems {
		item := character.NewItem(grant.Name, grant.Type, grant.Value)
		item.Description = grant.Description
		item.Equipable = grant.Equipable
		item.Slot = grant.Slot
		item.Effects = grant.Effects

		updated, err := p.store.AddItemToInventory(ctx, player.ID, item)
		if err != nil {
			p.logger.Warn("Failed to add item", "item", grant.Name, "error", err)
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("无法获得物品 %s", grant.Name))
			continue
		}
		*player = *updated
		response.Character = player
	}
}

func (p *ActionProcessor) applyEquipmentChanges(ctx context.Context, player *character.Character, result *action.ActionResult, response *ActionResponse) {
	changes := result.GameState.EquipmentChanges
	for slot, itemID := range changes.Equip {
		updated, err := p.store.EquipItem(ctx, player.ID, itemID, slot)
		if err != nil {
			p.logger.Warn("Failed to equip item", "slot", slot, "item", itemID, "error", err)
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("无法装备到 %s", slot))
			continue
		}
		*player = *updated
	}
	for _, slot := range changes.Unequip {
		updated, err := p.store.UnequipItem(ctx, player.ID, slot)
		if err != nil {
			p.logger.Warn("Failed to unequip slot", "slot", slot, "error", err)
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("无法卸下 %s", slot))
			continue
		}
		*player = *updated
	}
	response.Character = player
}

func (p *ActionProcessor) applyWorldState(ctx context.Context, result *action.ActionResult, response *ActionResponse) {
	for key, value := range result.GameState.WorldState {
		if err := p.store.SaveWorldState(ctx, key, value); err != nil {
			p.logger.Error("Failed to save world state", "key", key, "error", err)
			response.Warnings = append(response.Warnings,
				fmt.Sprintf("世界状态 %s 保存失败", key))
		}
	}
}

// advanceScene assigns a fresh scene ID and drops the scene cache.
// Failures here never fail the turn.
func (p *ActionProcessor) advanceScene(ctx context.Context) {
	newSceneID := uuid.NewString()
	if err := p.store.SaveWorldState(ctx, state.CurrentSceneKey, newSceneID); err != nil {
		p.logger.Error("Failed to update scene id", "error", err)
		return
	}
	if err := p.store.ClearSceneCache(ctx, ""); err != nil {
		p.logger.Error("Failed to clear scene cache", "error", err)
		return
	}
	p.logger.Debug("Scene changed", "scene_id", newSceneID)
}

// generateSceneImageAsync warms the image cache in the background so
// the next environment query finds the illustration ready. The turn
// never waits on it.
func (p *ActionProcessor) generateSceneImageAsync(prompt string) {
	if p.images == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), imageTimeout)
		defer cancel()
		if _, err := p.images.GenerateImage(ctx, prompt); err != nil {
			p.logger.Warn("Background image generation failed", "error", err)
		}
	}()
}

// logError records a failed turn so the game log never goes silent.
func (p *ActionProcessor) logError(ctx context.Context, input string, message string) {
	if err := p.store.AppendGameLog(ctx, &state.GameLogEntry{
		Type:        state.LogTypeError,
		PlayerInput: input,
		Message:     message,
		Timestamp:   time.Now(),
	}); err != nil {
		p.logger.Error("Failed to append error log", "error", err)
	}
}

// mergeCharacter overlays a partial sheet onto the character through
// its JSON form, so field names match the wire contract.
func mergeCharacter(c *character.Character, delta map[string]any) error {
	data, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to marshal character delta: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to apply character delta: %w", err)
	}
	return nil
}
