package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jwebster45206/realm-engine/pkg/action"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/prompts"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// ErrNoPlayerCharacter means no player character exists yet; the
// client should run character creation first.
var ErrNoPlayerCharacter = errors.New("no player character exists")

// CharacterDraft is the player-supplied seed for character creation.
type CharacterDraft struct {
	Name        string `json:"name"`
	Gender      string `json:"gender,omitempty"`
	Age         int    `json:"age,omitempty"`
	Profession  string `json:"profession,omitempty"`
	Race        string `json:"race,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateCharacter builds a full player character from the draft. The
// model fleshes out the sheet and narrates an opening scene; its
// character attributes are merged over the default sheet, so a sparse
// or malformed response still yields a playable character.
func (p *ActionProcessor) CreateCharacter(ctx context.Context, draft *CharacterDraft) (*ActionResponse, error) {
	if draft == nil || draft.Name == "" {
		return nil, fmt.Errorf("character name is required")
	}

	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character draft: %w", err)
	}

	rawText, err := p.llm.Generate(ctx, prompts.CreateCharacterPrompt(string(draftJSON)))
	if err != nil {
		p.logError(ctx, draft.Name, fmt.Sprintf("角色创建失败: %v", err))
		return nil, fmt.Errorf("llm request failed: %w", err)
	}
	result := action.Parse(rawText)

	player := character.New(draft.Name, character.TypePlayer)
	player.Gender = draft.Gender
	player.Age = draft.Age
	player.Profession = draft.Profession
	player.Race = draft.Race
	player.Appearance = draft.Description

	if len(result.GameState.Character) > 0 {
		if err := mergeCharacter(player, result.GameState.Character); err != nil {
			p.logger.Warn("Failed to merge generated attributes", "error", err)
		}
		// The model must not override identity fields
		player.Name = draft.Name
		player.Type = character.TypePlayer
	}

	if err := p.store.SaveCharacter(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to save character: %w", err)
	}

	if err := p.store.AppendGameLog(ctx, &state.GameLogEntry{
		Type:        state.LogTypeCharacterCreation,
		PlayerInput: draft.Name,
		Response:    result,
		Timestamp:   time.Now(),
	}); err != nil {
		p.logger.Error("Failed to append game log", "error", err)
	}

	if result.ImagePrompt != "" {
		p.generateSceneImageAsync(result.ImagePrompt)
	}

	return &ActionResponse{Result: result, Character: player}, nil
}

// RandomCharacter asks the model for a name and short description the
// player can edit before creation.
func (p *ActionProcessor) RandomCharacter(ctx context.Context) (*RandomCharacterConcept, error) {
	rawText, err := p.llm.Generate(ctx, prompts.RandomCharacterPrompt)
	if err != nil {
		return nil, fmt.Errorf("llm request failed: %w", err)
	}

	jsonText, ok := action.ExtractJSON(rawText)
	if !ok {
		return nil, fmt.Errorf("response contained no character data")
	}
	var concept RandomCharacterConcept
	if err := json.Unmarshal([]byte(jsonText), &concept); err != nil {
		return nil, fmt.Errorf("failed to parse character data: %w", err)
	}
	if concept.Name == "" {
		return nil, fmt.Errorf("response contained no character name")
	}
	return &concept, nil
}

// Reset wipes the game world. Settings survive.
func (p *ActionProcessor) Reset(ctx context.Context) error {
	if err := p.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}
	p.logger.Info("Game reset")
	return nil
}
