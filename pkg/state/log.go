package state

import (
	"time"

	"github.com/jwebster45206/realm-engine/pkg/action"
)

// Game log entry types.
const (
	LogTypeAction            = "game_action"
	LogTypeCharacterCreation = "character_creation"
	LogTypeError             = "error"
)

// GameLogEntry records one player interaction. Entries are
// append-only and auto-numbered by storage; they are never mutated
// after creation.
type GameLogEntry struct {
	ID          int64                `json:"id"`
	Type        string               `json:"type"`
	PlayerInput string               `json:"playerInput"`
	Response    *action.ActionResult `json:"response,omitempty"`
	Message     string               `json:"message,omitempty"` // for error entries with no response
	Timestamp   time.Time            `json:"timestamp"`
}
