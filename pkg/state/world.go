package state

import "time"

// CurrentSceneKey is the world-state key holding the active scene ID.
const CurrentSceneKey = "currentSceneId"

// WorldStateEntry is one key/value fact about the game world, as
// reported by the narrative engine. The value is arbitrary JSON.
type WorldStateEntry struct {
	Key       string    `json:"key"`
	Value     any       `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}
