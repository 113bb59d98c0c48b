package action

import "encoding/json"

// ActionResult is the structured record recovered from one LLM turn.
// The field set mirrors the JSON contract in the system prompt; the
// parser guarantees every field is present after normalization.
type ActionResult struct {
	CurrentCharacter string         `json:"currentCharacter"`
	TimeLocation     string         `json:"timeLocation"`
	Environment      string         `json:"environment"`
	Plot             string         `json:"plot"`
	Dialogue         string         `json:"dialogue"`
	CharacterStatus  string         `json:"characterStatus"`
	NumericChanges   map[string]any `json:"numericChanges"`
	SuggestedActions []string       `json:"suggestedActions"`
	ImagePrompt      string         `json:"imagePrompt"`
	GameState        GameStateDelta `json:"gameState"`
}

// GameStateDelta carries the state changes proposed alongside the
// narrative: a partial character sheet, newly granted items, equipment
// moves, and world-state facts. Unknown top-level keys are treated as
// world-state facts, matching the original wire contract where the
// delta and the world state share a namespace.
type GameStateDelta struct {
	Character        map[string]any   `json:"character,omitempty"`
	AddItems         []ItemGrant      `json:"addItems,omitempty"`
	EquipmentChanges EquipmentChanges `json:"equipmentChanges,omitempty"`
	WorldState       map[string]any   `json:"worldState,omitempty"`
}

// ItemGrant describes an item the narrative engine hands to the player.
type ItemGrant struct {
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Value       int      `json:"value,omitempty"`
	Description string   `json:"description,omitempty"`
	Equipable   bool     `json:"equipable,omitempty"`
	Slot        string   `json:"slot,omitempty"`
	Effects     []string `json:"effects,omitempty"`
}

// EquipmentChanges maps slots to item IDs to equip, and lists slots to
// clear.
type EquipmentChanges struct {
	Equip   map[string]string `json:"equip,omitempty"`
	Unequip []string          `json:"unequip,omitempty"`
}

// reservedDeltaKeys are gameState keys with dedicated handling; every
// other key is a world-state fact.
var reservedDeltaKeys = map[string]bool{
	"character":        true,
	"addItems":         true,
	"equipmentChanges": true,
	"worldState":       true,
}

// UnmarshalJSON decodes the known sub-structures and folds the
// remaining keys into WorldState.
func (d *GameStateDelta) UnmarshalJSON(data []byte) error {
	type alias struct {
		Character        map[string]any   `json:"character"`
		AddItems         []ItemGrant      `json:"addItems"`
		EquipmentChanges EquipmentChanges `json:"equipmentChanges"`
		WorldState       map[string]any   `json:"worldState"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Character = a.Character
	d.AddItems = a.AddItems
	d.EquipmentChanges = a.EquipmentChanges
	d.WorldState = a.WorldState
	for key, val := range raw {
		if reservedDeltaKeys[key] {
			continue
		}
		var v any
		if err := json.Unmarshal(val, &v); err != nil {
			continue
		}
		if d.WorldState == nil {
			d.WorldState = make(map[string]any)
		}
		d.WorldState[key] = v
	}
	return nil
}

// IsEmpty reports whether the delta carries no changes at all.
func (d *GameStateDelta) IsEmpty() bool {
	return d == nil || (len(d.Character) == 0 &&
		len(d.AddItems) == 0 &&
		len(d.EquipmentChanges.Equip) == 0 &&
		len(d.EquipmentChanges.Unequip) == 0 &&
		len(d.WorldState) == 0)
}
