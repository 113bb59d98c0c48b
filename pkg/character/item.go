package character

import (
	"time"

	"github.com/google/uuid"
)

// Item is an owned object. It belongs to exactly one character, and to
// exactly one of that character's equipment slots or its inventory.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"` // weapon, armor, consumable, material, ...
	Value       int       `json:"value"`
	Description string    `json:"description,omitempty"`
	Quantity    int       `json:"quantity"`
	Equipable   bool      `json:"equipable"`
	Slot        string    `json:"slot,omitempty"` // empty when not equipable
	Effects     []string  `json:"effects,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewItem creates an item with defaults filled in.
func NewItem(name string, itemType string, value int) *Item {
	return &Item{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      itemType,
		Value:     value,
		Quantity:  1,
		CreatedAt: time.Now(),
	}
}
