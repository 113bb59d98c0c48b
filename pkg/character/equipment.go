package character

import (
	"fmt"

	"github.com/google/uuid"
)

// Equipment operations mutate the character in memory only. Callers
// persist the character after a successful operation, so a failed
// precondition never leaves storage and memory diverged.

// Equip moves the identified inventory item into the requested slot.
// Any item already in the slot is displaced back into inventory. The
// move is zero-sum against inventory capacity: the equipped item frees
// the space the displaced one takes, so no size check is needed.
func (c *Character) Equip(itemID string, slot string) error {
	if !IsValidSlot(slot) {
		return fmt.Errorf("unknown equipment slot %q", slot)
	}

	idx := -1
	for i, item := range c.Inventory {
		if item != nil && item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("item %s not found in inventory", itemID)
	}

	item := c.Inventory[idx]
	if !item.Equipable {
		return fmt.Errorf("item %q is not equipable", item.Name)
	}
	if item.Slot != slot {
		return fmt.Errorf("item %q belongs in slot %q, not %q", item.Name, item.Slot, slot)
	}

	if displaced := c.Equipment[slot]; displaced != nil {
		c.Inventory = append(c.Inventory, displaced)
	}
	c.Equipment[slot] = item
	c.Inventory = append(c.Inventory[:idx], c.Inventory[idx+1:]...)
	return nil
}

// Unequip moves the item in slot back into inventory. Unlike Equip,
// this grows the inventory by one, so capacity is checked.
func (c *Character) Unequip(slot string) error {
	if !IsValidSlot(slot) {
		return fmt.Errorf("unknown equipment slot %q", slot)
	}
	item := c.Equipment[slot]
	if item == nil {
		return fmt.Errorf("no item equipped in slot %q", slot)
	}
	if len(c.Inventory) >= c.MaxInventorySize {
		return fmt.Errorf("inventory is full (%d/%d)", len(c.Inventory), c.MaxInventorySize)
	}

	c.Inventory = append(c.Inventory, item)
	c.Equipment[slot] = nil
	return nil
}

// AddItem appends an item to the inventory, assigning an ID if absent.
func (c *Character) AddItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if len(c.Inventory) >= c.MaxInventorySize {
		return fmt.Errorf("inventory is full (%d/%d)", len(c.Inventory), c.MaxInventorySize)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	c.Inventory = append(c.Inventory, item)
	return nil
}

// RemoveItem removes the identified item from inventory and returns it.
func (c *Character) RemoveItem(itemID string) (*Item, error) {
	for i, item := range c.Inventory {
		if item != nil && item.ID == itemID {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return item, nil
		}
	}
	return nil, fmt.Errorf("item %s not found in inventory", itemID)
}
