package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSword() *Item {
	sword := NewItem("铁剑", "weapon", 50)
	sword.Equipable = true
	sword.Slot = SlotWeapon
	return sword
}

func TestEquipAndUnequip(t *testing.T) {
	c := New("测试者", TypePlayer)
	sword := newSword()
	require.NoError(t, c.AddItem(sword))

	require.NoError(t, c.Equip(sword.ID, SlotWeapon))
	assert.Equal(t, sword, c.Equipment[SlotWeapon])
	assert.Empty(t, c.Inventory)

	require.NoError(t, c.Unequip(SlotWeapon))
	assert.Nil(t, c.Equipment[SlotWeapon])
	require.Len(t, c.Inventory, 1)
	assert.Equal(t, sword.ID, c.Inventory[0].ID)
}

func TestEquip_DisplacesExistingItem(t *testing.T) {
	c := New("测试者", TypePlayer)
	oldSword := newSword()
	newBlade := NewItem("秘银剑", "weapon", 300)
	newBlade.Equipable = true
	newBlade.Slot = SlotWeapon

	require.NoError(t, c.AddItem(oldSword))
	require.NoError(t, c.AddItem(newBlade))
	require.NoError(t, c.Equip(oldSword.ID, SlotWeapon))

	require.NoError(t, c.Equip(newBlade.ID, SlotWeapon))

	assert.Equal(t, newBlade.ID, c.Equipment[SlotWeapon].ID)
	require.Len(t, c.Inventory, 1)
	assert.Equal(t, oldSword.ID, c.Inventory[0].ID)
}

func TestEquip_FullInventoryStillWorks(t *testing.T) {
	c := New("测试者", TypePlayer)
	c.MaxInventorySize = 1
	sword := newSword()
	require.NoError(t, c.AddItem(sword))

	shield := NewItem("木盾", "armor", 20)
	shield.Equipable = true
	shield.Slot = SlotShield
	c.Equipment[SlotShield] = shield

	// Equipping the sword frees the slot the displaced shield would
	// need, so a full inventory is not an error.
	require.NoError(t, c.Equip(sword.ID, SlotWeapon))
	assert.Len(t, c.Inventory, 0)
}

func TestEquip_InvalidSlot(t *testing.T) {
	c := New("测试者", TypePlayer)
	sword := newSword()
	require.NoError(t, c.AddItem(sword))

	err := c.Equip(sword.ID, "backpack")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown equipment slot")
}

func TestEquip_ItemNotInInventory(t *testing.T) {
	c := New("测试者", TypePlayer)
	err := c.Equip("missing-id", SlotWeapon)
	assert.Error(t, err)
}

func TestEquip_NotEquipable(t *testing.T) {
	c := New("测试者", TypePlayer)
	herb := NewItem("草药", "consumable", 5)
	require.NoError(t, c.AddItem(herb))

	err := c.Equip(herb.ID, SlotWeapon)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not equipable")
}

func TestEquip_WrongSlot(t *testing.T) {
	c := New("测试者", TypePlayer)
	sword := newSword()
	require.NoError(t, c.AddItem(sword))

	err := c.Equip(sword.ID, SlotHelmet)
	assert.Error(t, err)
}

func TestUnequip_EmptySlot(t *testing.T) {
	c := New("测试者", TypePlayer)
	err := c.Unequip(SlotArmor)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no item equipped")
}

func TestUnequip_FullInventory(t *testing.T) {
	c := New("测试者", TypePlayer)
	c.MaxInventorySize = 1
	require.NoError(t, c.AddItem(NewItem("火把", "material", 2)))

	sword := newSword()
	c.Equipment[SlotWeapon] = sword

	err := c.Unequip(SlotWeapon)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "inventory is full")
	assert.Equal(t, sword, c.Equipment[SlotWeapon])
}

func TestAddItem(t *testing.T) {
	c := New("测试者", TypePlayer)

	item := &Item{Name: "面包", Type: "consumable"}
	require.NoError(t, c.AddItem(item))

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 1, item.Quantity)
	assert.Len(t, c.Inventory, 1)
}

func TestAddItem_Nil(t *testing.T) {
	c := New("测试者", TypePlayer)
	assert.Error(t, c.AddItem(nil))
}

func TestAddItem_FullInventory(t *testing.T) {
	c := New("测试者", TypePlayer)
	c.MaxInventorySize = 1
	require.NoError(t, c.AddItem(NewItem("火把", "material", 2)))

	err := c.AddItem(NewItem("绳索", "material", 3))
	assert.Error(t, err)
}

func TestRemoveItem(t *testing.T) {
	c := New("测试者", TypePlayer)
	item := NewItem("草药", "consumable", 5)
	require.NoError(t, c.AddItem(item))

	removed, err := c.RemoveItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, removed.ID)
	assert.Empty(t, c.Inventory)

	_, err = c.RemoveItem(item.ID)
	assert.Error(t, err)
}

func TestNew_DefaultSheet(t *testing.T) {
	c := New("新人", "")

	assert.Equal(t, TypePlayer, c.Type)
	assert.Equal(t, 100, c.HP)
	assert.Equal(t, 100, c.MaxHP)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, DefaultMaxInventorySize, c.MaxInventorySize)
	assert.NotEmpty(t, c.ID)

	// Every slot exists up front, empty.
	assert.Len(t, c.Equipment, len(EquipmentSlots))
	for _, slot := range EquipmentSlots {
		assert.Nil(t, c.Equipment[slot])
	}
}
