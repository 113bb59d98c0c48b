package character

import (
	"time"

	"github.com/google/uuid"
)

// Character types
const (
	TypePlayer = "player"
	TypeNPC    = "npc"
	TypeEnemy  = "enemy"
)

// Equipment slot names. Every character carries exactly this slot set.
const (
	SlotWeapon     = "weapon"
	SlotArmor      = "armor"
	SlotHelmet     = "helmet"
	SlotBoots      = "boots"
	SlotGloves     = "gloves"
	SlotAccessory1 = "accessory1"
	SlotAccessory2 = "accessory2"
	SlotShield     = "shield"
)

// EquipmentSlots lists all valid slot names in display order.
var EquipmentSlots = []string{
	SlotWeapon, SlotArmor, SlotHelmet, SlotBoots,
	SlotGloves, SlotAccessory1, SlotAccessory2, SlotShield,
}

// DefaultMaxInventorySize is the inventory capacity for new characters.
const DefaultMaxInventorySize = 50

// Character is one participant in the game world: the player, an NPC,
// or an enemy. Numeric attributes are mutated by the reconciliation
// engine; equipment and inventory by storage operations.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // player, npc, enemy

	// Descriptive fields
	Gender        string `json:"gender,omitempty"`
	Age           int    `json:"age,omitempty"`
	Height        string `json:"height,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Appearance    string `json:"appearance,omitempty"`
	Personality   string `json:"personality,omitempty"`
	Hobbies       string `json:"hobbies,omitempty"`
	Profession    string `json:"profession,omitempty"`
	Race          string `json:"race,omitempty"`
	Organization  string `json:"organization,omitempty"`
	Country       string `json:"country,omitempty"`
	Relationships string `json:"relationships,omitempty"`

	// Location and goals
	CurrentLocation string `json:"currentLocation,omitempty"`
	CurrentTarget   string `json:"currentTarget,omitempty"`
	ShortTermGoal   string `json:"shortTermGoal,omitempty"`
	MediumTermGoal  string `json:"mediumTermGoal,omitempty"`
	LongTermGoal    string `json:"longTermGoal,omitempty"`

	Achievements []string `json:"achievements,omitempty"`
	Honors       []string `json:"honors,omitempty"`

	// Numeric attributes
	HP           int `json:"hp"`
	MaxHP        int `json:"maxHp"`
	MP           int `json:"mp"`
	MaxMP        int `json:"maxMp"`
	Stamina      int `json:"stamina"`
	MaxStamina   int `json:"maxStamina"`
	Attack       int `json:"attack"`
	Defense      int `json:"defense"`
	MagicAttack  int `json:"magicAttack"`
	MagicDefense int `json:"magicDefense"`
	Luck         int `json:"luck"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
	Constitution int `json:"constitution"`
	Strength     int `json:"strength"`
	Money        int `json:"money"`
	Level        int `json:"level"`
	Experience   int `json:"experience"`

	// Living-condition attributes
	Hunger  int `json:"hunger"`
	Thirst  int `json:"thirst"`
	Fatigue int `json:"fatigue"`
	Morale  int `json:"morale"`

	// Equipment maps slot name to the equipped item, nil when empty.
	// An item lives in exactly one of a slot or the inventory.
	Equipment map[string]*Item `json:"equipment"`

	Inventory        []*Item `json:"inventory"`
	MaxInventorySize int     `json:"maxInventorySize"`

	Skills  []Skill  `json:"skills,omitempty"`
	Buffs   []string `json:"buffs,omitempty"`
	Debuffs []string `json:"debuffs,omitempty"`

	PortraitURL      string `json:"portraitUrl,omitempty"`
	FullBodyImageURL string `json:"fullBodyImageUrl,omitempty"`

	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Skill is a learned ability referenced by prompt construction.
type Skill struct {
	Name        string `json:"name"`
	Level       int    `json:"level,omitempty"`
	Description string `json:"description,omitempty"`
}

// New creates a character with the default attribute sheet.
func New(name string, charType string) *Character {
	if charType == "" {
		charType = TypePlayer
	}
	now := time.Now()
	c := &Character{
		ID:   uuid.NewString(),
		Name: name,
		Type: charType,

		HP:           100,
		MaxHP:        100,
		MP:           50,
		MaxMP:        50,
		Stamina:      100,
		MaxStamina:   100,
		Attack:       10,
		Defense:      10,
		MagicAttack:  10,
		MagicDefense: 10,
		Luck:         10,
		Dexterity:    10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
		Constitution: 10,
		Strength:     10,
		Money:        100,
		Level:        1,
		Experience:   0,

		Hunger:  100,
		Thirst:  100,
		Fatigue: 0,
		Morale:  100,

		Equipment:        make(map[string]*Item, len(EquipmentSlots)),
		Inventory:        make([]*Item, 0),
		MaxInventorySize: DefaultMaxInventorySize,

		CreatedAt:   now,
		LastUpdated: now,
	}
	for _, slot := range EquipmentSlots {
		c.Equipment[slot] = nil
	}
	return c
}

// IsValidSlot reports whether name is a known equipment slot.
func IsValidSlot(name string) bool {
	for _, slot := range EquipmentSlots {
		if slot == name {
			return true
		}
	}
	return false
}
