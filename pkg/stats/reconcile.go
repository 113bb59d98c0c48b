// Package stats validates and applies the numeric deltas proposed by
// the narrative engine against a character's live attribute sheet.
package stats

import (
	"math"
	"regexp"
	"strconv"

	"github.com/jwebster45206/realm-engine/pkg/character"
)

// Reasons a proposed delta can be ignored.
const (
	ReasonMalformed  = "malformed value"
	ReasonUnknown    = "unknown field"
	ReasonNonNumeric = "non-numeric field"
)

// IgnoredField records one rejected delta and why it was rejected.
type IgnoredField struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Change is the before/after detail for one applied delta.
type Change struct {
	Delta int `json:"delta"`
	From  int `json:"from"`
	To    int `json:"to"`
}

// Result reports what Apply did: the new values to persist, the
// deltas it refused, and per-field detail for display.
type Result struct {
	Updates map[string]int    `json:"updates"`
	Ignored []IgnoredField    `json:"ignored,omitempty"`
	Detail  map[string]Change `json:"detail,omitempty"`
}

// clampRule bounds an attribute after a delta is applied. max returns
// the upper bound for the given character; maxUnbounded means none.
type clampRule struct {
	min int
	max func(c *character.Character) int
}

const maxUnbounded = math.MaxInt

// attribute describes one mutable numeric field: how to read it from
// and write it to the character, and its clamp rule. This table is the
// single source of truth for which fields the narrative engine may
// touch.
type attribute struct {
	get   func(c *character.Character) int
	set   func(c *character.Character, v int)
	clamp clampRule
}

func unclamped() clampRule {
	return clampRule{min: math.MinInt, max: func(*character.Character) int { return maxUnbounded }}
}

func nonNegative() clampRule {
	return clampRule{min: 0, max: func(*character.Character) int { return maxUnbounded }}
}

func percent() clampRule {
	return clampRule{min: 0, max: func(*character.Character) int { return 100 }}
}

var attributes = map[string]attribute{
	"hp": {
		get:   func(c *character.Character) int { return c.HP },
		set:   func(c *character.Character, v int) { c.HP = v },
		clamp: clampRule{min: 0, max: func(c *character.Character) int { return c.MaxHP }},
	},
	"maxHp": {
		get:   func(c *character.Character) int { return c.MaxHP },
		set:   func(c *character.Character, v int) { c.MaxHP = v },
		clamp: unclamped(),
	},
	"mp": {
		get:   func(c *character.Character) int { return c.MP },
		set:   func(c *character.Character, v int) { c.MP = v },
		clamp: clampRule{min: 0, max: func(c *character.Character) int { return c.MaxMP }},
	},
	"maxMp": {
		get:   func(c *character.Character) int { return c.MaxMP },
		set:   func(c *character.Character, v int) { c.MaxMP = v },
		clamp: unclamped(),
	},
	"stamina": {
		get:   func(c *character.Character) int { return c.Stamina },
		set:   func(c *character.Character, v int) { c.Stamina = v },
		clamp: clampRule{min: 0, max: func(c *character.Character) int { return c.MaxStamina }},
	},
	"maxStamina": {
		get:   func(c *character.Character) int { return c.MaxStamina },
		set:   func(c *character.Character, v int) { c.MaxStamina = v },
		clamp: unclamped(),
	},
	"attack": {
		get:   func(c *character.Character) int { return c.Attack },
		set:   func(c *character.Character, v int) { c.Attack = v },
		clamp: unclamped(),
	},
	"defense": {
		get:   func(c *character.Character) int { return c.Defense },
		set:   func(c *character.Character, v int) { c.Defense = v },
		clamp: unclamped(),
	},
	"magicAttack": {
		get:   func(c *character.Character) int { return c.MagicAttack },
		set:   func(c *character.Character, v int) { c.MagicAttack = v },
		clamp: unclamped(),
	},
	"magicDefense": {
		get:   func(c *character.Character) int { return c.MagicDefense },
		set:   func(c *character.Character, v int) { c.MagicDefense = v },
		clamp: unclamped(),
	},
	"luck": {
		get:   func(c *character.Character) int { return c.Luck },
		set:   func(c *character.Character, v int) { c.Luck = v },
		clamp: unclamped(),
	},
	"dexterity": {
		get:   func(c *character.Character) int { return c.Dexterity },
		set:   func(c *character.Character, v int) { c.Dexterity = v },
		clamp: unclamped(),
	},
	"intelligence": {
		get:   func(c *character.Character) int { return c.Intelligence },
		set:   func(c *character.Character, v int) { c.Intelligence = v },
		clamp: unclamped(),
	},
	"wisdom": {
		get:   func(c *character.Character) int { return c.Wisdom },
		set:   func(c *character.Character, v int) { c.Wisdom = v },
		clamp: unclamped(),
	},
	"charisma": {
		get:   func(c *character.Character) int { return c.Charisma },
		set:   func(c *character.Character, v int) { c.Charisma = v },
		clamp: unclamped(),
	},
	"constitution": {
		get:   func(c *character.Character) int { return c.Constitution },
		set:   func(c *character.Character, v int) { c.Constitution = v },
		clamp: unclamped(),
	},
	"strength": {
		get:   func(c *character.Character) int { return c.Strength },
		set:   func(c *character.Character, v int) { c.Strength = v },
		clamp: unclamped(),
	},
	"money": {
		get:   func(c *character.Character) int { return c.Money },
		set:   func(c *character.Character, v int) { c.Money = v },
		clamp: nonNegative(),
	},
	"level": {
		get:   func(c *character.Character) int { return c.Level },
		set:   func(c *character.Character, v int) { c.Level = v },
		clamp: unclamped(),
	},
	"experience": {
		get:   func(c *character.Character) int { return c.Experience },
		set:   func(c *character.Character, v int) { c.Experience = v },
		clamp: nonNegative(),
	},
	"hunger": {
		get:   func(c *character.Character) int { return c.Hunger },
		set:   func(c *character.Character, v int) { c.Hunger = v },
		clamp: percent(),
	},
	"thirst": {
		get:   func(c *character.Character) int { return c.Thirst },
		set:   func(c *character.Character, v int) { c.Thirst = v },
		clamp: percent(),
	},
	"fatigue": {
		get:   func(c *character.Character) int { return c.Fatigue },
		set:   func(c *character.Character, v int) { c.Fatigue = v },
		clamp: nonNegative(),
	},
	"morale": {
		get:   func(c *character.Character) int { return c.Morale },
		set:   func(c *character.Character, v int) { c.Morale = v },
		clamp: percent(),
	},
	"age": {
		get:   func(c *character.Character) int { return c.Age },
		set:   func(c *character.Character, v int) { c.Age = v },
		clamp: nonNegative(),
	},
}

// nonNumericFields are character fields that exist on the sheet but do
// not hold a number. Deltas against these are rejected with a distinct
// reason so the warning tells the model what it got wrong.
var nonNumericFields = map[string]bool{
	"id": true, "name": true, "type": true, "gender": true,
	"height": true, "weight": true, "appearance": true,
	"personality": true, "hobbies": true, "profession": true,
	"race": true, "organization": true, "country": true,
	"relationships": true, "currentLocation": true, "currentTarget": true,
	"shortTermGoal": true, "mediumTermGoal": true, "longTermGoal": true,
	"equipment": true, "inventory": true, "skills": true,
	"buffs": true, "debuffs": true,
}

// MutableFields returns the attribute names the narrative engine may
// change, for inclusion in the prompt's field catalog.
func MutableFields() []string {
	fields := make([]string, 0, len(attributes))
	for name := range attributes {
		fields = append(fields, name)
	}
	return fields
}

// leadingSignedInt extracts the delta from string-encoded values such
// as "-15 (受到攻击)" or "+5".
var leadingSignedInt = regexp.MustCompile(`^[+-]?\d+`)

// Apply computes new attribute values for each proposed delta, clamps
// them per the attribute table, and writes them back to the character.
// Rejected deltas are collected rather than aborting the batch. Apply
// performs no I/O; callers persist the updated character and surface
// the ignored list.
func Apply(c *character.Character, changes map[string]any) Result {
	result := Result{
		Updates: make(map[string]int),
		Detail:  make(map[string]Change),
	}

	for field, rawValue := range changes {
		delta, ok := parseDelta(rawValue)
		if !ok {
			result.Ignored = append(result.Ignored, IgnoredField{Field: field, Reason: ReasonMalformed})
			continue
		}

		attr, ok := attributes[field]
		if !ok {
			reason := ReasonUnknown
			if nonNumericFields[field] {
				reason = ReasonNonNumeric
			}
			result.Ignored = append(result.Ignored, IgnoredField{Field: field, Reason: reason})
			continue
		}

		if delta == 0 {
			continue
		}

		current := attr.get(c)
		next := clamp(c, current+delta, attr.clamp)
		attr.set(c, next)
		result.Updates[field] = next
		result.Detail[field] = Change{Delta: delta, From: current, To: next}
	}

	return result
}

func clamp(c *character.Character, v int, rule clampRule) int {
	if v < rule.min {
		return rule.min
	}
	if max := rule.max(c); v > max {
		return max
	}
	return v
}

// parseDelta accepts a JSON number or a string with a leading signed
// integer, discarding any trailing annotation.
func parseDelta(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		m := leadingSignedInt.FindString(v)
		if m == "" {
			return 0, false
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
