package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/pkg/character"
)

func newTestCharacter() *character.Character {
	return character.New("测试者", character.TypePlayer)
}

func TestApply_BasicDelta(t *testing.T) {
	c := newTestCharacter()
	c.HP = 40

	result := Apply(c, map[string]any{"hp": float64(-15)})

	assert.Equal(t, 25, c.HP)
	assert.Equal(t, 25, result.Updates["hp"])
	require.Contains(t, result.Detail, "hp")
	assert.Equal(t, Change{Delta: -15, From: 40, To: 25}, result.Detail["hp"])
	assert.Empty(t, result.Ignored)
}

func TestApply_ClampToZero(t *testing.T) {
	c := newTestCharacter()
	c.HP = 10

	result := Apply(c, map[string]any{"hp": float64(-50)})

	assert.Equal(t, 0, c.HP)
	assert.Equal(t, 0, result.Updates["hp"])
}

func TestApply_ClampToMax(t *testing.T) {
	c := newTestCharacter()
	c.HP = 90
	c.MaxHP = 100

	result := Apply(c, map[string]any{"hp": float64(50)})

	assert.Equal(t, 100, c.HP)
	assert.Equal(t, Change{Delta: 50, From: 90, To: 100}, result.Detail["hp"])
}

func TestApply_MaxHPUnbounded(t *testing.T) {
	c := newTestCharacter()

	Apply(c, map[string]any{"maxHp": float64(500)})

	assert.Equal(t, 600, c.MaxHP)
}

func TestApply_MoneyAndExperienceFloorAtZero(t *testing.T) {
	c := newTestCharacter()
	c.Money = 30
	c.Experience = 10

	result := Apply(c, map[string]any{
		"money":      float64(-100),
		"experience": float64(-100),
	})

	assert.Equal(t, 0, c.Money)
	assert.Equal(t, 0, c.Experience)
	assert.Equal(t, 0, result.Updates["money"])
	assert.Equal(t, 0, result.Updates["experience"])
}

func TestApply_PercentAttributes(t *testing.T) {
	c := newTestCharacter()
	c.Hunger = 90
	c.Morale = 5

	Apply(c, map[string]any{
		"hunger": float64(30),
		"morale": float64(-20),
	})

	assert.Equal(t, 100, c.Hunger)
	assert.Equal(t, 0, c.Morale)
}

func TestApply_StringDeltaWithAnnotation(t *testing.T) {
	c := newTestCharacter()
	c.HP = 40

	result := Apply(c, map[string]any{"hp": "-15 (受到攻击)"})

	assert.Equal(t, 25, c.HP)
	assert.Empty(t, result.Ignored)
}

func TestApply_StringDeltaWithPlusSign(t *testing.T) {
	c := newTestCharacter()
	c.Experience = 10

	Apply(c, map[string]any{"experience": "+20"})

	assert.Equal(t, 30, c.Experience)
}

func TestApply_UnknownFieldIgnored(t *testing.T) {
	c := newTestCharacter()

	result := Apply(c, map[string]any{"mana": float64(10)})

	require.Len(t, result.Ignored, 1)
	assert.Equal(t, "mana", result.Ignored[0].Field)
	assert.Equal(t, ReasonUnknown, result.Ignored[0].Reason)
	assert.Empty(t, result.Updates)
}

func TestApply_NonNumericFieldIgnored(t *testing.T) {
	c := newTestCharacter()

	result := Apply(c, map[string]any{"name": float64(1)})

	require.Len(t, result.Ignored, 1)
	assert.Equal(t, ReasonNonNumeric, result.Ignored[0].Reason)
	assert.Equal(t, "测试者", c.Name)
}

func TestApply_MalformedValueIgnored(t *testing.T) {
	c := newTestCharacter()

	result := Apply(c, map[string]any{
		"hp":      "很多",
		"stamina": []any{1, 2},
	})

	assert.Len(t, result.Ignored, 2)
	for _, ignored := range result.Ignored {
		assert.Equal(t, ReasonMalformed, ignored.Reason)
	}
	assert.Equal(t, 100, c.HP)
	assert.Equal(t, 100, c.Stamina)
}

func TestApply_ZeroDeltaSkipped(t *testing.T) {
	c := newTestCharacter()

	result := Apply(c, map[string]any{"hp": float64(0)})

	assert.Empty(t, result.Updates)
	assert.Empty(t, result.Ignored)
	assert.Empty(t, result.Detail)
}

func TestApply_MixedBatchContinuesPastRejections(t *testing.T) {
	c := newTestCharacter()
	c.HP = 50

	result := Apply(c, map[string]any{
		"hp":   float64(-10),
		"mana": float64(5),
		"name": "新名字",
	})

	assert.Equal(t, 40, c.HP)
	assert.Len(t, result.Ignored, 2)
	assert.Len(t, result.Updates, 1)
}

func TestMutableFields(t *testing.T) {
	fields := MutableFields()

	assert.Contains(t, fields, "hp")
	assert.Contains(t, fields, "maxHp")
	assert.Contains(t, fields, "morale")
	assert.NotContains(t, fields, "name")
}
