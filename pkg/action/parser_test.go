package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"currentCharacter": "艾莉娅",
	"timeLocation": "清晨，晨曦城东门",
	"environment": "石墙上爬满了藤蔓。",
	"plot": "你推开城门，走进清晨的集市。",
	"dialogue": "卫兵：欢迎回来。",
	"characterStatus": "轻微疲劳",
	"numericChanges": {"hp": -5, "fatigue": 10},
	"suggestedActions": ["逛集市", "找旅店", "打听消息"],
	"imagePrompt": "medieval city gate at dawn",
	"gameState": {}
}`

func TestParse_DirectJSON(t *testing.T) {
	result := Parse(validResponse)
	require.NotNil(t, result)

	assert.Equal(t, "艾莉娅", result.CurrentCharacter)
	assert.Equal(t, "你推开城门，走进清晨的集市。", result.Plot)
	assert.Equal(t, "卫兵：欢迎回来。", result.Dialogue)
	assert.Equal(t, float64(-5), result.NumericChanges["hp"])
	assert.Equal(t, []string{"逛集市", "找旅店", "打听消息"}, result.SuggestedActions)
}

func TestParse_CodeFence(t *testing.T) {
	raw := "好的，以下是本回合的结果：\n```json\n" + validResponse + "\n```\n希望你喜欢这个展开。"
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Equal(t, "你推开城门，走进清晨的集市。", result.Plot)
}

func TestParse_BareCodeFence(t *testing.T) {
	raw := "```\n" + validResponse + "\n```"
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Equal(t, "艾莉娅", result.CurrentCharacter)
}

func TestParse_EmbeddedInProse(t *testing.T) {
	raw := "让我描述接下来发生的事情。 " + validResponse + " 以上就是全部内容。"
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Equal(t, "你推开城门，走进清晨的集市。", result.Plot)
}

func TestParse_FallbackPreservesRawText(t *testing.T) {
	raw := "你走进森林深处，阳光透过树叶洒落下来。"
	result := Parse(raw)
	require.NotNil(t, result)

	assert.Equal(t, raw, result.Plot)
	assert.Equal(t, "系统", result.CurrentCharacter)
	assert.NotEmpty(t, result.SuggestedActions)
	assert.NotNil(t, result.NumericChanges)
}

func TestParse_FallbackEmptyInput(t *testing.T) {
	result := Parse("   ")
	require.NotNil(t, result)
	assert.Equal(t, "响应解析失败，但游戏继续进行。", result.Plot)
}

func TestParse_MissingFieldsGetDefaults(t *testing.T) {
	result := Parse(`{"plot": "你休息了一会儿。"}`)
	require.NotNil(t, result)

	assert.Equal(t, "你休息了一会儿。", result.Plot)
	assert.Equal(t, "", result.Dialogue)
	assert.NotNil(t, result.NumericChanges)
	assert.Empty(t, result.NumericChanges)
	assert.Equal(t, []string{"继续探索", "查看状态", "休息"}, result.SuggestedActions)
}

func TestParse_DialogueSpeakerList(t *testing.T) {
	raw := `{
		"plot": "两人交谈。",
		"dialogue": [
			{"speaker": "铁匠", "line": "这把剑要三百金币。"},
			{"line": "太贵了。"}
		]
	}`
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Equal(t, "铁匠：这把剑要三百金币。\n太贵了。", result.Dialogue)
}

func TestParse_NumericChangesAsEmbeddedString(t *testing.T) {
	raw := `{"plot": "战斗结束。", "numericChanges": "{\"hp\": -12}"}`
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Equal(t, float64(-12), result.NumericChanges["hp"])
}

func TestParse_MalformedNumericChangesCoercesToEmpty(t *testing.T) {
	raw := `{"plot": "平静的一天。", "numericChanges": [1, 2, 3]}`
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Empty(t, result.NumericChanges)
}

func TestParse_GameStateDelta(t *testing.T) {
	raw := `{
		"plot": "商人递给你一把短剑。",
		"gameState": {
			"character": {"money": 50},
			"addItems": [{"name": "短剑", "type": "weapon", "equipable": true, "slot": "weapon"}],
			"weather": "小雨"
		}
	}`
	result := Parse(raw)
	require.NotNil(t, result)

	assert.Equal(t, float64(50), result.GameState.Character["money"])
	require.Len(t, result.GameState.AddItems, 1)
	assert.Equal(t, "短剑", result.GameState.AddItems[0].Name)
	assert.Equal(t, "小雨", result.GameState.WorldState["weather"])
}

func TestParse_BracesInsideStrings(t *testing.T) {
	raw := `前文说明 {"plot": "他说 {奇怪的话} 然后离开了。"} 后记`
	result := Parse(raw)
	require.NotNil(t, result)
	assert.Equal(t, "他说 {奇怪的话} 然后离开了。", result.Plot)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "direct object",
			input:    `{"name": "洛恩"}`,
			expected: `{"name": "洛恩"}`,
			ok:       true,
		},
		{
			name:     "fenced object",
			input:    "```json\n{\"name\": \"洛恩\"}\n```",
			expected: `{"name": "洛恩"}`,
			ok:       true,
		},
		{
			name:     "object in prose",
			input:    `生成的角色如下：{"name": "洛恩", "description": "流浪剑客"}，请确认。`,
			expected: `{"name": "洛恩", "description": "流浪剑客"}`,
			ok:       true,
		},
		{
			name:  "no object",
			input: "抱歉，我无法生成角色。",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestGameStateDeltaIsEmpty(t *testing.T) {
	var d *GameStateDelta
	assert.True(t, d.IsEmpty())

	empty := &GameStateDelta{}
	assert.True(t, empty.IsEmpty())

	withItem := &GameStateDelta{AddItems: []ItemGrant{{Name: "火把"}}}
	assert.False(t, withItem.IsEmpty())
}
