package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

// DefaultHistoryLimit is how many recent log entries the context
// window carries.
const DefaultHistoryLimit = 5

// Builder constructs the full action prompt using a fluent interface.
// It separates prompt building from game state management.
type Builder struct {
	player          *character.Character
	worldState      map[string]any
	otherCharacters []*character.Character
	history         []*state.GameLogEntry
	historyLimit    int
	playerInput     string
}

// New creates a prompt builder with default settings.
func New() *Builder {
	return &Builder{
		historyLimit: DefaultHistoryLimit,
	}
}

// WithPlayer sets the player character whose sheet anchors the prompt.
func (b *Builder) WithPlayer(c *character.Character) *Builder {
	b.player = c
	return b
}

// WithWorldState sets the persistent world-state key/value pairs.
func (b *Builder) WithWorldState(ws map[string]any) *Builder {
	b.worldState = ws
	return b
}

// WithOtherCharacters sets the NPCs and enemies currently in play.
func (b *Builder) WithOtherCharacters(chars []*character.Character) *Builder {
	b.otherCharacters = chars
	return b
}

// WithHistory sets the recent game log, oldest first.
func (b *Builder) WithHistory(entries []*state.GameLogEntry) *Builder {
	b.history = entries
	return b
}

// WithHistoryLimit sets the history window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// WithPlayerInput sets the action text the player entered.
func (b *Builder) WithPlayerInput(input string) *Builder {
	b.playerInput = input
	return b
}

// Build assembles the final prompt: system prompt, character sheet and
// mutable-field catalog, world state, other characters, recent
// history, the player's action, and the closing instructions.
func (b *Builder) Build() (string, error) {
	if b.player == nil {
		return "", fmt.Errorf("player character is required")
	}

	var sb strings.Builder
	sb.WriteString(SystemPrompt)

	if err := b.writeCharacter(&sb); err != nil {
		return "", fmt.Errorf("error building character context: %w", err)
	}
	b.writeWorldState(&sb)
	b.writeOtherCharacters(&sb)
	b.writeHistory(&sb)

	sb.WriteString("\n\n## 玩家行动\n")
	sb.WriteString(b.playerInput)

	b.writeFinalInstructions(&sb)
	return sb.String(), nil
}

func (b *Builder) writeCharacter(sb *strings.Builder) error {
	data, err := json.MarshalIndent(b.player, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	sb.WriteString("\n\n## 当前角色信息\n")
	sb.Write(data)

	// Mutable field catalog with live bounds, so the model stays
	// inside the fields the reconciler accepts.
	c := b.player
	sb.WriteString("\n\n## 可修改的角色数值字段\n")
	sb.WriteString("在numericChanges中，你只能修改以下存在的字段（使用+/-数字表示变化量）：\n")
	sb.WriteString("基础属性:\n")
	fmt.Fprintf(sb, "- hp: 当前生命值 (0-%d)\n", c.MaxHP)
	fmt.Fprintf(sb, "- mp: 当前魔法值 (0-%d)\n", c.MaxMP)
	fmt.Fprintf(sb, "- stamina: 当前体力 (0-%d)\n", c.MaxStamina)
	sb.WriteString("- money: 金钱 (>=0)\n")
	sb.WriteString("- experience: 经验值 (>=0)\n")
	sb.WriteString("\n战斗属性:\n")
	fmt.Fprintf(sb, "- attack: 攻击力 (当前: %d)\n", c.Attack)
	fmt.Fprintf(sb, "- defense: 防御力 (当前: %d)\n", c.Defense)
	fmt.Fprintf(sb, "- magicAttack: 魔法攻击 (当前: %d)\n", c.MagicAttack)
	fmt.Fprintf(sb, "- magicDefense: 魔法防御 (当前: %d)\n", c.MagicDefense)
	fmt.Fprintf(sb, "- dexterity: 敏捷 (当前: %d)\n", c.Dexterity)
	fmt.Fprintf(sb, "- luck: 幸运 (当前: %d)\n", c.Luck)
	sb.WriteString("\n生活状态:\n")
	fmt.Fprintf(sb, "- hunger: 饥饿度 (当前: %d/100)\n", c.Hunger)
	fmt.Fprintf(sb, "- thirst: 口渴度 (当前: %d/100)\n", c.Thirst)
	fmt.Fprintf(sb, "- fatigue: 疲劳度 (当前: %d/100)\n", c.Fatigue)
	fmt.Fprintf(sb, "- morale: 士气 (当前: %d/100)\n", c.Morale)
	sb.WriteString("\n**重要提醒：**\n")
	sb.WriteString("- 只能修改上述列出的字段，不能创建新的字段\n")
	sb.WriteString("- 使用格式：{\"字段名\": +/-数值, \"另一个字段\": +/-数值}\n")
	sb.WriteString("- 例如：{\"hp\": -10, \"mp\": -5, \"experience\": +50}\n")
	sb.WriteString("- 如果没有数值变化，返回空对象：{}\n")

	if len(c.Skills) > 0 {
		sb.WriteString("\n## 角色技能\n")
		for _, skill := range c.Skills {
			sb.WriteString("- " + skill.Name)
			if skill.Level > 0 {
				fmt.Fprintf(sb, " (%d级)", skill.Level)
			}
			desc := skill.Description
			if desc == "" {
				desc = "无描述"
			}
			sb.WriteString(": " + desc + "\n")
		}
	}

	equipped := false
	for _, slot := range character.EquipmentSlots {
		item := c.Equipment[slot]
		if item == nil {
			continue
		}
		if !equipped {
			sb.WriteString("\n## 角色装备\n")
			equipped = true
		}
		sb.WriteString("- " + slot + ": " + item.Name)
		if item.Description != "" {
			sb.WriteString(" (" + item.Description + ")")
		}
		sb.WriteString("\n")
	}

	if len(c.Inventory) > 0 {
		sb.WriteString("\n## 角色背包\n")
		// Aggregate duplicates so a stack of herbs reads "草药 x3"
		counts := make(map[string]int)
		names := make([]string, 0, len(c.Inventory))
		for _, item := range c.Inventory {
			if item == nil || item.Name == "" {
				continue
			}
			if counts[item.Name] == 0 {
				names = append(names, item.Name)
			}
			counts[item.Name] += max(item.Quantity, 1)
		}
		for _, name := range names {
			sb.WriteString("- " + name)
			if counts[name] > 1 {
				fmt.Fprintf(sb, " x%d", counts[name])
			}
			sb.WriteString("\n")
		}
	}
	return nil
}

func (b *Builder) writeWorldState(sb *strings.Builder) {
	if len(b.worldState) == 0 {
		return
	}
	sb.WriteString("\n\n## 世界状态\n")
	for key, value := range b.worldState {
		data, err := json.Marshal(value)
		if err != nil {
			continue
		}
		sb.WriteString("- " + key + ": ")
		sb.Write(data)
		sb.WriteString("\n")
	}
}

func (b *Builder) writeOtherCharacters(sb *strings.Builder) {
	if len(b.otherCharacters) == 0 {
		return
	}
	sb.WriteString("\n\n## 其他角色\n")
	for _, c := range b.otherCharacters {
		if c == nil {
			continue
		}
		sb.WriteString("**" + c.Name + "**:\n")
		sb.WriteString("- 职业: " + orUnknown(c.Profession) + "\n")
		sb.WriteString("- 种族: " + orUnknown(c.Race) + "\n")
		sb.WriteString("- 当前位置: " + orUnknown(c.CurrentLocation) + "\n")
		if c.Appearance != "" {
			sb.WriteString("- 描述: " + c.Appearance + "\n")
		}
		fmt.Fprintf(sb, "- 生命值: %d/%d\n", c.HP, c.MaxHP)
		sb.WriteString("\n")
	}
}

func (b *Builder) writeHistory(sb *strings.Builder) {
	if len(b.history) == 0 {
		return
	}
	entries := b.history
	if b.historyLimit > 0 && len(entries) > b.historyLimit {
		entries = entries[len(entries)-b.historyLimit:]
	}
	sb.WriteString("\n\n## 最近的游戏历史\n")
	for i, entry := range entries {
		fmt.Fprintf(sb, "%d. 玩家行动: %s\n", i+1, entry.PlayerInput)
		if entry.Response != nil {
			if entry.Response.Plot != "" {
				sb.WriteString("   结果: " + entry.Response.Plot + "\n")
			}
			if len(entry.Response.NumericChanges) > 0 {
				data, err := json.Marshal(entry.Response.NumericChanges)
				if err == nil {
					sb.WriteString("   数值变化: ")
					sb.Write(data)
					sb.WriteString("\n")
				}
			}
		}
		sb.WriteString("\n")
	}
}

func (b *Builder) writeFinalInstructions(sb *strings.Builder) {
	sb.WriteString("\n\n## 处理指令\n")
	sb.WriteString("请根据以上信息，作为专业的RPG游戏管理员，处理玩家的行动。\n")
	sb.WriteString("严格按照JSON格式返回响应，特别注意：\n")
	sb.WriteString("1. numericChanges必须是对象格式，如：{\"hp\": -10, \"mp\": -5}\n")
	sb.WriteString("2. 只能修改角色中存在的数值字段，不能创建新字段\n")
	sb.WriteString("3. 建议行动必须符合游戏逻辑和角色状态，不能让角色做不可能的事\n")
	sb.WriteString("4. 时间地点要精确具体，包含年月日时分和详细地理位置\n")
	sb.WriteString("5. 环境和情节描述要生动详细，增强沉浸感\n")
	sb.WriteString("6. 检查角色的技能、装备和背包，确保行动合理\n")
	sb.WriteString("7. 根据角色当前状态（HP、MP、体力等）调整行动效果\n")
	sb.WriteString("8. 保持游戏的连贯性和逻辑性\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "未知"
	}
	return s
}
