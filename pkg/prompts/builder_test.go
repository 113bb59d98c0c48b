package prompts

import (
	"strings"
	"testing"

	"github.com/jwebster45206/realm-engine/pkg/action"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

func TestNew(t *testing.T) {
	builder := New()
	if builder == nil {
		t.Fatal("Expected builder to be created, got nil")
	}
	if builder.historyLimit != DefaultHistoryLimit {
		t.Errorf("Expected default history limit of %d, got %d", DefaultHistoryLimit, builder.historyLimit)
	}
}

func TestBuilder_FluentInterface(t *testing.T) {
	player := character.New("艾莉丝", character.TypePlayer)
	ws := map[string]any{"currentSceneId": "abc"}

	builder := New().
		WithPlayer(player).
		WithWorldState(ws).
		WithPlayerInput("继续探索").
		WithHistoryLimit(3)

	if builder.player != player {
		t.Error("WithPlayer did not set player")
	}
	if builder.playerInput != "继续探索" {
		t.Error("WithPlayerInput did not set input")
	}
	if builder.historyLimit != 3 {
		t.Error("WithHistoryLimit did not set limit")
	}
}

func TestBuild_RequiresPlayer(t *testing.T) {
	_, err := New().WithPlayerInput("hello").Build()
	if err == nil {
		t.Error("Expected error when player is missing")
	}
}

func TestBuild_Sections(t *testing.T) {
	player := character.New("艾莉丝", character.TypePlayer)
	player.MaxHP = 120
	player.Skills = []character.Skill{{Name: "火球术", Level: 2, Description: "基础攻击魔法"}}
	sword := character.NewItem("铁剑", "weapon", 50)
	sword.Equipable = true
	sword.Slot = character.SlotWeapon
	player.Equipment[character.SlotWeapon] = sword
	player.Inventory = append(player.Inventory,
		character.NewItem("草药", "consumable", 5),
		character.NewItem("草药", "consumable", 5))

	npc := character.New("铁匠汉斯", character.TypeNPC)
	npc.Profession = "铁匠"

	prompt, err := New().
		WithPlayer(player).
		WithWorldState(map[string]any{"weather": "下雨"}).
		WithOtherCharacters([]*character.Character{npc}).
		WithHistory([]*state.GameLogEntry{
			{PlayerInput: "查看四周", Response: &action.ActionResult{Plot: "你环顾四周。"}},
		}).
		WithPlayerInput("去铁匠铺").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, want := range []string{
		SystemPrompt,
		"## 当前角色信息",
		"hp: 当前生命值 (0-120)",
		"## 角色技能",
		"火球术 (2级)",
		"## 角色装备",
		"weapon: 铁剑",
		"## 角色背包",
		"草药 x2",
		"## 世界状态",
		"weather",
		"## 其他角色",
		"铁匠汉斯",
		"## 最近的游戏历史",
		"查看四周",
		"## 玩家行动\n去铁匠铺",
		"## 处理指令",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestBuild_HistoryWindow(t *testing.T) {
	player := character.New("测试", character.TypePlayer)
	entries := make([]*state.GameLogEntry, 8)
	for i := range entries {
		entries[i] = &state.GameLogEntry{PlayerInput: "行动" + strings.Repeat("I", i+1)}
	}

	prompt, err := New().
		WithPlayer(player).
		WithHistory(entries).
		WithPlayerInput("继续").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if strings.Contains(prompt, "行动III\n") && !strings.Contains(prompt, "行动IIII") {
		t.Error("Expected only the most recent entries in the window")
	}
	// default window is 5, so the first three of eight are dropped
	if strings.Contains(prompt, "玩家行动: 行动I\n") {
		t.Error("Expected oldest entry to be outside the window")
	}
	if !strings.Contains(prompt, "行动IIIIIIII") {
		t.Error("Expected newest entry inside the window")
	}
}

func TestSpecialCommandPrompt(t *testing.T) {
	prompt := SpecialCommandPrompt("status", "艾莉丝")
	if !strings.Contains(prompt, "status") || !strings.Contains(prompt, "艾莉丝") {
		t.Error("Expected command and character name in prompt")
	}

	anon := SpecialCommandPrompt("env", "")
	if !strings.Contains(anon, "未知") {
		t.Error("Expected unknown placeholder when character name missing")
	}
}
