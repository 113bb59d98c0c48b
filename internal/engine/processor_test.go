package engine

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/state"
	"github.com/jwebster45206/realm-engine/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupProcessor(t *testing.T, responses ...string) (*ActionProcessor, *storage.MockStore) {
	t.Helper()
	store := storage.NewMockStore()
	llm := &services.MockTextGenerator{Responses: responses}
	return NewActionProcessor(store, llm, &services.MockImageGenerator{}, testLogger()), store
}

func seedPlayer(t *testing.T, store *storage.MockStore) *character.Character {
	t.Helper()
	player := character.New("艾莉丝", character.TypePlayer)
	require.NoError(t, store.SaveCharacter(context.Background(), player))
	return player
}

func TestProcessAction_NoPlayer(t *testing.T) {
	processor, _ := setupProcessor(t, "{}")

	_, err := processor.ProcessAction(context.Background(), "继续探索")
	assert.ErrorIs(t, err, ErrNoPlayerCharacter)
}

func TestProcessAction_HappyPath(t *testing.T) {
	processor, store := setupProcessor(t, `{
		"currentCharacter": "艾莉丝",
		"timeLocation": "1024-05-01 14:00 中央大陆 罗兰王国 某小镇",
		"environment": "阳光明媚的小镇广场",
		"plot": "你挥剑攻击敌人，命中了要害。",
		"dialogue": "",
		"characterStatus": "微微喘息",
		"numericChanges": {"hp": -15, "experience": 20},
		"suggestedActions": ["继续战斗", "撤退", "使用技能"],
		"imagePrompt": "a town square battle",
		"gameState": {}
	}`)
	player := seedPlayer(t, store)
	player.HP = 40
	require.NoError(t, store.SaveCharacter(context.Background(), player))

	resp, err := processor.ProcessAction(context.Background(), "攻击敌人")
	require.NoError(t, err)

	assert.Equal(t, "你挥剑攻击敌人，命中了要害。", resp.Result.Plot)
	assert.Equal(t, 25, resp.Character.HP)
	assert.Equal(t, 20, resp.Character.Experience)
	assert.Empty(t, resp.Reconciliation.Ignored)
	assert.False(t, resp.SceneChanged)

	// turn is recorded in the game log
	log, err := store.GetGameLog(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, state.LogTypeAction, log[0].Type)
	assert.Equal(t, "攻击敌人", log[0].PlayerInput)

	// persisted character matches the returned one
	saved, err := store.GetPlayerCharacter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, saved.HP)
}

func TestProcessAction_UnknownFieldIgnored(t *testing.T) {
	processor, store := setupProcessor(t,
		`{"plot": "你喝下药水。", "numericChanges": {"mana": 10, "hp": 5}}`)
	player := seedPlayer(t, store)
	player.HP = 50
	require.NoError(t, store.SaveCharacter(context.Background(), player))

	resp, err := processor.ProcessAction(context.Background(), "喝药水")
	require.NoError(t, err)

	assert.Equal(t, 55, resp.Character.HP)
	require.Len(t, resp.Reconciliation.Ignored, 1)
	assert.Equal(t, "mana", resp.Reconciliation.Ignored[0].Field)
	assert.NotEmpty(t, resp.Warnings)
}

func TestProcessAction_SceneChange(t *testing.T) {
	processor, store := setupProcessor(t,
		`{"plot": "你来到了一座古老的森林。", "numericChanges": {}}`)
	seedPlayer(t, store)

	ctx := context.Background()
	require.NoError(t, store.SaveSceneCache(ctx, &state.SceneCacheEntry{
		SceneID:     "old-scene",
		Description: "旧场景",
	}))
	require.NoError(t, store.SaveWorldState(ctx, state.CurrentSceneKey, "old-scene"))

	resp, err := processor.ProcessAction(ctx, "向森林走去")
	require.NoError(t, err)
	assert.True(t, resp.SceneChanged)

	// a new scene id was minted and the cache dropped
	sceneID, err := store.GetWorldState(ctx, state.CurrentSceneKey)
	require.NoError(t, err)
	assert.NotEqual(t, "old-scene", sceneID)

	cached, err := store.GetSceneCache(ctx, "old-scene")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestProcessAction_GameStateDelta(t *testing.T) {
	processor, store := setupProcessor(t, `{
		"plot": "商人把短剑递给你。",
		"numericChanges": {"money": -50},
		"gameState": {
			"addItems": [{"name": "短剑", "type": "weapon", "value": 50, "equipable": true, "slot": "weapon"}],
			"weather": "晴天"
		}
	}`)
	seedPlayer(t, store)

	resp, err := processor.ProcessAction(context.Background(), "购买短剑")
	require.NoError(t, err)

	require.Len(t, resp.Character.Inventory, 1)
	assert.Equal(t, "短剑", resp.Character.Inventory[0].Name)
	assert.Equal(t, 50, resp.Character.Money)

	weather, err := store.GetWorldState(context.Background(), "weather")
	require.NoError(t, err)
	assert.Equal(t, "晴天", weather)
}

func TestProcessAction_MalformedResponseFallsBack(t *testing.T) {
	processor, store := setupProcessor(t, "抱歉，我无法处理这个请求。")
	seedPlayer(t, store)

	resp, err := processor.ProcessAction(context.Background(), "做一些事情")
	require.NoError(t, err)
	assert.Equal(t, "抱歉，我无法处理这个请求。", resp.Result.Plot)
	assert.Equal(t, "系统", resp.Result.CurrentCharacter)
}

func TestProcessAction_LLMErrorLogged(t *testing.T) {
	store := storage.NewMockStore()
	llm := &services.MockTextGenerator{Err: errors.New("connection refused")}
	processor := NewActionProcessor(store, llm, nil, testLogger())
	seedPlayer(t, store)

	_, err := processor.ProcessAction(context.Background(), "继续")
	require.Error(t, err)

	log, err := store.GetGameLog(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, state.LogTypeError, log[0].Type)
	assert.NotEmpty(t, log[0].Message)
}

func TestCreateCharacter(t *testing.T) {
	processor, store := setupProcessor(t, `{
		"currentCharacter": "林小雨",
		"plot": "你在月光森林中醒来。",
		"numericChanges": {},
		"gameState": {
			"character": {"profession": "弓箭手", "maxHp": 120, "hp": 120}
		}
	}`)

	resp, err := processor.CreateCharacter(context.Background(), &CharacterDraft{
		Name: "林小雨", Gender: "女",
	})
	require.NoError(t, err)

	assert.Equal(t, "林小雨", resp.Character.Name)
	assert.Equal(t, character.TypePlayer, resp.Character.Type)
	assert.Equal(t, "弓箭手", resp.Character.Profession)
	assert.Equal(t, 120, resp.Character.MaxHP)

	saved, err := store.GetPlayerCharacter(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "林小雨", saved.Name)

	log, err := store.GetGameLog(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, state.LogTypeCharacterCreation, log[0].Type)
}

func TestCreateCharacter_RequiresName(t *testing.T) {
	processor, _ := setupProcessor(t, "{}")

	_, err := processor.CreateCharacter(context.Background(), &CharacterDraft{})
	assert.Error(t, err)
}

func TestRandomCharacter(t *testing.T) {
	processor, _ := setupProcessor(t,
		"```json\n{\"name\": \"林小雨\", \"description\": \"精灵弓箭手\"}\n```")

	concept, err := processor.RandomCharacter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "林小雨", concept.Name)
	assert.Equal(t, "精灵弓箭手", concept.Description)
}

func TestEnvironmentInfo_CacheMissThenHit(t *testing.T) {
	processor, store := setupProcessor(t,
		`{"plot": "广场上人来人往，喷泉在阳光下闪闪发光。"}`)
	seedPlayer(t, store)
	ctx := context.Background()

	first, err := processor.EnvironmentInfo(ctx)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, "广场上人来人往，喷泉在阳光下闪闪发光。", first.Description)
	assert.NotEmpty(t, first.SceneID)
	assert.NotEmpty(t, first.ImageURL)

	second, err := processor.EnvironmentInfo(ctx)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.SceneID, second.SceneID)
	assert.Equal(t, first.Description, second.Description)
}

func TestReset(t *testing.T) {
	processor, store := setupProcessor(t, "{}")
	seedPlayer(t, store)
	ctx := context.Background()
	require.NoError(t, store.SaveSetting(ctx, "apiKey", "secret"))

	require.NoError(t, processor.Reset(ctx))

	player, err := store.GetPlayerCharacter(ctx)
	require.NoError(t, err)
	assert.Nil(t, player)

	// settings survive a reset
	key, err := store.GetSetting(ctx, "apiKey")
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
}
