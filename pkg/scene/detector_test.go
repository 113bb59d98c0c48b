package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/realm-engine/pkg/action"
)

func TestDetect_PlotKeywords(t *testing.T) {
	tests := []struct {
		name     string
		plot     string
		expected bool
	}{
		{
			name:     "transit verb",
			plot:     "你来到了一座古老的森林。",
			expected: true,
		},
		{
			name:     "entering a place",
			plot:     "你推开木门，走进昏暗的酒馆。",
			expected: true,
		},
		{
			name:     "location noun without verb",
			plot:     "这个房间里堆满了旧书。",
			expected: true,
		},
		{
			name:     "combat stays in place",
			plot:     "你挥剑攻击敌人，剑刃划破空气。",
			expected: false,
		},
		{
			name:     "dialogue stays in place",
			plot:     "老人笑了笑，递给你一杯热茶。",
			expected: false,
		},
		{
			name:     "empty plot",
			plot:     "",
			expected: false,
		},
	}

	detector := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &action.ActionResult{Plot: tt.plot}
			assert.Equal(t, tt.expected, detector.Detect(result))
		})
	}
}

func TestDetect_WorldStateKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{name: "exact location key", key: "location", expected: true},
		{name: "embedded location key", key: "playerLocation", expected: true},
		{name: "case insensitive", key: "CurrentPosition", expected: true},
		{name: "scene key", key: "sceneName", expected: true},
		{name: "unrelated key", key: "weather", expected: false},
	}

	detector := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &action.ActionResult{
				Plot: "你抬头看了看天色。",
				GameState: action.GameStateDelta{
					WorldState: map[string]any{tt.key: "某处"},
				},
			}
			assert.Equal(t, tt.expected, detector.Detect(result))
		})
	}
}

func TestDetect_NilResult(t *testing.T) {
	detector := NewDetector()
	assert.False(t, detector.Detect(nil))
}

func TestDetect_CustomKeywords(t *testing.T) {
	detector := NewDetector().WithKeywords([]string{"飞往"})

	flying := &action.ActionResult{Plot: "你乘着巨鹰飞往北方。"}
	assert.True(t, detector.Detect(flying))

	// The default list no longer applies once replaced.
	walking := &action.ActionResult{Plot: "你来到了广场。"}
	assert.False(t, detector.Detect(walking))
}
