// Package scene decides when the player's location context has
// changed, so cached environment data can be invalidated.
package scene

import (
	"strings"

	"github.com/jwebster45206/realm-engine/pkg/action"
)

// movementKeywords are transit verbs and place nouns whose presence in
// the plot suggests the scene moved. The list is a tuned heuristic,
// not a contract: false positives cost one regenerated environment
// description, false negatives a stale one.
var movementKeywords = []string{
	// transit verbs
	"来到", "到达", "进入", "离开", "走向", "前往", "返回",
	"传送", "移动", "穿过", "越过", "跨过", "走出", "走进",
	// location nouns
	"场景", "地点", "位置", "环境", "区域", "房间", "街道",
	"森林", "城市", "村庄", "山脉", "海边", "洞穴", "建筑",
}

// stateKeyMarkers flag world-state keys that describe where the player
// is.
var stateKeyMarkers = []string{"location", "position", "scene"}

// Detector classifies action results for scene changes. It only
// classifies; minting a new scene ID and clearing the cache is the
// caller's job.
type Detector struct {
	keywords []string
}

// NewDetector returns a detector with the default keyword list.
func NewDetector() *Detector {
	return &Detector{keywords: movementKeywords}
}

// WithKeywords replaces the lexical keyword list, for tuning.
func (d *Detector) WithKeywords(keywords []string) *Detector {
	d.keywords = keywords
	return d
}

// Detect reports whether the result indicates a location change.
// Two independent signals, OR-combined: a movement keyword in the
// plot, or a location-flavored key in the world-state delta.
func (d *Detector) Detect(result *action.ActionResult) bool {
	if result == nil {
		return false
	}
	return d.plotSignal(result.Plot) || d.stateSignal(result.GameState.WorldState)
}

func (d *Detector) plotSignal(plot string) bool {
	if plot == "" {
		return false
	}
	for _, keyword := range d.keywords {
		if strings.Contains(plot, keyword) {
			return true
		}
	}
	return false
}

func (d *Detector) stateSignal(worldState map[string]any) bool {
	for key := range worldState {
		lower := strings.ToLower(key)
		for _, marker := range stateKeyMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}
