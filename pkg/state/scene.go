package state

import "time"

// SceneCacheEntry is a previously generated environment description
// and image for one scene. Entries are created lazily on the first
// environment query for a scene ID and destroyed wholesale when the
// scene-change detector fires.
type SceneCacheEntry struct {
	SceneID     string    `json:"sceneId"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
