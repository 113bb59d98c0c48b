package services

import (
	"fmt"
	"testing"
)

func TestImageCachePutGet(t *testing.T) {
	cache := NewImageCache(3)

	if _, ok := cache.Get("castle gates"); ok {
		t.Error("Expected miss on empty cache")
	}

	result := &ImageResult{URL: "data:image/jpeg;base64,YQ==", Prompt: "castle gates"}
	cache.Put("castle gates", result)

	got, ok := cache.Get("castle gates")
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if got.URL != result.URL {
		t.Errorf("Expected URL %s, got %s", result.URL, got.URL)
	}
}

func TestImageCacheFIFOEviction(t *testing.T) {
	cache := NewImageCache(20)

	for i := 0; i < 21; i++ {
		prompt := fmt.Sprintf("scene %d", i)
		cache.Put(prompt, &ImageResult{URL: "data:image/jpeg;base64,", Prompt: prompt})
	}

	if cache.Len() != 20 {
		t.Errorf("Expected 20 entries after overflow, got %d", cache.Len())
	}
	if _, ok := cache.Get("scene 0"); ok {
		t.Error("Expected oldest entry to be evicted")
	}
	if _, ok := cache.Get("scene 1"); !ok {
		t.Error("Expected second entry to survive")
	}
	if _, ok := cache.Get("scene 20"); !ok {
		t.Error("Expected newest entry to be present")
	}
}

func TestImageCacheReplaceKeepsPosition(t *testing.T) {
	cache := NewImageCache(2)
	cache.Put("a", &ImageResult{URL: "1"})
	cache.Put("b", &ImageResult{URL: "2"})
	cache.Put("a", &ImageResult{URL: "3"})

	got, ok := cache.Get("a")
	if !ok || got.URL != "3" {
		t.Errorf("Expected replaced entry, got %+v ok=%v", got, ok)
	}
	if cache.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", cache.Len())
	}

	// a is still oldest, so the next insert evicts it
	cache.Put("c", &ImageResult{URL: "4"})
	if _, ok := cache.Get("a"); ok {
		t.Error("Expected a to be evicted")
	}
}
