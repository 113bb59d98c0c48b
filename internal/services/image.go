package services

import "context"

// ImageResult is a generated scene illustration. URL is a data URI
// when the backend returns inline image bytes.
type ImageResult struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt"`
}

// ImageGenerator produces an illustration for a scene prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}
