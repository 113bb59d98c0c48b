package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const DefaultGeminiImageModel = "gemini-2.0-flash-preview-image-generation"

const imageStyleSuffix = "fantasy RPG, detailed digital art, high quality, cinematic lighting, vibrant colors, medieval fantasy setting"

// GeminiImageService implements ImageGenerator with a Gemini model
// that supports image response modality.
type GeminiImageService struct {
	apiKey    string
	modelName string
	client    *GeminiService
	cache     *ImageCache
	logger    *slog.Logger
}

var _ ImageGenerator = (*GeminiImageService)(nil)

// NewGeminiImageService creates a Gemini image client with a bounded
// in-memory result cache.
func NewGeminiImageService(apiKey string, modelName string, logger *slog.Logger) *GeminiImageService {
	if modelName == "" {
		modelName = DefaultGeminiImageModel
	}
	return &GeminiImageService{
		apiKey:    apiKey,
		modelName: modelName,
		client: &GeminiService{
			apiKey: apiKey,
			httpClient: &http.Client{
				Timeout: 120 * time.Second,
			},
			logger: logger,
		},
		cache:  NewImageCache(DefaultImageCacheSize),
		logger: logger,
	}
}

// SetAPIKey replaces the credential.
func (g *GeminiImageService) SetAPIKey(apiKey string) {
	g.apiKey = apiKey
	g.client.SetAPIKey(apiKey)
}

// GenerateImage returns a cached result for the prompt when present,
// otherwise requests a fresh illustration. The prompt is enhanced with
// a fixed art-style suffix before the request.
func (g *GeminiImageService) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	if cached, ok := g.cache.Get(prompt); ok {
		g.logger.Debug("Image cache hit", "prompt", prompt)
		return cached, nil
	}

	enhanced := enhanceImagePrompt(prompt)

	geminiReq := GeminiRequest{
		Contents: []GeminiContent{
			{Parts: []GeminiPart{{Text: enhanced}}},
		},
		GenerationConfig: &GeminiGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	resp, err := g.client.generateContent(ctx, g.modelName, &geminiReq)
	if err != nil {
		return nil, fmt.Errorf("image generation failed: %w", err)
	}

	result := &ImageResult{Prompt: prompt}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			mimeType := part.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/jpeg"
			}
			result.URL = fmt.Sprintf("data:%s;base64,%s", mimeType, part.InlineData.Data)
		}
		if part.Text != "" {
			result.Description += part.Text
		}
	}
	if result.URL == "" {
		return nil, fmt.Errorf("response contained no image data")
	}

	g.cache.Put(prompt, result)
	return result, nil
}

// enhanceImagePrompt appends the fixed art-style suffix, plus a scene
// elaboration when the prompt is too short to carry the composition.
func enhanceImagePrompt(prompt string) string {
	enhanced := prompt
	if len(prompt) < 50 {
		enhanced += ", epic fantasy scene with rich environmental detail"
	}
	return enhanced + ", " + imageStyleSuffix
}
