package services

import "context"

// MockImageGenerator is a test double for ImageGenerator.
type MockImageGenerator struct {
	Result  *ImageResult
	Err     error
	Prompts []string
}

var _ ImageGenerator = (*MockImageGenerator)(nil)

func (m *MockImageGenerator) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &ImageResult{
		URL:    "data:image/jpeg;base64,ZGVtbw==",
		Prompt: prompt,
	}, nil
}
