package services

import "context"

// MockTextGenerator is a test double for TextGenerator. Responses are
// returned in order; when exhausted, the last one repeats.
type MockTextGenerator struct {
	Responses []string
	Err       error
	Prompts   []string
}

var _ TextGenerator = (*MockTextGenerator)(nil)

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := len(m.Prompts) - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
