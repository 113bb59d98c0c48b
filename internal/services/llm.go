package services

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when a remote service is called without a
// configured credential. Callers show a settings hint instead of a
// generic failure.
var ErrNoAPIKey = errors.New("api key is not configured")

// TextGenerator defines the interface for the remote text service.
// The core depends only on "send a prompt, get text back or fail";
// the wire format behind it is the implementation's concern.
type TextGenerator interface {
	// Generate sends a single large prompt and returns the raw model
	// output. The output ideally embeds one JSON object in the action
	// result schema, but callers must not rely on that.
	Generate(ctx context.Context, prompt string) (string, error)
}
