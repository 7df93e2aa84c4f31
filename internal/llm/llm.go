package llm

import (
	"context"
	"errors"
)

// Client abstracts hosted text-generation providers. Implementations send
// one prompt and return the model's raw text; callers own any cleanup.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient stands in when no provider credential is wired, so
// scoring-only flows can share the same service construction.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
