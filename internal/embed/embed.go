package embed

import (
	"context"
	"fmt"
	"strings"
)

// Embedder converts a text passage into a fixed-length vector. Implementations
// must return the same vector for the same input text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const (
	BackendLocal  = "local"
	BackendGemini = "gemini"
)

// New selects an embedding backend by name. An empty name falls back to the
// local backend, which needs no credential or network access.
func New(ctx context.Context, backend, apiKey, model string) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendGemini:
		return NewGemini(ctx, apiKey, model)
	case BackendLocal, "":
		return NewLocal(), nil
	default:
		return nil, fmt.Errorf("unknown embedding backend: %s", backend)
	}
}
