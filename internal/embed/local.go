package embed

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"strings"
)

// localDims matches the vector width of small sentence-embedding models.
const localDims = 384

// LocalEmbedder produces deterministic vectors without any network
// dependency. Each lowercased token is hashed into a pseudo-random
// direction and the token directions are summed, so texts sharing
// vocabulary end up with correlated vectors.
type LocalEmbedder struct{}

// NewLocal constructs the local deterministic embedder.
func NewLocal() *LocalEmbedder {
	return &LocalEmbedder{}
}

// Embed returns a bag-of-tokens vector for text.
func (*LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil, errors.New("embed: empty text")
	}
	vec := make([]float32, localDims)
	for _, tok := range tokens {
		addTokenDirection(vec, tok)
	}
	return vec, nil
}

// addTokenDirection mixes a token into vec using an LCG seeded by sha1(token),
// each lane mapped to [-1, 1].
func addTokenDirection(vec []float32, token string) {
	h := sha1.Sum([]byte(token))
	x := binary.BigEndian.Uint32(h[:4])
	const a = 1664525
	const c = 1013904223
	for i := range vec {
		x = uint32(uint64(a)*uint64(x) + uint64(c))
		v := float32(x) / float32(^uint32(0))
		vec[i] += 2*v - 1
	}
}

var _ Embedder = (*LocalEmbedder)(nil)
