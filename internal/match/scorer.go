package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"screener-backend/internal/embed"
	"screener-backend/internal/shared/util"
)

// Scorer turns a job description and a resume into a 0-10 match score by
// embedding both texts and taking their cosine similarity.
type Scorer struct {
	Embedder embed.Embedder

	mu      sync.Mutex
	jobKey  string
	jobVec  []float32
}

// NewScorer constructs a Scorer over the given embedding backend.
func NewScorer(e embed.Embedder) *Scorer {
	return &Scorer{Embedder: e}
}

// Score embeds both texts with the same backend and maps their cosine
// similarity onto [0, 10]. The job-description vector is cached, so scoring
// several resumes against one job description embeds it only once.
func (s *Scorer) Score(ctx context.Context, jobDescription, resume string) (float64, error) {
	if s.Embedder == nil {
		return 0, errors.New("score: missing embedder")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return 0, errors.New("score: empty job description")
	}
	if strings.TrimSpace(resume) == "" {
		return 0, errors.New("score: empty resume")
	}

	jobVec, err := s.jobVector(ctx, jobDescription)
	if err != nil {
		return 0, fmt.Errorf("score: embed job description: %w", err)
	}
	resumeVec, err := s.Embedder.Embed(ctx, resume)
	if err != nil {
		return 0, fmt.Errorf("score: embed resume: %w", err)
	}

	sim, err := cosine(jobVec, resumeVec)
	if err != nil {
		return 0, fmt.Errorf("score: %w", err)
	}
	return clampScore(sim * 10), nil
}

func (s *Scorer) jobVector(ctx context.Context, jobDescription string) ([]float32, error) {
	key := util.HashTextKey(jobDescription)

	s.mu.Lock()
	if s.jobKey == key && s.jobVec != nil {
		vec := s.jobVec
		s.mu.Unlock()
		return vec, nil
	}
	s.mu.Unlock()

	vec, err := s.Embedder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.jobKey = key
	s.jobVec = vec
	s.mu.Unlock()
	return vec, nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, errors.New("empty vectors")
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-magnitude vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
