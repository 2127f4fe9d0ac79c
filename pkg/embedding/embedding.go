// Package embedding turns text into vectors for similarity routing.
package embedding

import (
	"context"
	"errors"
	"math"
)

// Embedder embeds a batch of texts. The returned slice is aligned with texts.
// Implementations are safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

var (
	ErrNoTexts           = errors.New("embedding: no texts provided")
	ErrDimensionMismatch = errors.New("embedding: vector dimensions differ")
)

// Cosine returns the cosine similarity of a and b.
// A zero vector has similarity 0 with everything.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
