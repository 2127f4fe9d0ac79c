package index

import (
	"context"
	"fmt"
	"sync"

	"assistant-kit/pkg/embedding"
)

// Vector keeps description embeddings in process and matches by cosine
// similarity. A best score below threshold is not a confident match.
type Vector struct {
	embedder  embedding.Embedder
	threshold float64

	mu      sync.RWMutex
	entries []Entry
	vectors [][]float32
}

var _ Index = (*Vector)(nil)

// NewVector creates an in-memory cosine index.
func NewVector(embedder embedding.Embedder, threshold float64) *Vector {
	return &Vector{embedder: embedder, threshold: threshold}
}

// Build embeds every description in one batch.
func (v *Vector) Build(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Description
	}
	vectors, err := v.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("%s.Vector.Build: embed descriptions: %w", LogPrefix, err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("%s.Vector.Build: %w: got %d for %d entries", LogPrefix, ErrEmbedCount, len(vectors), len(entries))
	}

	v.mu.Lock()
	v.entries = append([]Entry(nil), entries...)
	v.vectors = vectors
	v.mu.Unlock()
	return nil
}

// Query returns the most similar entry. Ties keep the earlier entry.
func (v *Vector) Query(ctx context.Context, text string) (Match, bool, error) {
	v.mu.RLock()
	entries, vectors := v.entries, v.vectors
	v.mu.RUnlock()
	if len(entries) == 0 {
		return Match{}, false, ErrNotBuilt
	}

	q, err := v.embedder.Embed(ctx, []string{text})
	if err != nil {
		return Match{}, false, fmt.Errorf("%s.Vector.Query: embed query: %w", LogPrefix, err)
	}
	if len(q) != 1 {
		return Match{}, false, fmt.Errorf("%s.Vector.Query: %w", LogPrefix, ErrEmbedCount)
	}

	best := Match{Score: -2}
	for i, vec := range vectors {
		score, err := embedding.Cosine(q[0], vec)
		if err != nil {
			return Match{}, false, fmt.Errorf("%s.Vector.Query: %w", LogPrefix, err)
		}
		if score > best.Score {
			best = Match{Key: entries[i].Key, Score: score}
		}
	}
	return best, best.Score >= v.threshold, nil
}
