package embedding

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedEmbedder decorates an Embedder with an in-memory per-text cache.
type CachedEmbedder struct {
	inner Embedder
	cache *cache.Cache
}

// NewCached creates a cached embedder; entries expire after ttl.
func NewCached(inner Embedder, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
	}
}

// Embed returns cached vectors and delegates only the misses, in one batch.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrNoTexts
	}

	out := make([][]float32, len(texts))
	var (
		missTexts []string
		missIdx   []int
	)
	for i, text := range texts {
		if val, found := e.cache.Get(text); found {
			if vec, ok := val.([]float32); ok {
				out[i] = vec
				continue
			}
		}
		missTexts = append(missTexts, text)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) == 0 {
		return out, nil
	}

	vectors, err := e.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	for j, vec := range vectors {
		if j >= len(missIdx) {
			break
		}
		out[missIdx[j]] = vec
		e.cache.Set(missTexts[j], vec, cache.DefaultExpiration)
	}
	return out, nil
}

// Len reports the number of cached vectors.
func (e *CachedEmbedder) Len() int {
	return e.cache.ItemCount()
}
