package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"assistant-kit/pkg/embedding"
	"assistant-kit/pkg/qdrant"
)

// intentNamespace seeds the deterministic point ids, so re-indexing a
// catalog overwrites its points instead of duplicating them.
var intentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("assistant-kit/intents"))

// PointID returns the qdrant point id of an intent key.
func PointID(key string) string {
	return uuid.NewSHA1(intentNamespace, []byte(key)).String()
}

// Qdrant stores description vectors in a qdrant collection and lets the
// server apply the score threshold.
type Qdrant struct {
	client     qdrant.IQdrant
	embedder   embedding.Embedder
	collection string
	vectorSize int
	threshold  float64

	mu    sync.RWMutex
	known map[string]struct{}
}

var _ Index = (*Qdrant)(nil)

// NewQdrant creates a qdrant-backed index.
func NewQdrant(client qdrant.IQdrant, embedder embedding.Embedder, collection string, vectorSize int, threshold float64) *Qdrant {
	return &Qdrant{
		client:     client,
		embedder:   embedder,
		collection: collection,
		vectorSize: vectorSize,
		threshold:  threshold,
	}
}

// Build ensures the collection and upserts one point per entry.
func (q *Qdrant) Build(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Description
	}
	vectors, err := q.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("%s.Qdrant.Build: embed descriptions: %w", LogPrefix, err)
	}
	if len(vectors) != len(entries) {
		return fmt.Errorf("%s.Qdrant.Build: %w: got %d for %d entries", LogPrefix, ErrEmbedCount, len(vectors), len(entries))
	}

	if err := q.client.EnsureCollection(ctx, q.collection, q.vectorSize); err != nil {
		return fmt.Errorf("%s.Qdrant.Build: %w", LogPrefix, err)
	}

	points := make([]qdrant.Point, len(entries))
	known := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if len(vectors[i]) != q.vectorSize {
			return fmt.Errorf("%s.Qdrant.Build: %w: %d != %d", LogPrefix, ErrVectorSize, len(vectors[i]), q.vectorSize)
		}
		points[i] = qdrant.Point{
			ID:     PointID(e.Key),
			Vector: vectors[i],
			Payload: map[string]interface{}{
				PayloadKey:         e.Key,
				PayloadDescription: e.Description,
			},
		}
		known[e.Key] = struct{}{}
	}

	if err := q.client.UpsertPoints(ctx, q.collection, qdrant.UpsertPointsRequest{Points: points}); err != nil {
		return fmt.Errorf("%s.Qdrant.Build: %w", LogPrefix, err)
	}

	q.mu.Lock()
	q.known = known
	q.mu.Unlock()
	return nil
}

// Query searches the collection for the single best point above threshold.
// Points left over from another catalog are ignored.
func (q *Qdrant) Query(ctx context.Context, text string) (Match, bool, error) {
	q.mu.RLock()
	known := q.known
	q.mu.RUnlock()
	if known == nil {
		return Match{}, false, ErrNotBuilt
	}

	vec, err := q.embedder.Embed(ctx, []string{text})
	if err != nil {
		return Match{}, false, fmt.Errorf("%s.Qdrant.Query: embed query: %w", LogPrefix, err)
	}
	if len(vec) != 1 {
		return Match{}, false, fmt.Errorf("%s.Qdrant.Query: %w", LogPrefix, ErrEmbedCount)
	}

	threshold := q.threshold
	resp, err := q.client.SearchPoints(ctx, q.collection, qdrant.SearchRequest{
		Vector:         vec[0],
		Limit:          len(known),
		WithPayload:    true,
		ScoreThreshold: &threshold,
	})
	if err != nil {
		return Match{}, false, fmt.Errorf("%s.Qdrant.Query: %w", LogPrefix, err)
	}

	for _, hit := range resp.Result {
		key, _ := hit.Payload[PayloadKey].(string)
		if _, ok := known[key]; !ok {
			continue
		}
		return Match{Key: key, Score: hit.Score}, true, nil
	}
	return Match{}, false, nil
}
