package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const DefaultHashDimensions = 256

// HashEmbedder is a deterministic offline embedder. Each lower-cased word is
// hashed into a bucket, so texts sharing words get similar vectors.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates a hash embedder with dims buckets.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	return &HashEmbedder{dims: dims}
}

// Dimensions returns the vector size.
func (e *HashEmbedder) Dimensions() int {
	return e.dims
}

// Embed implements Embedder.
func (e *HashEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrNoTexts
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dims)
		for _, word := range tokenize(text) {
			h := fnv.New32a()
			h.Write([]byte(word))
			vec[h.Sum32()%uint32(e.dims)]++
		}
		out[i] = vec
	}
	return out, nil
}

func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if _, skip := stopWords[w]; !skip {
			out = append(out, w)
		}
	}
	return out
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "to": {}, "of": {}, "and": {}, "or": {},
	"i": {}, "my": {}, "me": {}, "is": {}, "it": {}, "has": {}, "have": {},
	"would": {}, "like": {}, "with": {}, "for": {}, "do": {}, "does": {},
}
