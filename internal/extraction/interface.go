package extraction

import (
	"context"

	"assistant-kit/pkg/llmprovider"
)

// Extractor pulls 0..n candidate records for schema out of text.
// Implementations are safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, text string, schema *Schema) ([]*Record, error)
}

// Generator is the LLM surface the extractor needs; *llmprovider.Manager satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(ctx context.Context, text string, schema *Schema) ([]*Record, error)

func (f ExtractorFunc) Extract(ctx context.Context, text string, schema *Schema) ([]*Record, error) {
	return f(ctx, text, schema)
}
