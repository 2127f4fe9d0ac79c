package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"assistant-kit/pkg/llmprovider"
	pkgLog "assistant-kit/pkg/log"
)

// LLMExtractor asks the model to call the information_extraction tool with
// a list of candidates. Models that answer in text instead are parsed as JSON.
type LLMExtractor struct {
	gen Generator
	l   pkgLog.Logger
}

var _ Extractor = (*LLMExtractor)(nil)

// NewLLMExtractor creates an extractor backed by gen.
func NewLLMExtractor(gen Generator, l pkgLog.Logger) *LLMExtractor {
	return &LLMExtractor{gen: gen, l: l}
}

// Extract implements Extractor.
func (e *LLMExtractor) Extract(ctx context.Context, text string, schema *Schema) ([]*Record, error) {
	req := &llmprovider.Request{
		Messages: []llmprovider.Message{
			llmprovider.UserText(fmt.Sprintf(extractionPrompt, text) + jsonFallbackInstruction),
		},
		Tools: []llmprovider.Tool{{
			Name:        ToolName,
			Description: toolDescription,
			Parameters:  toolParameters(schema),
		}},
		ToolChoice:  ToolName,
		Temperature: 0,
	}

	resp, err := e.gen.GenerateContent(ctx, req)
	if err != nil {
		return nil, err
	}

	items, err := candidatesFrom(resp)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(items))
	for _, item := range items {
		rec, violations := DecodeCandidate(schema, item)
		for _, v := range violations {
			e.l.Warnf(ctx, "%s.Extract: dropped %s", LogPrefix, v)
		}
		records = append(records, rec)
	}

	e.l.Debugf(ctx, "%s.Extract: %d candidate(s) for schema %s", LogPrefix, len(records), schema.Name)
	return records, nil
}

// candidatesFrom reads the tool arguments, or JSON in the text body.
func candidatesFrom(resp *llmprovider.Response) ([]map[string]any, error) {
	if fc := resp.FunctionCall(); fc != nil {
		if _, ok := fc.Args[toolArgument]; !ok {
			return []map[string]any{fc.Args}, nil
		}
		return objectList(fc.Args[toolArgument])
	}

	raw := stripCodeFence(resp.Text())
	if raw == "" {
		return nil, ErrNoOutput
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoOutput, err)
	}
	if obj, ok := parsed.(map[string]any); ok {
		if info, ok := obj[toolArgument]; ok {
			return objectList(info)
		}
		return []map[string]any{obj}, nil
	}
	return objectList(parsed)
}

func objectList(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is %T", ErrNoOutput, toolArgument, v)
	}
}

// stripCodeFence trims a ```json ... ``` wrapper and any prose around the
// outermost JSON value.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimPrefix(text, "json")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return ""
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end < start {
		return ""
	}
	return text[start : end+1]
}
