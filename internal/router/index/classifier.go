package index

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"assistant-kit/pkg/llmprovider"
	"assistant-kit/pkg/log"
)

// classification is the JSON reply the classifier asks for.
type classification struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"` // 0-100
	Reasoning  string  `json:"reasoning"`
}

// Classifier asks the LLM to pick an intent. An unknown intent, an
// unparsable reply or a confidence below minConfidence is not a match.
type Classifier struct {
	completer     llmprovider.Completer
	minConfidence float64
	l             log.Logger

	mu      sync.RWMutex
	entries []Entry
}

var _ Index = (*Classifier)(nil)

// NewClassifier creates an LLM classifier. minConfidence is on a 0..1 scale.
func NewClassifier(completer llmprovider.Completer, minConfidence float64, l log.Logger) *Classifier {
	return &Classifier{completer: completer, minConfidence: minConfidence, l: l}
}

// Build stores the entries; nothing is sent to the model.
func (c *Classifier) Build(_ context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	c.mu.Lock()
	c.entries = append([]Entry(nil), entries...)
	c.mu.Unlock()
	return nil
}

// Query classifies text with one completion call.
func (c *Classifier) Query(ctx context.Context, text string) (Match, bool, error) {
	c.mu.RLock()
	entries := c.entries
	c.mu.RUnlock()
	if len(entries) == 0 {
		return Match{}, false, ErrNotBuilt
	}

	var list strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&list, "%d. %s: %s\n", i+1, e.Key, e.Description)
	}

	reply, err := c.completer.Complete(ctx, fmt.Sprintf(classifierPrompt, list.String(), text))
	if err != nil {
		return Match{}, false, fmt.Errorf("%s.Classifier.Query: %w", LogPrefix, err)
	}

	out, err := parseClassification(reply)
	if err != nil {
		c.l.Warnf(ctx, "%s.Classifier.Query: %v", LogPrefix, err)
		return Match{}, false, nil
	}

	score := out.Confidence / 100
	for _, e := range entries {
		if strings.EqualFold(e.Key, strings.TrimSpace(out.Intent)) {
			c.l.Debugf(ctx, "%s.Classifier.Query: classified as %s (confidence: %.0f%%)", LogPrefix, e.Key, out.Confidence)
			return Match{Key: e.Key, Score: score}, score >= c.minConfidence, nil
		}
	}

	c.l.Infof(ctx, "%s.Classifier.Query: no known intent in reply %q", LogPrefix, out.Intent)
	return Match{}, false, nil
}

func parseClassification(reply string) (classification, error) {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimPrefix(text, "json")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	var out classification
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return classification{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return out, nil
}
