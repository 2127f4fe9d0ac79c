package llmprovider

import (
	"context"
	"fmt"
	"strings"
)

// Completer turns a fully rendered prompt into assistant text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var _ Completer = (*Manager)(nil)

// Complete sends prompt as a single user message and returns the text reply.
func (m *Manager) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, &Request{
		Messages:    []Message{UserText(prompt)},
		Temperature: m.config.Temperature,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w from %s", ErrEmptyResponse, resp.ProviderName)
	}
	return text, nil
}
