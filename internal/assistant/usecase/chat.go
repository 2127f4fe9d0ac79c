package usecase

import (
	"context"
	"strings"
	"time"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/metrics"
	"assistant-kit/internal/router"
)

// Chat routes one message. The router's memory records the turn. When the
// completion succeeded but recording it failed, the reply is still returned
// and the failure is logged.
func (uc *implUseCase) Chat(ctx context.Context, input assistant.ChatInput) (assistant.ChatOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return assistant.ChatOutput{}, assistant.ErrEmptyMessage
	}
	s, err := uc.lockSession(input.SessionID)
	if err != nil {
		return assistant.ChatOutput{}, err
	}
	defer s.mu.Unlock()

	start := time.Now()
	resp, err := uc.router.Route(ctx, router.RouteInput{SessionID: s.id, Utterance: input.Message})
	if err != nil {
		if resp.Text == "" {
			uc.l.Errorf(ctx, "%s.Chat: session=%s: %v", LogPrefix, s.id, err)
			return assistant.ChatOutput{}, err
		}
		uc.l.Warnf(ctx, "%s.Chat: session=%s: reply not recorded: %v", LogPrefix, s.id, err)
	}
	metrics.ObserveTurn(uc.cfg.Backend, time.Since(start))

	return assistant.ChatOutput{
		Reply:    resp.Text,
		Intent:   resp.Intent,
		Score:    resp.Score,
		Fallback: resp.Fallback,
	}, nil
}
