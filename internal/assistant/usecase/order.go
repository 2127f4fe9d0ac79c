package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"assistant-kit/internal/assistant"
	"assistant-kit/internal/conversation"
	"assistant-kit/internal/metrics"
	"assistant-kit/internal/router"
)

// Order renders the sales prompt from the record so far, completes it and
// then records the turn. A failed extraction leaves the record and the log
// untouched and is returned to the caller.
func (uc *implUseCase) Order(ctx context.Context, input assistant.OrderInput) (assistant.OrderOutput, error) {
	if strings.TrimSpace(input.Message) == "" {
		return assistant.OrderOutput{}, assistant.ErrEmptyMessage
	}
	s, err := uc.lockSession(input.SessionID)
	if err != nil {
		return assistant.OrderOutput{}, err
	}
	defer s.mu.Unlock()

	start := time.Now()
	history, err := s.order.History(ctx)
	if err != nil {
		return assistant.OrderOutput{}, fmt.Errorf("%s.Order: read history: %w", LogPrefix, err)
	}

	details, err := renderOrder(s.order.Snapshot())
	if err != nil {
		return assistant.OrderOutput{}, fmt.Errorf("%s.Order: %w", LogPrefix, err)
	}

	prompt := uc.sales.Render(map[string]string{
		varOrderDetails:       details,
		varMissing:            renderMissing(s.order.Missing()),
		router.VarChatHistory: conversation.FormatBuffer(conversation.Window(history, uc.cfg.HistoryWindow)),
		router.VarInput:       input.Message,
	})

	reply, err := uc.completer.Complete(ctx, prompt)
	if err != nil {
		uc.l.Errorf(ctx, "%s.Order: session=%s: %v", LogPrefix, s.id, err)
		return assistant.OrderOutput{}, &router.CompletionError{Intent: orderIntent, Err: err}
	}

	if err := s.order.RecordTurn(ctx, input.Message, reply); err != nil {
		return assistant.OrderOutput{}, err
	}
	metrics.ObserveTurn(uc.cfg.Backend, time.Since(start))

	return assistant.OrderOutput{
		Reply:   reply,
		Order:   s.order.Snapshot(),
		Missing: s.order.Missing(),
	}, nil
}

// OrderDetails returns the record collected so far.
func (uc *implUseCase) OrderDetails(ctx context.Context, sessionID string) (assistant.OrderDetailsOutput, error) {
	s, err := uc.lockSession(sessionID)
	if err != nil {
		return assistant.OrderDetailsOutput{}, err
	}
	defer s.mu.Unlock()

	return assistant.OrderDetailsOutput{
		Order:   s.order.Snapshot(),
		Missing: s.order.Missing(),
	}, nil
}

func renderOrder(snapshot map[string]any) (string, error) {
	b, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func renderMissing(paths []string) string {
	if len(paths) == 0 {
		return nothingMissing
	}
	return strings.Join(paths, ", ")
}
