package assistant

import (
	"time"

	"assistant-kit/internal/model"
)

// Session identifies one conversation.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatInput is one message for the intent router.
type ChatInput struct {
	SessionID string
	Message   string
}

// ChatOutput is the routed reply.
type ChatOutput struct {
	Reply    string
	Intent   string
	Score    float64
	Fallback bool
}

// OrderInput is one message for the shoe sales agent.
type OrderInput struct {
	SessionID string
	Message   string
}

// OrderOutput is the sales agent's reply and the order after the turn.
type OrderOutput struct {
	Reply   string
	Order   map[string]any
	Missing []string
}

// OrderDetailsOutput is the order record collected so far.
type OrderDetailsOutput struct {
	Order   map[string]any
	Missing []string
}

// HistoryOutput holds both conversation logs of a session.
type HistoryOutput struct {
	Chat  []model.Turn
	Order []model.Turn
}
