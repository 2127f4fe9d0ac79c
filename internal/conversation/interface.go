package conversation

import (
	"context"

	"assistant-kit/internal/model"
)

// Log is an append-only, per-session conversation history.
// Implementations are safe for concurrent use.
type Log interface {
	// Append stores turns at the end of the session log, in order.
	Append(ctx context.Context, sessionID string, turns ...model.Turn) error

	// ReadAll returns the session log in insertion order. Unknown sessions are empty.
	ReadAll(ctx context.Context, sessionID string) ([]model.Turn, error)

	// Clear drops every turn of the session.
	Clear(ctx context.Context, sessionID string) error
}
