package assistant

import "context"

// UseCase is the business surface of the assistant.
type UseCase interface {
	// NewSession starts a session with an empty order record.
	NewSession(ctx context.Context) (Session, error)

	// Chat routes one message to the best-matching intent prompt.
	Chat(ctx context.Context, input ChatInput) (ChatOutput, error)

	// Order runs one shoe sales turn and folds the message into the order record.
	Order(ctx context.Context, input OrderInput) (OrderOutput, error)

	// OrderDetails returns the order record collected so far.
	OrderDetails(ctx context.Context, sessionID string) (OrderDetailsOutput, error)

	// History returns the chat and order conversation logs of a session.
	History(ctx context.Context, sessionID string) (HistoryOutput, error)

	// ResetSession forgets a session and clears its logs.
	ResetSession(ctx context.Context, sessionID string) error
}
