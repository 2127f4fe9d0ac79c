package assistant

import "errors"

// Domain-specific errors for the assistant package.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptySessionID  = errors.New("session id is empty")
	ErrEmptyMessage    = errors.New("message is empty")
)
