package conversation

import "errors"

var (
	ErrEmptySessionID = errors.New("session id is empty")
	ErrInvalidTurn    = errors.New("turn has an unknown role")
	ErrUnknownBackend = errors.New("unknown conversation log backend")
)
