package router

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog       = errors.New("intent catalog is empty")
	ErrEmptyIntent        = errors.New("intent key is empty")
	ErrDuplicateIntent    = errors.New("intent key is declared twice")
	ErrNoDefault          = errors.New("no intent is marked default")
	ErrMultipleDefaults   = errors.New("more than one intent is marked default")
	ErrMalformedTemplate  = errors.New("malformed prompt template")
	ErrUnknownPlaceholder = errors.New("prompt template uses an unknown placeholder")
	ErrEmptyUtterance     = errors.New("utterance is empty")
)

// ConfigurationError reports a catalog the router cannot be built from.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: configuration: %s", LogPrefix, e.Reason)
	}
	return fmt.Sprintf("%s: configuration: %s: %v", LogPrefix, e.Reason, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CompletionError wraps a failed completion call for the routed intent.
type CompletionError struct {
	Intent string
	Err    error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s: completion for intent %q failed: %v", LogPrefix, e.Intent, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

func configErr(reason string, err error) error {
	return &ConfigurationError{Reason: reason, Err: err}
}
