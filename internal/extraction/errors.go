package extraction

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema  = errors.New("invalid extraction schema")
	ErrUnknownField   = errors.New("unknown field")
	ErrNotLeaf        = errors.New("field is a nested group")
	ErrNotGroup       = errors.New("field is not a nested group")
	ErrSchemaMismatch = errors.New("record schemas differ")
	ErrNoOutput       = errors.New("model returned neither a function call nor JSON")
)

// ExtractionError wraps a failed extraction call. The record and the
// conversation log are left untouched when it is returned.
type ExtractionError struct {
	Schema string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: extraction for schema %s failed: %v", LogPrefix, e.Schema, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Violation reports a candidate value that was dropped while decoding.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Reason
}
