package quote

import (
	"errors"
	"fmt"
)

// ValidationError - a required field is empty or a value is out of range.
// Recoverable: the caller re-prompts, state is unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IndexError - an operation referenced a line item that does not exist.
// Indicates an out-of-sync caller; handled defensively, state is unchanged.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("line item index %d out of range (have %d items)", e.Index, e.Len)
}

// ErrNotEditing - CommitEdit was called with no edit in flight.
var ErrNotEditing = errors.New("no line item is being edited")
