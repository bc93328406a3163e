package request

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a request id does not resolve.
	ErrNotFound = errors.New("request not found")

	// ErrDuplicate is returned when an active request already exists for
	// the same patient identity and room.
	ErrDuplicate = errors.New("an active request already exists for this patient and room")
)

// ValidationError reports a missing or malformed input field. It is
// raised before classification or persistence runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// TransitionError reports an illegal status transition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition request from %s to %s", e.From, e.To)
}
