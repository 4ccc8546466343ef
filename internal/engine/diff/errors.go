package diff

import (
	"errors"
	"fmt"
)

// Errors returned by diff operations.
var (
	// ErrTooLarge indicates the search exceeded its step budget.
	ErrTooLarge = errors.New("diff too large")

	// ErrInvalidScript indicates an edit script that cannot be applied.
	ErrInvalidScript = errors.New("invalid edit script")

	// ErrUnbounded indicates an input iterator that never ends.
	ErrUnbounded = errors.New("unbounded input")
)

// TooLargeError reports how much work was spent before the budget ran out.
type TooLargeError struct {
	Steps int
	Limit int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("diff too large: %d steps exceeds budget of %d", e.Steps, e.Limit)
}

// Unwrap returns ErrTooLarge so callers can match with errors.Is.
func (e *TooLargeError) Unwrap() error {
	return ErrTooLarge
}
