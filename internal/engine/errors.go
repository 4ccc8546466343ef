package engine

import (
	"errors"

	"github.com/dshills/ropekit/internal/engine/diff"
	"github.com/dshills/ropekit/internal/engine/rope"
)

// Errors returned by engine operations.
var (
	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrVerifyFailed indicates an edit script did not reproduce the new text.
	ErrVerifyFailed = errors.New("edit script does not reproduce new text")

	// ErrTooLarge indicates a diff exceeded its step budget.
	ErrTooLarge = diff.ErrTooLarge

	// ErrInvalidUTF8 indicates input that is not well-formed UTF-8.
	ErrInvalidUTF8 = rope.ErrInvalidUTF8
)
