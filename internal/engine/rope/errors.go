package rope

import "errors"

// Errors returned when constructing chunks and sequences.
var (
	// ErrChunkTooLarge indicates text longer than MaxChunkSize bytes.
	ErrChunkTooLarge = errors.New("chunk exceeds maximum size")

	// ErrInvalidUTF8 indicates text that is not well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)
