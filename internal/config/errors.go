package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileNotFound is returned when an explicitly named file is missing.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidValue is wrapped by every ValidationError.
	ErrInvalidValue = errors.New("invalid value")
)

// ParseError reports a configuration file that could not be decoded.
// Line and Column are zero when the decoder gave no position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("parse error in ")
	sb.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&sb, ", column %d", e.Column)
		}
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError names a setting, by its dotted key such as
// "output.format", whose value is out of range.
type ValidationError struct {
	Key     string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid value %v: %s", e.Key, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidValue }
