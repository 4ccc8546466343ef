package diff

import (
	"log/slog"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// DefaultMaxSteps is the step budget used when Options.MaxSteps is zero.
// One step is one frontier update or one chunk comparison.
const DefaultMaxSteps = 50_000_000

// EqualFunc reports whether two chunks should be treated as a match.
type EqualFunc func(a, b rope.Chunk) bool

// Options configures diff computation.
type Options struct {
	// Equal compares chunks. Nil means rope.ContentEqual.
	Equal EqualFunc

	// MaxSteps bounds the search. Zero means DefaultMaxSteps and a
	// negative value disables the budget.
	MaxSteps int

	// Coalesce merges each run of changes between two matching chunks
	// into at most one delete followed by at most one insert.
	Coalesce bool

	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the default diff options.
func DefaultOptions() Options {
	return Options{
		Equal:    rope.ContentEqual,
		MaxSteps: DefaultMaxSteps,
		Coalesce: true,
	}
}

func (o Options) equal() EqualFunc {
	if o.Equal == nil {
		return rope.ContentEqual
	}
	return o.Equal
}

// limit returns the effective budget, or -1 for none.
func (o Options) limit() int {
	switch {
	case o.MaxSteps == 0:
		return DefaultMaxSteps
	case o.MaxSteps < 0:
		return -1
	default:
		return o.MaxSteps
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
