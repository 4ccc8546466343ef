package engine

import (
	"log/slog"

	"github.com/dshills/ropekit/internal/engine/diff"
	"github.com/dshills/ropekit/internal/engine/rope"
)

// Default configuration values.
const (
	DefaultChunkSize    = rope.TargetChunkSize
	DefaultMaxSteps     = diff.DefaultMaxSteps
	DefaultMaxSnapshots = 16
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithChunkSize sets the target chunk size used when splitting text.
// Values are clamped to the range rope.Builder accepts.
func WithChunkSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.chunkSize = size
		}
	}
}

// WithMaxSteps sets the diff step budget. Negative disables it.
func WithMaxSteps(steps int) Option {
	return func(e *Engine) {
		if steps != 0 {
			e.maxSteps = steps
		}
	}
}

// WithCoalesce controls merging of adjacent changes.
func WithCoalesce(coalesce bool) Option {
	return func(e *Engine) {
		e.coalesce = coalesce
	}
}

// WithEqual sets the chunk comparison used by diffs.
func WithEqual(eq diff.EqualFunc) Option {
	return func(e *Engine) {
		if eq != nil {
			e.equal = eq
		}
	}
}

// WithLogger sets the logger for engine and diff debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxSnapshots sets how many snapshots are retained.
func WithMaxSnapshots(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxSnapshots = max
		}
	}
}
