package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/ropekit/internal/engine/diff"
	"github.com/dshills/ropekit/internal/engine/rope"
)

// Re-export commonly used types for convenience.
type (
	// Chunk is a bounded immutable piece of text.
	Chunk = rope.Chunk

	// Sequence is an ordered list of chunks.
	Sequence = rope.Sequence

	// Summary holds the byte, UTF-16, scalar and character counts of text.
	Summary = rope.Summary

	// Metric is one way of counting positions in text.
	Metric = rope.Metric

	// Position is a chunk number plus an index inside that chunk.
	Position = rope.Position

	// Edit is one step of an edit script.
	Edit = diff.Edit

	// Range is a half-open byte interval.
	Range = diff.Range

	// Op is the kind of an edit.
	Op = diff.Op
)

// Re-export constants.
const (
	OpInsert = diff.Insert
	OpDelete = diff.Delete
)

// Result is the outcome of diffing two texts.
type Result struct {
	// Old and New are the compared sequences.
	Old, New *rope.Sequence

	// Edits turns Old into New. Deletes address Old, inserts address New.
	Edits []Edit
}

// HasChanges returns true if there are any differences.
func (r *Result) HasChanges() bool {
	return len(r.Edits) > 0
}

// Inserted returns the total number of inserted bytes.
func (r *Result) Inserted() int {
	return r.count(diff.Insert)
}

// Deleted returns the total number of deleted bytes.
func (r *Result) Deleted() int {
	return r.count(diff.Delete)
}

func (r *Result) count(op diff.Op) int {
	n := 0
	for _, e := range r.Edits {
		if e.Op == op {
			n += e.Range.Len()
		}
	}
	return n
}

// Verify replays the edits against the old text and checks that the
// result equals the new text.
func (r *Result) Verify() error {
	oldText, newText := r.Old.String(), r.New.String()
	got, err := diff.Apply(oldText, newText, r.Edits)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if got != newText {
		return ErrVerifyFailed
	}
	return nil
}

// Stats counts the work an Engine has done.
type Stats struct {
	Diffs    int
	Failures int
	Edits    int
	Bytes    int
}

// Engine chunks text and diffs chunk sequences with one set of options.
// It keeps named snapshots so callers can diff text against an earlier
// version of itself.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	snapshots *snapshotStore
	stats     Stats

	// Configuration
	chunkSize    int
	maxSteps     int
	maxSnapshots int
	coalesce     bool
	equal        diff.EqualFunc
	logger       *slog.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		chunkSize:    DefaultChunkSize,
		maxSteps:     DefaultMaxSteps,
		maxSnapshots: DefaultMaxSnapshots,
		coalesce:     true,
		equal:        rope.ContentEqual,
		logger:       slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.snapshots = newSnapshotStore(e.maxSnapshots)
	return e
}

// ChunkSize returns the target chunk size.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// DiffOptions returns the options passed to the diff package.
func (e *Engine) DiffOptions() diff.Options {
	return diff.Options{
		Equal:    e.equal,
		MaxSteps: e.maxSteps,
		Coalesce: e.coalesce,
		Logger:   e.logger,
	}
}

// Chunk splits text into a sequence of chunks.
func (e *Engine) Chunk(text string) (*rope.Sequence, error) {
	b := rope.NewBuilder(rope.WithChunkSize(e.chunkSize))
	b.WriteString(text)
	return e.build(b)
}

// ChunkReader reads r to the end and splits the text into chunks.
func (e *Engine) ChunkReader(r io.Reader) (*rope.Sequence, error) {
	b := rope.NewBuilder(rope.WithChunkSize(e.chunkSize))
	if _, err := b.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return e.build(b)
}

func (e *Engine) build(b *rope.Builder) (*rope.Sequence, error) {
	seq, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("chunk: %w", err)
	}

	e.mu.Lock()
	e.stats.Bytes += seq.Len()
	e.mu.Unlock()

	e.logger.Debug("chunked text", "bytes", seq.Len(), "chunks", seq.Count())
	return seq, nil
}

// Diff chunks both texts and computes the edit script between them.
func (e *Engine) Diff(oldText, newText string) (*Result, error) {
	old, err := e.Chunk(oldText)
	if err != nil {
		return nil, fmt.Errorf("old text: %w", err)
	}
	new, err := e.Chunk(newText)
	if err != nil {
		return nil, fmt.Errorf("new text: %w", err)
	}
	return e.DiffSequences(old, new)
}

// DiffSequences computes the edit script between two sequences.
func (e *Engine) DiffSequences(old, new *rope.Sequence) (*Result, error) {
	edits, err := diff.ComputeSequences(old, new, e.DiffOptions())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats.Diffs++
	if err != nil {
		e.stats.Failures++
		return nil, err
	}
	e.stats.Edits += len(edits)

	return &Result{Old: old, New: new, Edits: edits}, nil
}

// Stats returns a copy of the engine's counters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// ============================================================================
// Snapshots
// ============================================================================

// Snapshot chunks text and stores it under name, replacing any earlier
// snapshot with that name. The oldest snapshots are dropped once more than
// the configured maximum exist.
func (e *Engine) Snapshot(name, text string) (*Snapshot, error) {
	seq, err := e.Chunk(text)
	if err != nil {
		return nil, err
	}
	snap, evicted := e.snapshots.put(name, seq)
	if evicted > 0 {
		e.logger.Debug("pruned snapshots", "removed", evicted)
	}
	return snap, nil
}

// GetSnapshot retrieves a snapshot by name.
func (e *Engine) GetSnapshot(name string) (*Snapshot, error) {
	snap, ok := e.snapshots.get(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrSnapshotNotFound)
	}
	return snap, nil
}

// DeleteSnapshot removes a snapshot by name.
func (e *Engine) DeleteSnapshot(name string) {
	e.snapshots.remove(name)
}

// Snapshots returns all snapshots, oldest first.
func (e *Engine) Snapshots() []*Snapshot {
	return e.snapshots.list()
}

// DiffSince diffs the named snapshot against text.
func (e *Engine) DiffSince(name, text string) (*Result, error) {
	snap, err := e.GetSnapshot(name)
	if err != nil {
		return nil, err
	}
	new, err := e.Chunk(text)
	if err != nil {
		return nil, err
	}
	return e.DiffSequences(snap.Sequence(), new)
}

// DiffSnapshots diffs two named snapshots.
func (e *Engine) DiffSnapshots(from, to string) (*Result, error) {
	a, err := e.GetSnapshot(from)
	if err != nil {
		return nil, err
	}
	b, err := e.GetSnapshot(to)
	if err != nil {
		return nil, err
	}
	return e.DiffSequences(a.Sequence(), b.Sequence())
}
