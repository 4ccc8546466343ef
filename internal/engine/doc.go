// Package engine is the facade over the rope and diff packages.
//
// An Engine owns one configuration (chunk size, diff budget, chunk
// equality, coalescing, logger) and applies it consistently when splitting
// text into chunks and when diffing chunk sequences.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - rope: bounded immutable chunks, the four position metrics, and the
//     Builder and Sequence types that join chunks into text
//   - diff: chunk-granular Myers diff producing insert and delete edits
//
// # Thread Safety
//
// All Engine operations are thread-safe. Chunks and sequences are
// immutable, and the engine only guards its counters and snapshot table.
//
// # Basic Usage
//
//	e := engine.New(engine.WithChunkSize(64))
//
//	res, err := e.Diff(oldText, newText)
//	if errors.Is(err, engine.ErrTooLarge) {
//	    // the inputs differ too much for the configured budget
//	}
//	for _, edit := range res.Edits {
//	    fmt.Println(edit) // delete(12..<40), insert(12..<19), ...
//	}
//
// # Snapshots
//
// Snapshots keep a chunked copy of text under a name, so a later version
// can be diffed against it:
//
//	e.Snapshot("main.go", before)
//	res, err := e.DiffSince("main.go", after)
//
// Only the most recent snapshots are kept; see WithMaxSnapshots.
package engine
