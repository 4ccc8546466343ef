// Package diff computes minimal edit scripts between two chunk sequences.
//
// The unit of comparison is a whole rope.Chunk: two sequences are treated as
// lists of chunks and no attempt is made to diff text inside a chunk. The
// search is the linear-space variant of Myers' O(ND) algorithm. It finds the
// middle snake of the edit graph, splits the problem into the boxes before
// and after it, and recurses until each box is trivial.
//
// The result is a list of Edit values in increasing offset order on both
// sides. Deletes address byte ranges of the old text, inserts address byte
// ranges of the new text:
//
//	edits, err := diff.ComputeSequences(oldSeq, newSeq, diff.DefaultOptions())
//	if errors.Is(err, diff.ErrTooLarge) {
//	    // fall back to replacing everything
//	}
//	text, err := diff.Apply(oldSeq.String(), newSeq.String(), edits)
//
// When several shortest scripts exist, any one of them may be returned.
//
// Chunk equality is pluggable through Options.Equal. The default compares
// chunk content and short-circuits when both chunks share storage.
package diff
