// Package rope provides the chunk layer of a rope: bounded immutable text
// chunks and the metrics used to navigate them.
//
// A Chunk holds at most MaxChunkSize bytes of UTF-8 text together with a
// precomputed Summary and a bitmap of grapheme cluster boundaries. Positions
// inside a chunk are Index values: a byte offset plus alignment flags.
//
// Four metrics describe the same text in different units:
//   - Bytes counts UTF-8 code units
//   - UTF16 counts UTF-16 code units (for LSP compatibility)
//   - Scalars counts Unicode scalar values
//   - Characters counts extended grapheme clusters
//
// Every metric can measure the distance between two indices, move an index
// by a number of units, and round an index down to its own alignment. Walks
// that run off a chunk report a residual count so the caller can continue in
// the neighbouring chunk. Sequence does exactly that for an ordered list of
// chunks built by Builder:
//
//	b := rope.NewBuilder()
//	b.WriteString("naïve café 👋🏽")
//	seq, _ := b.Build()
//	pos, ok := seq.IndexOf(rope.Characters, 11) // the waving hand
//	units := seq.Measure(rope.UTF16, seq.Start(), pos)
//
// Chunks are immutable, so all operations are safe for concurrent use.
package rope
