package rope

import (
	"iter"
	"unicode/utf8"
)

// HintKind says how much a SizeHint knows about the remaining elements.
type HintKind uint8

const (
	// HintUnknown means the iterator cannot tell how many elements remain.
	HintUnknown HintKind = iota

	// HintExactly means exactly N elements remain.
	HintExactly

	// HintInfinite means the iterator never runs out.
	HintInfinite
)

// String returns the hint kind name.
func (k HintKind) String() string {
	switch k {
	case HintExactly:
		return "exactly"
	case HintInfinite:
		return "infinite"
	default:
		return "unknown"
	}
}

// SizeHint estimates the number of elements an iterator will still produce.
type SizeHint struct {
	Kind HintKind
	N    int
}

// Exactly returns a hint for exactly n remaining elements.
func Exactly(n int) SizeHint {
	return SizeHint{Kind: HintExactly, N: n}
}

// Underestimate returns a lower bound on the remaining elements.
func (h SizeHint) Underestimate() int {
	if h.Kind == HintExactly {
		return h.N
	}
	return 0
}

// Iterator produces elements in order. It is consumed linearly and cannot
// be restarted once exhausted.
type Iterator[T any] interface {
	// Next returns the next element, or false when the iterator is exhausted.
	Next() (T, bool)

	// SizeHint estimates the remaining elements.
	SizeHint() SizeHint
}

// Collect drains it into a slice. It panics on infinite iterators.
func Collect[T any](it Iterator[T]) []T {
	hint := it.SizeHint()
	if hint.Kind == HintInfinite {
		panic("rope: Collect on an infinite iterator")
	}
	out := make([]T, 0, hint.Underestimate())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out
}

// Nth discards n elements and returns the one after them.
func Nth[T any](it Iterator[T], n int) (T, bool) {
	for ; n > 0; n-- {
		if _, ok := it.Next(); !ok {
			var zero T
			return zero, false
		}
	}
	return it.Next()
}

// All adapts it for use in a range loop.
func All[T any](it Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// SliceIterator iterates over the elements of a slice.
type SliceIterator[T any] struct {
	items []T
	pos   int
}

// FromSlice returns an iterator over items. The slice is not copied.
func FromSlice[T any](items []T) *SliceIterator[T] {
	return &SliceIterator[T]{items: items}
}

// Next returns the next element.
func (it *SliceIterator[T]) Next() (T, bool) {
	if it.pos >= len(it.items) {
		var zero T
		return zero, false
	}
	v := it.items[it.pos]
	it.pos++
	return v, true
}

// SizeHint returns the exact number of remaining elements.
func (it *SliceIterator[T]) SizeHint() SizeHint {
	return Exactly(len(it.items) - it.pos)
}

// ChunkIterator iterates over the chunks of a sequence.
type ChunkIterator struct {
	seq    *Sequence
	pos    int
	offset int
}

// Chunks returns an iterator over all chunks in the sequence.
func (s *Sequence) Chunks() *ChunkIterator {
	return &ChunkIterator{seq: s}
}

// Next returns the next chunk.
func (it *ChunkIterator) Next() (Chunk, bool) {
	if it.pos >= len(it.seq.chunks) {
		return Chunk{}, false
	}
	c := it.seq.chunks[it.pos]
	it.offset = it.seq.starts[it.pos]
	it.pos++
	return c, true
}

// Offset returns the byte offset of the start of the chunk last returned.
func (it *ChunkIterator) Offset() int {
	return it.offset
}

// SizeHint returns the exact number of remaining chunks.
func (it *ChunkIterator) SizeHint() SizeHint {
	return Exactly(len(it.seq.chunks) - it.pos)
}

// ScalarIterator iterates over the scalars of a chunk.
type ScalarIterator struct {
	chunk Chunk
	off   int
	left  int
}

// Scalars returns an iterator over the scalars of the chunk.
func (c Chunk) Scalars() *ScalarIterator {
	return &ScalarIterator{chunk: c, left: c.summary.Scalars}
}

// Next returns the next scalar.
func (it *ScalarIterator) Next() (rune, bool) {
	if it.off >= len(it.chunk.text) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(it.chunk.text[it.off:])
	it.off += size
	it.left--
	return r, true
}

// Index returns the aligned index of the next scalar.
func (it *ScalarIterator) Index() Index {
	return IndexAt(it.off).scalarAligned()
}

// SizeHint returns the exact number of remaining scalars.
func (it *ScalarIterator) SizeHint() SizeHint {
	return Exactly(it.left)
}

// ByteIterator iterates over the bytes of a chunk.
type ByteIterator struct {
	text string
	off  int
}

// Bytes returns an iterator over the bytes of the chunk.
func (c Chunk) Bytes() *ByteIterator {
	return &ByteIterator{text: c.text}
}

// Next returns the next byte.
func (it *ByteIterator) Next() (byte, bool) {
	if it.off >= len(it.text) {
		return 0, false
	}
	b := it.text[it.off]
	it.off++
	return b, true
}

// SizeHint returns the exact number of remaining bytes.
func (it *ByteIterator) SizeHint() SizeHint {
	return Exactly(len(it.text) - it.off)
}
