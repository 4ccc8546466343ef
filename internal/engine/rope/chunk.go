package rope

import (
	"fmt"
	"math/bits"
	"unicode/utf8"
	"unsafe"

	"github.com/rivo/uniseg"
)

// Chunk size constants control the granularity of text storage.
const (
	// MaxChunkSize is the maximum bytes per chunk. Offsets inside a chunk
	// must fit in a single byte.
	MaxChunkSize = 255

	// MinChunkSize is the smallest target size a Builder accepts. It is the
	// longest UTF-8 encoding of a scalar.
	MinChunkSize = utf8.UTFMax

	// TargetChunkSize is the preferred chunk size when building.
	TargetChunkSize = 192
)

// breakSet is a bitmap of grapheme cluster boundaries, one bit per byte
// offset in [0, MaxChunkSize).
type breakSet [4]uint64

func (b *breakSet) set(off int) {
	b[off>>6] |= 1 << (off & 63)
}

func (b *breakSet) has(off int) bool {
	return b[off>>6]&(1<<(off&63)) != 0
}

// next returns the smallest break greater than off, or -1.
func (b *breakSet) next(off int) int {
	off++
	for w := off >> 6; w < len(b); w++ {
		word := b[w]
		if w == off>>6 {
			word &= ^uint64(0) << (off & 63)
		}
		if word != 0 {
			return w<<6 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// atOrBefore returns the largest break not greater than off, or -1.
func (b *breakSet) atOrBefore(off int) int {
	if off < 0 {
		return -1
	}
	for w := off >> 6; w >= 0; w-- {
		word := b[w]
		if w == off>>6 && off&63 != 63 {
			word &= uint64(1)<<(off&63+1) - 1
		}
		if word != 0 {
			return w<<6 + 63 - bits.LeadingZeros64(word)
		}
	}
	return -1
}

// prev returns the largest break less than off, or -1.
func (b *breakSet) prev(off int) int {
	return b.atOrBefore(off - 1)
}

// count returns the number of breaks in [from, to).
func (b *breakSet) count(from, to int) int {
	n := 0
	for off := b.next(from - 1); off >= 0 && off < to; off = b.next(off) {
		n++
	}
	return n
}

func (b *breakSet) len() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Chunk is a bounded string stored in the leaves of a rope.
// Chunks are immutable once created.
//
// A grapheme cluster may straddle chunk edges: firstBreak and lastBreak are
// the first and last cluster boundaries that fall inside the chunk. A chunk
// without any boundary lies entirely inside a cluster that started in an
// earlier chunk.
type Chunk struct {
	text       string
	summary    Summary
	breaks     breakSet
	firstBreak uint8
	lastBreak  uint8
}

// NewChunk creates a self-contained chunk from text: the first byte starts
// a grapheme cluster and clusters are segmented without outside context.
func NewChunk(text string) (Chunk, error) {
	if len(text) > MaxChunkSize {
		return Chunk{}, fmt.Errorf("%w: %d bytes", ErrChunkTooLarge, len(text))
	}
	if !utf8.ValidString(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	return newChunk(text, graphemeStarts(text, nil)), nil
}

// newChunk builds a chunk from validated text and the byte offsets of the
// grapheme clusters starting inside it, in increasing order.
func newChunk(text string, starts []int) Chunk {
	c := Chunk{
		text:       text,
		firstBreak: uint8(len(text)),
		lastBreak:  uint8(len(text)),
	}
	for _, off := range starts {
		c.breaks.set(off)
	}
	if len(starts) > 0 {
		c.firstBreak = uint8(starts[0])
		c.lastBreak = uint8(starts[len(starts)-1])
	}
	c.summary = summarize(text)
	c.summary.Characters = len(starts)
	return c
}

// graphemeStarts appends the offsets of the grapheme clusters in text to dst.
func graphemeStarts(text string, dst []int) []int {
	state := -1
	off := 0
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		dst = append(dst, off)
		off += len(cluster)
	}
	return dst
}

// String returns the chunk's text.
func (c Chunk) String() string {
	return c.text
}

// Summary returns the chunk's precomputed counts.
func (c Chunk) Summary() Summary {
	return c.summary
}

// Len returns the byte length of the chunk.
func (c Chunk) Len() int {
	return len(c.text)
}

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool {
	return len(c.text) == 0
}

// HasBreaks reports whether any grapheme cluster starts inside the chunk.
func (c Chunk) HasBreaks() bool {
	return c.summary.Characters > 0
}

// FirstBreak returns the offset of the first grapheme boundary, or Len if
// the chunk has none.
func (c Chunk) FirstBreak() int {
	return int(c.firstBreak)
}

// LastBreak returns the offset of the last grapheme boundary, or Len if
// the chunk has none.
func (c Chunk) LastBreak() int {
	return int(c.lastBreak)
}

// IsBreak reports whether a grapheme cluster starts at off.
func (c Chunk) IsBreak(off int) bool {
	return off >= 0 && off < len(c.text) && c.breaks.has(off)
}

// StartIndex returns the aligned index of the chunk start.
func (c Chunk) StartIndex() Index {
	return Index{}.characterAligned()
}

// EndIndex returns the aligned index of the chunk end.
func (c Chunk) EndIndex() Index {
	return IndexAt(len(c.text)).characterAligned()
}

// checkIndex panics if i lies outside the chunk.
func (c Chunk) checkIndex(i Index) {
	if int(i.offset) > len(c.text) {
		panic(fmt.Sprintf("rope: index %d out of range [0, %d]", i.offset, len(c.text)))
	}
}

// isScalarStart returns true if the byte is the start of a UTF-8 sequence.
func isScalarStart(b byte) bool {
	// Continuation bytes are 10xxxxxx.
	return b&0xC0 != 0x80
}

// scalarLen returns the encoded length of the scalar whose lead byte is b.
func scalarLen(b byte) int {
	if n := bits.LeadingZeros8(^b); n > 1 {
		return n
	}
	return 1
}

// scalarAfter returns the offset of the scalar following the one at off.
func (c Chunk) scalarAfter(off int) int {
	return off + scalarLen(c.text[off])
}

// scalarBefore returns the offset of the scalar preceding off.
func (c Chunk) scalarBefore(off int) int {
	off--
	for off > 0 && !isScalarStart(c.text[off]) {
		off--
	}
	return off
}

// SharedStorage reports whether a and b are backed by the same bytes.
// A false result says nothing about their contents.
func SharedStorage(a, b Chunk) bool {
	if len(a.text) != len(b.text) {
		return false
	}
	return len(a.text) == 0 || unsafe.StringData(a.text) == unsafe.StringData(b.text)
}

// ContentEqual reports whether a and b hold the same text.
func ContentEqual(a, b Chunk) bool {
	return SharedStorage(a, b) || a.text == b.text
}
