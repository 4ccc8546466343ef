package rope

import (
	"fmt"
	"strings"
)

// indexFlags records which metrics an Index is known to be aligned to.
type indexFlags uint8

const (
	flagScalarAligned indexFlags = 1 << iota
	flagCharacterAligned
	flagUTF16Trailing

	flagMask = flagScalarAligned | flagCharacterAligned | flagUTF16Trailing
)

// Index is a position inside a single chunk: a byte offset in [0, 255]
// plus alignment flags.
//
// A character-aligned index is always scalar-aligned. The trailing flag
// marks the position between the two UTF-16 code units of a supplementary
// scalar starting at the offset.
//
// Index is a plain value. It is only meaningful together with the chunk it
// was produced for.
type Index struct {
	offset uint8
	flags  indexFlags
}

// IndexAt returns an unaligned index at the given byte offset.
// It panics if offset is outside [0, MaxChunkSize].
func IndexAt(offset int) Index {
	checkOffset(offset)
	return Index{offset: uint8(offset)}
}

// TrailingIndexAt returns the trailing-surrogate index for the scalar
// starting at offset.
func TrailingIndexAt(offset int) Index {
	checkOffset(offset)
	return Index{offset: uint8(offset), flags: flagUTF16Trailing}
}

func checkOffset(offset int) {
	if offset < 0 || offset > MaxChunkSize {
		panic(fmt.Sprintf("rope: offset %d out of range [0, %d]", offset, MaxChunkSize))
	}
}

// Offset returns the byte offset of the index.
func (i Index) Offset() int {
	return int(i.offset)
}

// Shift returns the index moved by n bytes with all flags cleared.
// The caller is responsible for the alignment of the result.
func (i Index) Shift(n int) Index {
	return IndexAt(int(i.offset) + n)
}

// IsScalarAligned reports whether the index is known to start a scalar.
func (i Index) IsScalarAligned() bool {
	return i.flags&flagScalarAligned != 0
}

// IsCharacterAligned reports whether the index is known to start a grapheme cluster.
func (i Index) IsCharacterAligned() bool {
	return i.flags&flagCharacterAligned != 0
}

// IsTrailing reports whether the index addresses a trailing surrogate.
func (i Index) IsTrailing() bool {
	return i.flags&flagUTF16Trailing != 0
}

func (i Index) scalarAligned() Index {
	i.flags = (i.flags | flagScalarAligned) &^ flagUTF16Trailing
	return i
}

func (i Index) characterAligned() Index {
	i.flags = (i.flags | flagScalarAligned | flagCharacterAligned) &^ flagUTF16Trailing
	return i
}

// Compare orders two indices of the same chunk. Offsets are compared
// first; at equal offsets the base position sorts before the trailing
// surrogate position. Alignment flags never affect the order.
func (i Index) Compare(j Index) int {
	switch {
	case i.offset < j.offset:
		return -1
	case i.offset > j.offset:
		return 1
	}
	it, jt := i.IsTrailing(), j.IsTrailing()
	switch {
	case it == jt:
		return 0
	case jt:
		return -1
	default:
		return 1
	}
}

// Less reports whether i sorts strictly before j.
func (i Index) Less(j Index) bool {
	return i.Compare(j) < 0
}

// Equal reports whether i and j address the same position.
func (i Index) Equal(j Index) bool {
	return i.Key() == j.Key()
}

// IndexKey is a comparable form of an Index that ignores alignment flags.
// Use it as a map key.
type IndexKey uint16

// Key returns the map key for the index.
func (i Index) Key() IndexKey {
	return IndexKey(uint16(i.offset) | uint16(i.flags&flagUTF16Trailing)<<8)
}

// Bits packs the index into 16 bits: the offset in the low byte and the
// flags in the high byte.
func (i Index) Bits() uint16 {
	return uint16(i.offset) | uint16(i.flags)<<8
}

// IndexFromBits unpacks an index produced by Bits.
func IndexFromBits(b uint16) Index {
	i := Index{offset: uint8(b), flags: indexFlags(b>>8) & flagMask}
	if i.flags&flagCharacterAligned != 0 {
		i.flags |= flagScalarAligned
	}
	return i
}

// String describes the index, for example "12[utf8, s, c]+1".
func (i Index) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d[utf8", i.offset)
	if i.IsScalarAligned() {
		sb.WriteString(", s")
	}
	if i.IsCharacterAligned() {
		sb.WriteString(", c")
	}
	sb.WriteByte(']')
	if i.IsTrailing() {
		sb.WriteString("+1")
	}
	return sb.String()
}
