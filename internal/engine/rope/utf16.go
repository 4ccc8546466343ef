package rope

import (
	"unicode/utf16"
	"unicode/utf8"
)

// utf16Metric counts UTF-16 code units. A supplementary scalar has two
// stops: its base index and the trailing-surrogate index at the same offset.
type utf16Metric struct{}

func (utf16Metric) Size(s Summary) int {
	return s.UTF16
}

func (m utf16Metric) Distance(c Chunk, from, to Index) int {
	return m.position(c, m.RoundDown(c, to)) - m.position(c, m.RoundDown(c, from))
}

func (m utf16Metric) FormIndex(c Chunk, i *Index, n *int) (found, forward bool) {
	*i = m.RoundDown(c, *i)
	if *n == 0 {
		return true, false
	}

	target := m.position(c, *i) + *n
	forward = *n > 0
	switch {
	case target > c.summary.UTF16:
		*i = c.EndIndex()
		*n = target - c.summary.UTF16
		return false, true
	case target < 0:
		*i = c.StartIndex()
		*n = target
		return false, false
	}
	*i = m.index(c, target)
	*n = 0
	return true, forward
}

func (utf16Metric) RoundDown(c Chunk, i Index) Index {
	r := Scalars.RoundDown(c, i)
	if i.IsTrailing() && r.offset == i.offset && isSupplementary(c, int(r.offset)) {
		return TrailingIndexAt(int(r.offset))
	}
	return r
}

func (m utf16Metric) IndexAt(c Chunk, offset int) Index {
	checkUnits("UTF-16", offset, c.summary.UTF16)
	return m.index(c, offset)
}

// isASCII reports whether every byte of the chunk is a single code unit.
func (utf16Metric) isASCII(c Chunk) bool {
	return c.summary.UTF16 == c.summary.Bytes
}

// position returns the number of code units before a rounded index.
func (m utf16Metric) position(c Chunk, i Index) int {
	off := int(i.offset)
	if m.isASCII(c) {
		return off
	}
	units := 0
	for _, r := range c.text[:off] {
		units += utf16.RuneLen(r)
	}
	if i.IsTrailing() {
		units++
	}
	return units
}

// index returns the index of the stop units code units into the chunk.
func (m utf16Metric) index(c Chunk, units int) Index {
	if m.isASCII(c) {
		return IndexAt(units).scalarAligned()
	}
	acc := 0
	for off, r := range c.text {
		switch {
		case acc == units:
			return IndexAt(off).scalarAligned()
		case acc+1 == units && utf16.RuneLen(r) == 2:
			return TrailingIndexAt(off)
		}
		acc += utf16.RuneLen(r)
	}
	return c.EndIndex()
}

// isSupplementary reports whether the scalar at off needs a surrogate pair.
func isSupplementary(c Chunk, off int) bool {
	if off >= len(c.text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(c.text[off:])
	return utf16.RuneLen(r) == 2
}
