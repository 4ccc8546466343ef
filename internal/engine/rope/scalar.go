package rope

// scalarMetric counts Unicode scalar values.
type scalarMetric struct{}

func (scalarMetric) Size(s Summary) int {
	return s.Scalars
}

func (m scalarMetric) Distance(c Chunk, from, to Index) int {
	a, b := m.RoundDown(c, from).Offset(), m.RoundDown(c, to).Offset()
	sign := 1
	if b < a {
		a, b, sign = b, a, -1
	}
	n := 0
	for off := a; off < b; off++ {
		if isScalarStart(c.text[off]) {
			n++
		}
	}
	return sign * n
}

func (m scalarMetric) FormIndex(c Chunk, i *Index, n *int) (found, forward bool) {
	*i = m.RoundDown(c, *i)
	if *n == 0 {
		return true, false
	}

	off := int(i.offset)
	if *n > 0 {
		for *n > 0 && off < len(c.text) {
			off = c.scalarAfter(off)
			*n--
		}
		*i = IndexAt(off).scalarAligned()
		return *n == 0, true
	}
	for *n < 0 && off > 0 {
		off = c.scalarBefore(off)
		*n++
	}
	*i = IndexAt(off).scalarAligned()
	return *n == 0, false
}

func (scalarMetric) RoundDown(c Chunk, i Index) Index {
	c.checkIndex(i)
	if i.IsScalarAligned() || i.offset == 0 {
		return i.scalarAligned()
	}
	off := int(i.offset)
	if off >= len(c.text) {
		return c.EndIndex()
	}
	for off > 0 && !isScalarStart(c.text[off]) {
		off--
	}
	return IndexAt(off).scalarAligned()
}

func (scalarMetric) IndexAt(c Chunk, offset int) Index {
	checkUnits("scalar", offset, c.summary.Scalars)
	off := 0
	for ; offset > 0; offset-- {
		off = c.scalarAfter(off)
	}
	return IndexAt(off).scalarAligned()
}
