package rope

// characterMetric counts extended grapheme clusters.
//
// The navigable stops of a chunk are its breaks in [firstBreak, lastBreak]
// plus the chunk end. A cluster that starts before firstBreak belongs to an
// earlier chunk, and the cluster starting at lastBreak may continue into a
// later one, so walks that cross those breaks stop at the chunk boundary
// and leave the rest to the caller:
//
//   - forward: *i is the chunk end and *n the remaining count. The walk
//     resumes at the firstBreak of the next chunk with breaks, with *n-1.
//   - backward: *i is the chunk start and *n the remaining count. The walk
//     resumes at the lastBreak of the previous chunk with breaks, with *n+1.
//
// An index before firstBreak lies inside a cluster owned by an earlier
// chunk. Moving forward from it takes one step to firstBreak. Moving
// backward, or rounding with a zero count, reports the chunk start with
// the count decremented by one so the earlier chunk resumes at the start of
// that cluster.
type characterMetric struct{}

func (characterMetric) Size(s Summary) int {
	return s.Characters
}

func (m characterMetric) Distance(c Chunk, from, to Index) int {
	a, b := m.RoundDown(c, from).Offset(), m.RoundDown(c, to).Offset()
	if b < a {
		return -c.breaks.count(b, a)
	}
	return c.breaks.count(a, b)
}

// owned reports whether off lies inside a cluster that started before the chunk.
func (characterMetric) owned(c Chunk, off int) bool {
	return off < len(c.text) && (!c.HasBreaks() || off < int(c.firstBreak))
}

func (m characterMetric) FormIndex(c Chunk, i *Index, n *int) (found, forward bool) {
	c.checkIndex(*i)
	off := int(i.offset)
	first, last := int(c.firstBreak), int(c.lastBreak)
	before := m.owned(c, off)

	switch {
	case *n == 0:
		if before {
			*i = c.StartIndex()
			*n = -1
			return false, false
		}
		*i = m.RoundDown(c, *i)
		return true, false

	case *n > 0:
		if before {
			if !c.HasBreaks() {
				*i = c.EndIndex()
				return false, true
			}
			off = first
			*n--
		} else {
			off = int(m.RoundDown(c, *i).offset)
		}
		for *n > 0 && off < last {
			off = c.breaks.next(off)
			*n--
		}
		if *n == 0 {
			*i = IndexAt(off).characterAligned()
			return true, true
		}
		*i = c.EndIndex()
		return false, true
	}

	if before {
		*i = c.StartIndex()
		*n--
		return false, false
	}
	off = int(m.RoundDown(c, *i).offset)
	if off == len(c.text) {
		if !c.HasBreaks() {
			*i = c.StartIndex()
			return false, false
		}
		off = last
		*n++
	}
	for *n < 0 && off > first {
		off = c.breaks.prev(off)
		*n++
	}
	if *n == 0 {
		*i = IndexAt(off).characterAligned()
		return true, false
	}
	*i = c.StartIndex()
	return false, false
}

func (m characterMetric) RoundDown(c Chunk, i Index) Index {
	c.checkIndex(i)
	if i.IsCharacterAligned() {
		return i.characterAligned()
	}
	off := int(i.offset)
	switch {
	case off == 0:
		return c.StartIndex()
	case off >= len(c.text):
		return c.EndIndex()
	case m.owned(c, off):
		return c.StartIndex()
	}
	return IndexAt(c.breaks.atOrBefore(off)).characterAligned()
}

func (characterMetric) IndexAt(c Chunk, offset int) Index {
	checkUnits("character", offset, c.summary.Characters)
	if offset == c.summary.Characters {
		return c.EndIndex()
	}
	off := int(c.firstBreak)
	for ; offset > 0; offset-- {
		off = c.breaks.next(off)
	}
	return IndexAt(off).characterAligned()
}

// resume positions a walk entering c from a neighbour with n units left.
// Chunks without breaks are skipped.
func (characterMetric) resume(c Chunk, forward bool, n int) (Index, int, bool) {
	if !c.HasBreaks() {
		return Index{}, n, false
	}
	if forward {
		return IndexAt(int(c.firstBreak)).characterAligned(), n - 1, true
	}
	return IndexAt(int(c.lastBreak)).characterAligned(), n + 1, true
}

// endResidual is the forward remainder that still lands on the end of the
// text: the step from the last cluster start to the end.
func (characterMetric) endResidual() int {
	return 1
}
