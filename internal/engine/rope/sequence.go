package rope

import (
	"fmt"
	"slices"
	"sort"
)

// Position addresses a point in a Sequence: a chunk number and an index
// inside that chunk.
type Position struct {
	Chunk int
	Index Index
}

// Compare orders two positions of the same sequence.
func (p Position) Compare(q Position) int {
	switch {
	case p.Chunk < q.Chunk:
		return -1
	case p.Chunk > q.Chunk:
		return 1
	}
	return p.Index.Compare(q.Index)
}

// String returns a debug representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%s", p.Chunk, p.Index)
}

// boundaryWalker is implemented by metrics whose walks need more than
// "continue at the neighbour's edge with the same count" when they cross
// a chunk boundary.
type boundaryWalker interface {
	// resume positions a walk entering c with n units left. ok is false
	// when c has no stop and must be skipped.
	resume(c Chunk, forward bool, n int) (i Index, rest int, ok bool)

	// endResidual is the forward remainder that counts as reaching the end
	// of the sequence.
	endResidual() int
}

// Sequence is an ordered list of chunks with byte prefix sums. It stands in
// for the tree of a full rope: it translates between global offsets and
// chunk positions and continues metric walks across chunk boundaries.
//
// A Sequence is immutable and safe for concurrent use.
type Sequence struct {
	chunks  []Chunk
	starts  []int
	summary Summary
}

// NewSequence returns a sequence over chunks. Empty chunks are dropped.
func NewSequence(chunks []Chunk) *Sequence {
	s := &Sequence{
		chunks: make([]Chunk, 0, len(chunks)),
		starts: make([]int, 1, len(chunks)+1),
	}
	for _, c := range chunks {
		if c.IsEmpty() {
			continue
		}
		s.chunks = append(s.chunks, c)
		s.starts = append(s.starts, s.starts[len(s.starts)-1]+c.Len())
		s.summary = s.summary.Add(c.summary)
	}
	return s
}

// Len returns the total byte length.
func (s *Sequence) Len() int {
	return s.summary.Bytes
}

// IsEmpty returns true if the sequence holds no text.
func (s *Sequence) IsEmpty() bool {
	return len(s.chunks) == 0
}

// Count returns the number of chunks.
func (s *Sequence) Count() int {
	return len(s.chunks)
}

// Chunk returns the i-th chunk.
func (s *Sequence) Chunk(i int) Chunk {
	return s.chunks[i]
}

// Slice returns a copy of the chunk list.
func (s *Sequence) Slice() []Chunk {
	return slices.Clone(s.chunks)
}

// Range returns the global byte range of the i-th chunk.
func (s *Sequence) Range(i int) (start, end int) {
	return s.starts[i], s.starts[i+1]
}

// Summary returns the combined counts of all chunks.
func (s *Sequence) Summary() Summary {
	return s.summary
}

// Start returns the position of the first byte.
func (s *Sequence) Start() Position {
	return Position{Index: Index{}.characterAligned()}
}

// End returns the position after the last byte.
func (s *Sequence) End() Position {
	if len(s.chunks) == 0 {
		return s.Start()
	}
	last := len(s.chunks) - 1
	return Position{Chunk: last, Index: s.chunks[last].EndIndex()}
}

// Locate returns the position of a global byte offset. The end of the text
// is reported as the end of the last chunk; every other chunk boundary as
// the start of the following chunk.
func (s *Sequence) Locate(offset int) Position {
	if offset < 0 || offset > s.Len() {
		panic(fmt.Sprintf("rope: offset %d out of range [0, %d]", offset, s.Len()))
	}
	if offset == s.Len() {
		return s.End()
	}
	i := sort.SearchInts(s.starts, offset+1) - 1
	return Position{Chunk: i, Index: IndexAt(offset - s.starts[i])}
}

// Offset returns the global byte offset of p.
func (s *Sequence) Offset(p Position) int {
	if len(s.chunks) == 0 {
		return 0
	}
	return s.starts[p.Chunk] + p.Index.Offset()
}

// normalize validates p and moves an interior chunk end to the start of
// the following chunk.
func (s *Sequence) normalize(p Position) Position {
	if p.Chunk < 0 || p.Chunk >= len(s.chunks) {
		panic(fmt.Sprintf("rope: chunk %d out of range [0, %d)", p.Chunk, len(s.chunks)))
	}
	c := s.chunks[p.Chunk]
	c.checkIndex(p.Index)
	if p.Index.Offset() == c.Len() && p.Chunk < len(s.chunks)-1 {
		return Position{Chunk: p.Chunk + 1, Index: IndexAt(0)}
	}
	return p
}

// Seek moves p by n units of m, crossing chunk boundaries as needed.
// A zero count rounds p down to the metric's alignment. If the walk runs
// off either end of the text, Seek returns that end and false.
func (s *Sequence) Seek(m Metric, p Position, n int) (Position, bool) {
	if len(s.chunks) == 0 {
		return s.Start(), n == 0
	}
	p = s.normalize(p)
	last := len(s.chunks) - 1
	if n > 0 && p.Chunk == last && p.Index.Offset() == s.chunks[last].Len() {
		return s.End(), false
	}

	walker, _ := m.(boundaryWalker)
	ci, idx := p.Chunk, p.Index
	for {
		found, forward := m.FormIndex(s.chunks[ci], &idx, &n)
		if found {
			return Position{Chunk: ci, Index: idx}, true
		}

		step := -1
		if forward {
			step = 1
		}
		for {
			ci += step
			if ci < 0 {
				return s.Start(), false
			}
			if ci > last {
				return s.End(), walker != nil && n == walker.endResidual()
			}
			c := s.chunks[ci]
			if walker == nil {
				idx = c.EndIndex()
				if forward {
					idx = c.StartIndex()
				}
				break
			}
			next, rest, ok := walker.resume(c, forward, n)
			if ok {
				idx, n = next, rest
				break
			}
		}
	}
}

// Measure returns the signed number of m units from one position to
// another, after rounding both down.
func (s *Sequence) Measure(m Metric, from, to Position) int {
	if len(s.chunks) == 0 {
		return 0
	}
	a, _ := s.Seek(m, from, 0)
	b, _ := s.Seek(m, to, 0)
	sign := 1
	if b.Compare(a) < 0 {
		a, b, sign = b, a, -1
	}
	if a.Chunk == b.Chunk {
		return sign * m.Distance(s.chunks[a.Chunk], a.Index, b.Index)
	}

	ca, cb := s.chunks[a.Chunk], s.chunks[b.Chunk]
	d := m.Distance(ca, a.Index, ca.EndIndex())
	for i := a.Chunk + 1; i < b.Chunk; i++ {
		d += m.Size(s.chunks[i].summary)
	}
	d += m.Distance(cb, cb.StartIndex(), b.Index)
	return sign * d
}

// IndexOf returns the position k units of m from the start of the text.
func (s *Sequence) IndexOf(m Metric, k int) (Position, bool) {
	if k < 0 {
		return s.Start(), false
	}
	return s.Seek(m, s.Start(), k)
}

// Convert translates an offset of one metric into another, rounding down.
func (s *Sequence) Convert(from, to Metric, k int) (int, bool) {
	p, ok := s.IndexOf(from, k)
	if !ok {
		return 0, false
	}
	return s.Measure(to, s.Start(), p), true
}
