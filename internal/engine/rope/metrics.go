package rope

import (
	"fmt"
	"unicode/utf16"
)

// Summary holds the counts of a text span in every metric.
type Summary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// UTF16 is the UTF-16 code unit count.
	UTF16 int

	// Scalars is the Unicode scalar count.
	Scalars int

	// Characters is the number of grapheme clusters starting in the span.
	Characters int
}

// Add combines two summaries (monoid operation).
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes:      s.Bytes + other.Bytes,
		UTF16:      s.UTF16 + other.UTF16,
		Scalars:    s.Scalars + other.Scalars,
		Characters: s.Characters + other.Characters,
	}
}

// IsZero returns true if this is the zero/identity summary.
func (s Summary) IsZero() bool {
	return s == Summary{}
}

// summarize counts bytes, UTF-16 units and scalars of valid UTF-8 text.
// Characters are left to the caller, which owns the break positions.
func summarize(text string) Summary {
	sum := Summary{Bytes: len(text)}
	for _, r := range text {
		sum.Scalars++
		sum.UTF16 += utf16.RuneLen(r)
	}
	return sum
}

// Metric is one notion of position and distance inside a chunk.
//
// Indices passed to a metric must lie in [0, c.Len()]; anything else
// panics.
type Metric interface {
	// Size returns the number of units in a span with the given summary.
	Size(s Summary) int

	// Distance rounds both indices down and returns the signed number of
	// units from one to the other.
	Distance(c Chunk, from, to Index) int

	// FormIndex moves *i by *n units in place and leaves the unconsumed
	// signed remainder in *n.
	//
	// found reports whether the walk completed inside the chunk. When it
	// did not, *i is the chunk boundary that stopped it and *n is the
	// count to continue with in the neighbouring chunk. forward reports the
	// direction taken. A zero count only rounds *i down and reports
	// forward == false.
	FormIndex(c Chunk, i *Index, n *int) (found, forward bool)

	// RoundDown returns the nearest index at or before i that is aligned
	// to the metric.
	RoundDown(c Chunk, i Index) Index

	// IndexAt returns the index offset units from the start of the chunk.
	// It panics if offset is outside [0, Size(c.Summary())].
	IndexAt(c Chunk, offset int) Index
}

// The metrics over chunk text.
var (
	Bytes      Metric = bytesMetric{}
	UTF16      Metric = utf16Metric{}
	Scalars    Metric = scalarMetric{}
	Characters Metric = characterMetric{}
)

func checkUnits(m string, offset, size int) {
	if offset < 0 || offset > size {
		panic(fmt.Sprintf("rope: %s offset %d out of range [0, %d]", m, offset, size))
	}
}

// bytesMetric counts UTF-8 code units. Every byte offset is aligned.
type bytesMetric struct{}

func (bytesMetric) Size(s Summary) int {
	return s.Bytes
}

func (m bytesMetric) Distance(c Chunk, from, to Index) int {
	return m.RoundDown(c, to).Offset() - m.RoundDown(c, from).Offset()
}

func (m bytesMetric) FormIndex(c Chunk, i *Index, n *int) (found, forward bool) {
	*i = m.RoundDown(c, *i)
	if *n == 0 {
		return true, false
	}

	target := int(i.offset) + *n
	forward = *n > 0
	switch {
	case target > len(c.text):
		*i = c.EndIndex()
		*n = target - len(c.text)
		return false, true
	case target < 0:
		*i = c.StartIndex()
		*n = target
		return false, false
	}
	*i = IndexAt(target)
	*n = 0
	return true, forward
}

func (bytesMetric) RoundDown(c Chunk, i Index) Index {
	c.checkIndex(i)
	i.flags &^= flagUTF16Trailing
	return i
}

func (bytesMetric) IndexAt(c Chunk, offset int) Index {
	checkUnits("byte", offset, len(c.text))
	return IndexAt(offset)
}
