package diff

import "fmt"

// Op is the kind of an edit.
type Op uint8

const (
	// Insert adds a range of the new text.
	Insert Op = iota

	// Delete removes a range of the old text.
	Delete
)

// String returns a human-readable representation of the op.
func (op Op) String() string {
	switch op {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Range is a half-open byte interval [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a range. It panics if start > end or start < 0.
func NewRange(start, end int) Range {
	if start < 0 || start > end {
		panic(fmt.Sprintf("diff: invalid range [%d, %d)", start, end))
	}
	return Range{Start: start, End: end}
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// String returns the range as "start..<end".
func (r Range) String() string {
	return fmt.Sprintf("%d..<%d", r.Start, r.End)
}

// Edit is one step of an edit script.
// Delete ranges address the old text, Insert ranges the new text.
type Edit struct {
	Op    Op
	Range Range
}

// String returns a description like "delete(3..<7)".
func (e Edit) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.Range)
}
