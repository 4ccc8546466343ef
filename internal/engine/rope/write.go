package rope

import (
	"io"
	"strings"
)

// WriteTo writes the chunk's text to w.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.text)
	return int64(n), err
}

// WriteTo writes the text of every chunk to w in order.
func (s *Sequence) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range s.chunks {
		n, err := c.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the full text of the sequence.
func (s *Sequence) String() string {
	var sb strings.Builder
	sb.Grow(s.Len())
	s.WriteTo(&sb)
	return sb.String()
}
