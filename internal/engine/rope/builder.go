package rope

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// Builder provides efficient incremental construction of a chunk sequence.
// It buffers writes and splits the text into chunks when Build is called,
// so grapheme clusters are segmented with the context of the whole text.
type Builder struct {
	buffer    bytes.Buffer
	chunkSize int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithChunkSize sets the preferred chunk size. Values are clamped to
// [MinChunkSize, MaxChunkSize].
func WithChunkSize(n int) BuilderOption {
	return func(b *Builder) {
		b.chunkSize = min(max(n, MinChunkSize), MaxChunkSize)
	}
}

// NewBuilder creates a new builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{chunkSize: TargetChunkSize}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ChunkSize returns the preferred chunk size.
func (b *Builder) ChunkSize() int {
	return b.chunkSize
}

// The write methods append to the pending text and never fail.

func (b *Builder) WriteString(s string) (int, error) { return b.buffer.WriteString(s) }
func (b *Builder) Write(p []byte) (int, error) { return b.buffer.Write(p) }
func (b *Builder) WriteByte(c byte) error { return b.buffer.WriteByte(c) }
func (b *Builder) WriteRune(r rune) (int, error) { return b.buffer.WriteRune(r) }

// ReadFrom appends everything r yields until io.EOF.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	return b.buffer.ReadFrom(r)
}

// Len returns the number of pending bytes.
func (b *Builder) Len() int {
	return b.buffer.Len()
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.buffer.String()
}

// Reset clears the builder for reuse. The chunk size is kept.
func (b *Builder) Reset() {
	b.buffer.Reset()
}

// Build splits the accumulated text into chunks. The builder is reset
// afterwards, also on error.
func (b *Builder) Build() (*Sequence, error) {
	text := b.buffer.String()
	b.Reset()
	return buildSequence(text, b.chunkSize)
}

// FromString builds a sequence from text with the default chunk size.
func FromString(text string) (*Sequence, error) {
	return buildSequence(text, TargetChunkSize)
}

func buildSequence(text string, chunkSize int) (*Sequence, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w at byte %d", ErrInvalidUTF8, invalidAt(text))
	}

	starts := getOffsets()
	defer putOffsets(starts)
	*starts = graphemeStarts(text, *starts)

	var chunks []Chunk
	breaks := *starts
	for lo := 0; lo < len(text); {
		hi := lo + splitPoint(text[lo:], chunkSize)
		n := 0
		for n < len(breaks) && breaks[n] < hi {
			breaks[n] -= lo
			n++
		}
		chunks = append(chunks, newChunk(text[lo:hi], breaks[:n]))
		breaks = breaks[n:]
		lo = hi
	}
	return NewSequence(chunks), nil
}

// splitPoint returns the length of the next chunk taken from the front of s.
// It prefers splitting after a newline near the target and otherwise
// backs up to a scalar boundary.
func splitPoint(s string, target int) int {
	if len(s) <= target {
		return len(s)
	}

	searchStart := max(target-target/4, 1)
	searchEnd := min(target+target/4, MaxChunkSize, len(s))

	for i := target - 1; i < searchEnd; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 2; i >= searchStart-1; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	cut := target
	for cut > 0 && !isScalarStart(s[cut]) {
		cut--
	}
	return cut
}

// invalidAt returns the offset of the first byte that is not valid UTF-8.
func invalidAt(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, n := utf8.DecodeRuneInString(s[i:]); n == 1 {
				return i
			}
		}
	}
	return -1
}
