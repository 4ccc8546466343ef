package rope

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

const mixedText = "Hello, 世界! \U0001F44B\U0001F3FD e\u0301 \U0001F1FA\U0001F1F8\U0001F1EB\U0001F1F7 " +
	"\U0001F468\u200D\U0001F469\u200D\U0001F467 done\r\nok\n\U0001D11E"

var testChunkSizes = []int{4, 5, 7, 16, TargetChunkSize}

type stop struct {
	offset   int
	trailing bool
}

// referenceStops lists every position of m in text, computed without the
// chunk machinery.
func referenceStops(text string, m Metric) []stop {
	var stops []stop
	switch m {
	case Bytes:
		for off := 0; off < len(text); off++ {
			stops = append(stops, stop{offset: off})
		}
	case Scalars:
		for off := range text {
			stops = append(stops, stop{offset: off})
		}
	case UTF16:
		for off, r := range text {
			stops = append(stops, stop{offset: off})
			if utf16.RuneLen(r) == 2 {
				stops = append(stops, stop{offset: off, trailing: true})
			}
		}
	case Characters:
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			from, _ := g.Positions()
			stops = append(stops, stop{offset: from})
		}
	}
	return append(stops, stop{offset: len(text)})
}

// roundedStop returns the index of the last untrailed stop at or before off.
func roundedStop(stops []stop, off int) int {
	idx := 0
	for k, s := range stops {
		if s.offset > off {
			break
		}
		if !s.trailing {
			idx = k
		}
	}
	return idx
}

func mustBuild(t testing.TB, text string, chunkSize int) *Sequence {
	t.Helper()
	b := NewBuilder(WithChunkSize(chunkSize))
	b.WriteString(text)
	seq, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return seq
}

func checkStop(t *testing.T, seq *Sequence, p Position, want stop, what string) {
	t.Helper()
	if got := seq.Offset(p); got != want.offset || p.Index.IsTrailing() != want.trailing {
		t.Errorf("%s = %s (offset %d, trailing %v), want offset %d trailing %v",
			what, p, got, p.Index.IsTrailing(), want.offset, want.trailing)
	}
}

func TestSequenceIndexOf(t *testing.T) {
	texts := []string{mixedText, strings.Repeat(mixedText, 8)}
	for _, text := range texts {
		for _, size := range testChunkSizes {
			seq := mustBuild(t, text, size)
			for _, m := range metrics {
				t.Run(fmt.Sprintf("%s/%d/%d", m.name, len(text), size), func(t *testing.T) {
					stops := referenceStops(text, m.metric)
					if got := m.metric.Size(seq.Summary()); got != len(stops)-1 {
						t.Fatalf("Size = %d, want %d", got, len(stops)-1)
					}
					for k, want := range stops {
						p, ok := seq.IndexOf(m.metric, k)
						if !ok {
							t.Fatalf("IndexOf(%d) not found", k)
						}
						checkStop(t, seq, p, want, fmt.Sprintf("IndexOf(%d)", k))
					}
					if _, ok := seq.IndexOf(m.metric, len(stops)); ok {
						t.Errorf("IndexOf(%d) past the end should fail", len(stops))
					}
					if _, ok := seq.IndexOf(m.metric, -1); ok {
						t.Error("IndexOf(-1) should fail")
					}
				})
			}
		}
	}
}

func TestSequenceSeekRelative(t *testing.T) {
	for _, size := range testChunkSizes {
		seq := mustBuild(t, mixedText, size)
		for _, m := range metrics {
			stops := referenceStops(mixedText, m.metric)
			for i := range stops {
				p, _ := seq.IndexOf(m.metric, i)
				for j := range stops {
					q, ok := seq.Seek(m.metric, p, j-i)
					if !ok {
						t.Errorf("%s/%d: Seek(%d, %d) not found", m.name, size, i, j-i)
						continue
					}
					checkStop(t, seq, q, stops[j], fmt.Sprintf("%s/%d: Seek(%d, %d)", m.name, size, i, j-i))
				}
				if _, ok := seq.Seek(m.metric, p, len(stops)-i); ok {
					t.Errorf("%s/%d: Seek(%d, %d) past the end should fail", m.name, size, i, len(stops)-i)
				}
				if _, ok := seq.Seek(m.metric, p, -i-1); ok {
					t.Errorf("%s/%d: Seek(%d, %d) past the start should fail", m.name, size, i, -i-1)
				}
			}
		}
	}
}

func TestSequenceSeekFromUnaligned(t *testing.T) {
	for _, size := range testChunkSizes {
		seq := mustBuild(t, mixedText, size)
		for _, m := range metrics {
			stops := referenceStops(mixedText, m.metric)
			for off := 0; off <= len(mixedText); off++ {
				p := seq.Locate(off)
				idx := roundedStop(stops, off)

				q, ok := seq.Seek(m.metric, p, 0)
				if !ok {
					t.Errorf("%s/%d: rounding %d failed", m.name, size, off)
				} else {
					checkStop(t, seq, q, stops[idx], fmt.Sprintf("%s/%d: round(%d)", m.name, size, off))
				}

				q, ok = seq.Seek(m.metric, p, 1)
				if ok != (idx+1 < len(stops)) {
					t.Errorf("%s/%d: Seek(%d, +1) ok = %v", m.name, size, off, ok)
				} else if ok {
					checkStop(t, seq, q, stops[idx+1], fmt.Sprintf("%s/%d: Seek(%d, +1)", m.name, size, off))
				}

				q, ok = seq.Seek(m.metric, p, -1)
				if ok != (idx > 0) {
					t.Errorf("%s/%d: Seek(%d, -1) ok = %v", m.name, size, off, ok)
				} else if ok {
					checkStop(t, seq, q, stops[idx-1], fmt.Sprintf("%s/%d: Seek(%d, -1)", m.name, size, off))
				}
			}
		}
	}
}

func TestSequenceMeasure(t *testing.T) {
	for _, size := range testChunkSizes {
		seq := mustBuild(t, mixedText, size)
		for _, m := range metrics {
			stops := referenceStops(mixedText, m.metric)
			if got := seq.Measure(m.metric, seq.Start(), seq.End()); got != len(stops)-1 {
				t.Errorf("%s/%d: Measure(start, end) = %d, want %d", m.name, size, got, len(stops)-1)
			}
			for off := 0; off <= len(mixedText); off++ {
				p := seq.Locate(off)
				want := roundedStop(stops, off)
				if got := seq.Measure(m.metric, seq.Start(), p); got != want {
					t.Errorf("%s/%d: Measure(start, %d) = %d, want %d", m.name, size, off, got, want)
				}
				if got := seq.Measure(m.metric, p, seq.Start()); got != -want {
					t.Errorf("%s/%d: Measure(%d, start) = %d, want %d", m.name, size, off, got, -want)
				}
			}
		}
	}
}

func TestSequenceSummary(t *testing.T) {
	for _, size := range testChunkSizes {
		seq := mustBuild(t, mixedText, size)
		s := seq.Summary()
		if s.Bytes != len(mixedText) {
			t.Errorf("Bytes = %d, want %d", s.Bytes, len(mixedText))
		}
		if want := utf16Units(t, mixedText); s.UTF16 != want {
			t.Errorf("UTF16 = %d, want %d", s.UTF16, want)
		}
		if want := uniseg.GraphemeClusterCount(mixedText); s.Characters != want {
			t.Errorf("chunk size %d: Characters = %d, want %d", size, s.Characters, want)
		}
	}
}

func TestSequenceConvert(t *testing.T) {
	seq := mustBuild(t, "a\U0001F44Bb", 4)

	tests := []struct {
		from, to Metric
		k, want  int
	}{
		{UTF16, Bytes, 2, 1},
		{UTF16, Bytes, 3, 5},
		{Characters, UTF16, 2, 3},
		{Bytes, Scalars, 3, 1},
		{Scalars, Bytes, 2, 5},
	}
	for _, tt := range tests {
		got, ok := seq.Convert(tt.from, tt.to, tt.k)
		if !ok || got != tt.want {
			t.Errorf("Convert(%d) = %d (ok %v), want %d", tt.k, got, ok, tt.want)
		}
	}
	if _, ok := seq.Convert(Bytes, UTF16, 7); ok {
		t.Error("Convert past the end should fail")
	}
}

func TestSequenceLocate(t *testing.T) {
	seq := mustBuild(t, "abcdefghij", 4)
	if seq.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", seq.Count())
	}

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Chunk: 0, Index: IndexAt(0)}},
		{3, Position{Chunk: 0, Index: IndexAt(3)}},
		{4, Position{Chunk: 1, Index: IndexAt(0)}},
		{9, Position{Chunk: 2, Index: IndexAt(1)}},
		{10, Position{Chunk: 2, Index: IndexAt(2)}},
	}
	for _, tt := range tests {
		got := seq.Locate(tt.offset)
		if got.Compare(tt.want) != 0 {
			t.Errorf("Locate(%d) = %s, want %s", tt.offset, got, tt.want)
		}
		if seq.Offset(got) != tt.offset {
			t.Errorf("Offset(Locate(%d)) = %d", tt.offset, seq.Offset(got))
		}
	}

	start, end := seq.Range(1)
	if start != 4 || end != 8 {
		t.Errorf("Range(1) = [%d, %d), want [4, 8)", start, end)
	}

	mustPanic(t, "Locate(-1)", func() { seq.Locate(-1) })
	mustPanic(t, "Locate(11)", func() { seq.Locate(11) })
	mustPanic(t, "Seek in missing chunk", func() { seq.Seek(Bytes, Position{Chunk: 5}, 1) })
}

func TestSequenceEmpty(t *testing.T) {
	seq := NewSequence(nil)
	if !seq.IsEmpty() || seq.Len() != 0 || seq.String() != "" {
		t.Fatalf("empty sequence reports len %d, text %q", seq.Len(), seq.String())
	}
	for _, m := range metrics {
		if _, ok := seq.IndexOf(m.metric, 0); !ok {
			t.Errorf("%s: IndexOf(0) on empty sequence should succeed", m.name)
		}
		if _, ok := seq.IndexOf(m.metric, 1); ok {
			t.Errorf("%s: IndexOf(1) on empty sequence should fail", m.name)
		}
		if got := seq.Measure(m.metric, seq.Start(), seq.End()); got != 0 {
			t.Errorf("%s: Measure = %d, want 0", m.name, got)
		}
	}
	if seq.Start() != seq.End() {
		t.Error("Start and End of an empty sequence should match")
	}
}

func TestNewSequenceDropsEmptyChunks(t *testing.T) {
	seq := NewSequence([]Chunk{mustChunk(t, "ab"), {}, mustChunk(t, "cd")})
	if seq.Count() != 2 || seq.String() != "abcd" {
		t.Errorf("Count() = %d, String() = %q", seq.Count(), seq.String())
	}
	if got := seq.Slice(); len(got) != 2 || got[1].String() != "cd" {
		t.Errorf("Slice() = %v", got)
	}
}

func TestSequenceWriteTo(t *testing.T) {
	seq := mustBuild(t, mixedText, 5)
	var sb strings.Builder
	n, err := seq.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(len(mixedText)) || sb.String() != mixedText {
		t.Errorf("WriteTo wrote %d bytes %q", n, sb.String())
	}
}
