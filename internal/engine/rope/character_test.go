package rope

import "testing"

type walkResult struct {
	offset  int
	rest    int
	found   bool
	forward bool
}

func walk(m Metric, c Chunk, from Index, n int) walkResult {
	found, forward := m.FormIndex(c, &from, &n)
	return walkResult{offset: from.Offset(), rest: n, found: found, forward: forward}
}

func TestCharactersWalkPastLastBreak(t *testing.T) {
	tests := []struct {
		name string
		text string
		from int
	}{
		// Breaks at 0, 1, 2, 3.
		{"ascii", "abcd", 2},
		// Breaks at 0, 1, 2; the cluster at 2 is 8 bytes long.
		{"emoji tail", "ab\U0001F44B\U0001F3FD", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustChunk(t, tt.text)
			if tt.from != c.LastBreak()-1 {
				t.Fatalf("start %d is not one byte before lastBreak %d", tt.from, c.LastBreak())
			}
			got := walk(Characters, c, IndexAt(tt.from), 2)
			want := walkResult{offset: c.Len(), rest: 1, found: false, forward: true}
			if got != want {
				t.Errorf("walk = %+v, want %+v", got, want)
			}
		})
	}
}

func TestCharactersOwnedPrefix(t *testing.T) {
	// The combining mark at 0..1 belongs to a cluster from an earlier chunk.
	c := newChunk("\u0301abc", []int{2, 3, 4})
	if c.FirstBreak() != 2 || c.LastBreak() != 4 || c.Summary().Characters != 3 {
		t.Fatalf("unexpected chunk layout: [%d, %d] %+v", c.FirstBreak(), c.LastBreak(), c.Summary())
	}

	tests := []struct {
		name string
		from int
		n    int
		want walkResult
	}{
		{"forward one to first break", 0, 1, walkResult{2, 0, true, true}},
		{"forward to last break", 1, 3, walkResult{4, 0, true, true}},
		{"forward past last break", 0, 4, walkResult{5, 1, false, true}},
		{"backward from owned prefix", 1, -2, walkResult{0, -3, false, false}},
		{"zero in owned prefix", 1, 0, walkResult{0, -1, false, false}},
		{"zero at first break", 2, 0, walkResult{2, 0, true, false}},
		{"backward to first break", 4, -2, walkResult{2, 0, true, false}},
		{"backward past first break", 4, -3, walkResult{0, -1, false, false}},
		{"backward from end", 5, -1, walkResult{4, 0, true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := walk(Characters, c, IndexAt(tt.from), tt.n); got != tt.want {
				t.Errorf("walk(%d, %d) = %+v, want %+v", tt.from, tt.n, got, tt.want)
			}
		})
	}

	if i := Characters.IndexAt(c, 0); i.Offset() != 2 {
		t.Errorf("IndexAt(0) = %s, want 2", i)
	}
	if i := Characters.IndexAt(c, 2); i.Offset() != 4 {
		t.Errorf("IndexAt(2) = %s, want 4", i)
	}
	if i := Characters.IndexAt(c, 3); i.Offset() != 5 {
		t.Errorf("IndexAt(3) = %s, want end", i)
	}
	if r := Characters.RoundDown(c, IndexAt(1)); r.Offset() != 0 || !r.IsCharacterAligned() {
		t.Errorf("RoundDown(1) = %s, want aligned start", r)
	}
	if d := Characters.Distance(c, IndexAt(1), IndexAt(3)); d != 1 {
		t.Errorf("Distance(1, 3) = %d, want 1", d)
	}
}

func TestCharactersWithoutBreaks(t *testing.T) {
	c := newChunk("\u0301\u0301", nil)

	tests := []struct {
		name string
		from int
		n    int
		want walkResult
	}{
		{"forward", 0, 2, walkResult{4, 2, false, true}},
		{"backward from end", 4, -1, walkResult{0, -1, false, false}},
		{"backward from inside", 2, -1, walkResult{0, -2, false, false}},
		{"zero at end", 4, 0, walkResult{4, 0, true, false}},
		{"zero inside", 2, 0, walkResult{0, -1, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := walk(Characters, c, IndexAt(tt.from), tt.n); got != tt.want {
				t.Errorf("walk(%d, %d) = %+v, want %+v", tt.from, tt.n, got, tt.want)
			}
		})
	}

	if Characters.Size(c.Summary()) != 0 {
		t.Errorf("Size = %d, want 0", Characters.Size(c.Summary()))
	}
	if i := Characters.IndexAt(c, 0); i.Offset() != c.Len() {
		t.Errorf("IndexAt(0) = %s, want end", i)
	}
	if d := Characters.Distance(c, IndexAt(0), IndexAt(4)); d != 0 {
		t.Errorf("Distance(start, end) = %d, want 0", d)
	}
}

func TestCharactersEmojiChunk(t *testing.T) {
	// a=0, b=1, waving hand with modifier=2..9, c=10
	c := mustChunk(t, "ab\U0001F44B\U0001F3FDc")

	rounds := []struct{ from, want int }{
		{7, 2}, {10, 10}, {11, 11}, {0, 0}, {1, 1},
	}
	for _, tt := range rounds {
		r := Characters.RoundDown(c, IndexAt(tt.from))
		if r.Offset() != tt.want || !r.IsCharacterAligned() {
			t.Errorf("RoundDown(%d) = %s, want aligned %d", tt.from, r, tt.want)
		}
	}

	if d := Characters.Distance(c, IndexAt(0), IndexAt(7)); d != 2 {
		t.Errorf("Distance(0, 7) = %d, want 2", d)
	}
	if d := Characters.Distance(c, IndexAt(7), IndexAt(0)); d != -2 {
		t.Errorf("Distance(7, 0) = %d, want -2", d)
	}

	got := walk(Characters, c, c.EndIndex(), -4)
	if want := (walkResult{0, 0, true, false}); got != want {
		t.Errorf("walk(end, -4) = %+v, want %+v", got, want)
	}
	got = walk(Characters, c, c.EndIndex(), -5)
	if want := (walkResult{0, -1, false, false}); got != want {
		t.Errorf("walk(end, -5) = %+v, want %+v", got, want)
	}
	got = walk(Characters, c, IndexAt(5), 1)
	if want := (walkResult{10, 0, true, true}); got != want {
		t.Errorf("walk(5, +1) = %+v, want %+v", got, want)
	}
}

func TestCharactersResume(t *testing.T) {
	w := Characters.(boundaryWalker)
	c := newChunk("\u0301abc", []int{2, 3, 4})

	i, rest, ok := w.resume(c, true, 3)
	if !ok || i.Offset() != 2 || rest != 2 {
		t.Errorf("resume forward = (%s, %d, %v), want (2, 2, true)", i, rest, ok)
	}
	i, rest, ok = w.resume(c, false, -3)
	if !ok || i.Offset() != 4 || rest != -2 {
		t.Errorf("resume backward = (%s, %d, %v), want (4, -2, true)", i, rest, ok)
	}
	if _, _, ok := w.resume(newChunk("\u0301", nil), true, 1); ok {
		t.Error("resume should skip chunks without breaks")
	}
	if w.endResidual() != 1 {
		t.Errorf("endResidual = %d, want 1", w.endResidual())
	}
}
