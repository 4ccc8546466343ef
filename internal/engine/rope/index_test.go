package rope

import (
	"testing"
	"testing/quick"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestIndexAt(t *testing.T) {
	i := IndexAt(42)
	if i.Offset() != 42 {
		t.Errorf("Offset() = %d, want 42", i.Offset())
	}
	if i.IsScalarAligned() || i.IsCharacterAligned() || i.IsTrailing() {
		t.Errorf("IndexAt(42) should carry no flags, got %s", i)
	}

	tr := TrailingIndexAt(42)
	if !tr.IsTrailing() {
		t.Error("TrailingIndexAt should be trailing")
	}

	mustPanic(t, "IndexAt(-1)", func() { IndexAt(-1) })
	mustPanic(t, "IndexAt(256)", func() { IndexAt(256) })
	mustPanic(t, "TrailingIndexAt(300)", func() { TrailingIndexAt(300) })
}

func TestIndexCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Index
		want int
	}{
		{"lower offset", IndexAt(3), IndexAt(5), -1},
		{"higher offset", IndexAt(5), IndexAt(3), 1},
		{"same offset", IndexAt(4), IndexAt(4), 0},
		{"base before trailing", IndexAt(4), TrailingIndexAt(4), -1},
		{"trailing after base", TrailingIndexAt(4), IndexAt(4), 1},
		{"both trailing", TrailingIndexAt(4), TrailingIndexAt(4), 0},
		{"trailing before next scalar", TrailingIndexAt(3), IndexAt(4), -1},
		{"flags ignored", IndexAt(4).characterAligned(), IndexAt(4), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := tt.a.Less(tt.b); got != (tt.want < 0) {
				t.Errorf("Less(%s, %s) = %v", tt.a, tt.b, got)
			}
			if got := tt.a.Equal(tt.b); got != (tt.want == 0) {
				t.Errorf("Equal(%s, %s) = %v", tt.a, tt.b, got)
			}
		})
	}
}

func TestIndexTotalOrder(t *testing.T) {
	f := func(x, y uint16) bool {
		a, b := IndexFromBits(x), IndexFromBits(y)
		n := 0
		if a.Less(b) {
			n++
		}
		if b.Less(a) {
			n++
		}
		if a.Equal(b) {
			n++
		}
		return n == 1 && a.Compare(b) == -b.Compare(a)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestIndexBits(t *testing.T) {
	indices := []Index{
		IndexAt(0),
		IndexAt(255),
		TrailingIndexAt(17),
		IndexAt(9).scalarAligned(),
		IndexAt(200).characterAligned(),
	}
	for _, i := range indices {
		got := IndexFromBits(i.Bits())
		if got != i {
			t.Errorf("IndexFromBits(%#x) = %s, want %s", i.Bits(), got, i)
		}
	}

	// Character alignment implies scalar alignment.
	i := IndexFromBits(uint16(flagCharacterAligned)<<8 | 7)
	if !i.IsScalarAligned() {
		t.Errorf("IndexFromBits should restore scalar alignment, got %s", i)
	}
}

func TestIndexString(t *testing.T) {
	tests := []struct {
		index Index
		want  string
	}{
		{IndexAt(3), "3[utf8]"},
		{IndexAt(12).scalarAligned(), "12[utf8, s]"},
		{IndexAt(12).characterAligned(), "12[utf8, s, c]"},
		{TrailingIndexAt(7), "7[utf8]+1"},
		{Index{offset: 12, flags: flagMask}, "12[utf8, s, c]+1"},
	}
	for _, tt := range tests {
		if got := tt.index.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIndexShift(t *testing.T) {
	i := IndexAt(3).characterAligned().Shift(2)
	if i.Offset() != 5 {
		t.Errorf("Shift offset = %d, want 5", i.Offset())
	}
	if i.IsScalarAligned() || i.IsCharacterAligned() {
		t.Errorf("Shift should clear flags, got %s", i)
	}
	mustPanic(t, "Shift below zero", func() { IndexAt(1).Shift(-2) })
}

func TestIndexKey(t *testing.T) {
	seen := map[IndexKey]string{
		IndexAt(5).Key():         "base",
		TrailingIndexAt(5).Key(): "trailing",
	}
	if len(seen) != 2 {
		t.Fatalf("base and trailing keys collide")
	}
	if got := seen[IndexAt(5).characterAligned().Key()]; got != "base" {
		t.Errorf("aligned index key lookup = %q, want base", got)
	}
}
