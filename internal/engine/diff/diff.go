package diff

import (
	"fmt"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// Compute returns an edit script that turns old into new, comparing whole
// chunks. Each side's byte offsets come from its own chunk lengths.
func Compute(old, new []rope.Chunk, opts Options) ([]Edit, error) {
	log := opts.logger()
	oldStarts, newStarts := prefixSums(old), prefixSums(new)

	switch {
	case len(old) == 0 && len(new) == 0:
		return nil, nil
	case len(old) == 0:
		return []Edit{{Op: Insert, Range: NewRange(0, newStarts[len(new)])}}, nil
	case len(new) == 0:
		return []Edit{{Op: Delete, Range: NewRange(0, oldStarts[len(old)])}}, nil
	}

	s := &searcher{old: old, new: new, equal: opts.equal(), limit: opts.limit()}

	// Common prefix and suffix never take part in the search.
	n, m := len(old), len(new)
	prefix := 0
	for prefix < n && prefix < m && s.equal(old[prefix], new[prefix]) {
		prefix++
	}
	suffix := 0
	for suffix < n-prefix && suffix < m-prefix && s.equal(old[n-1-suffix], new[m-1-suffix]) {
		suffix++
	}

	inner, err := s.findPath(box{left: prefix, top: prefix, right: n - suffix, bottom: m - suffix})
	if err != nil {
		log.Debug("diff budget exhausted",
			"old_chunks", n, "new_chunks", m, "steps", s.steps, "limit", s.limit)
		return nil, err
	}

	path := make([]point, 0, len(inner)+2)
	path = append(path, point{0, 0})
	path = append(path, inner...)
	path = append(path, point{n, m})

	e := &emitter{
		oldStarts: oldStarts,
		newStarts: newStarts,
		coalesce:  opts.Coalesce,
	}
	s.walk(path, e)
	e.flush()

	log.Debug("diff computed",
		"old_chunks", n, "new_chunks", m,
		"prefix", prefix, "suffix", suffix,
		"edits", len(e.edits), "steps", s.steps)
	return e.edits, nil
}

// ComputeSequences diffs the chunks of two sequences.
func ComputeSequences(old, new *rope.Sequence, opts Options) ([]Edit, error) {
	return Compute(old.Slice(), new.Slice(), opts)
}

// ComputeIter drains two chunk iterators and diffs the result.
func ComputeIter(old, new rope.Iterator[rope.Chunk], opts Options) ([]Edit, error) {
	if old.SizeHint().Kind == rope.HintInfinite {
		return nil, fmt.Errorf("old side: %w", ErrUnbounded)
	}
	if new.SizeHint().Kind == rope.HintInfinite {
		return nil, fmt.Errorf("new side: %w", ErrUnbounded)
	}
	return Compute(rope.Collect(old), rope.Collect(new), opts)
}

// walk emits the edits along path. Between consecutive vertices there is at
// most one edit, surrounded by diagonal runs of matching chunks.
func (s *searcher) walk(path []point, e *emitter) {
	for i := 1; i < len(path); i++ {
		x, y := path[i-1].x, path[i-1].y
		end := path[i]
		for x != end.x || y != end.y {
			for x < end.x && y < end.y && s.equal(s.old[x], s.new[y]) {
				e.match()
				x++
				y++
			}
			if x == end.x && y == end.y {
				break
			}
			if end.x-x < end.y-y {
				e.insert(y)
				y++
			} else {
				e.delete(x)
				x++
			}
		}
	}
}

// emitter turns chunk-level moves into byte-range edits.
type emitter struct {
	oldStarts []int
	newStarts []int
	coalesce  bool

	edits []Edit

	// pending changes since the last match, used when coalescing
	del, ins       Range
	hasDel, hasIns bool
}

func (e *emitter) delete(x int) {
	r := Range{Start: e.oldStarts[x], End: e.oldStarts[x+1]}
	if !e.coalesce {
		e.edits = append(e.edits, Edit{Op: Delete, Range: r})
		return
	}
	if e.hasDel {
		e.del.End = r.End
	} else {
		e.del, e.hasDel = r, true
	}
}

func (e *emitter) insert(y int) {
	r := Range{Start: e.newStarts[y], End: e.newStarts[y+1]}
	if !e.coalesce {
		e.edits = append(e.edits, Edit{Op: Insert, Range: r})
		return
	}
	if e.hasIns {
		e.ins.End = r.End
	} else {
		e.ins, e.hasIns = r, true
	}
}

func (e *emitter) match() {
	e.flush()
}

// flush writes the pending delete before the pending insert.
func (e *emitter) flush() {
	if e.hasDel {
		e.edits = append(e.edits, Edit{Op: Delete, Range: e.del})
		e.hasDel = false
	}
	if e.hasIns {
		e.edits = append(e.edits, Edit{Op: Insert, Range: e.ins})
		e.hasIns = false
	}
}

// prefixSums returns the starting byte offset of every chunk plus the total.
func prefixSums(chunks []rope.Chunk) []int {
	starts := make([]int, len(chunks)+1)
	for i, c := range chunks {
		starts[i+1] = starts[i] + c.Len()
	}
	return starts
}
