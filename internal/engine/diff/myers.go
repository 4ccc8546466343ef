package diff

import "github.com/dshills/ropekit/internal/engine/rope"

// point is a vertex of the edit graph: x indexes old, y indexes new.
type point struct {
	x, y int
}

// box is a rectangular region of the edit graph.
type box struct {
	left, top, right, bottom int
}

func (b box) width() int  { return b.right - b.left }
func (b box) height() int { return b.bottom - b.top }
func (b box) size() int   { return b.width() + b.height() }
func (b box) delta() int  { return b.width() - b.height() }

// snake is a single edit followed by a diagonal run of matches.
type snake struct {
	start, end point
}

// searcher holds the state shared by one diff computation.
type searcher struct {
	old, new []rope.Chunk
	equal    EqualFunc
	limit    int
	steps    int
}

// spend charges n steps against the budget.
func (s *searcher) spend(n int) error {
	s.steps += n
	if s.limit >= 0 && s.steps > s.limit {
		return &TooLargeError{Steps: s.steps, Limit: s.limit}
	}
	return nil
}

// findPath returns the vertices of a shortest path through b, or nil when b
// is empty.
func (s *searcher) findPath(b box) ([]point, error) {
	if b.size() == 0 {
		return nil, nil
	}
	if b.width() == 0 || b.height() == 0 {
		return []point{{b.left, b.top}, {b.right, b.bottom}}, nil
	}

	sn, err := s.midpoint(b)
	if err != nil {
		return nil, err
	}

	head, err := s.findPath(box{b.left, b.top, sn.start.x, sn.start.y})
	if err != nil {
		return nil, err
	}
	tail, err := s.findPath(box{sn.end.x, sn.end.y, b.right, b.bottom})
	if err != nil {
		return nil, err
	}

	if head == nil {
		head = []point{sn.start}
	}
	if tail == nil {
		tail = []point{sn.end}
	}
	return append(head, tail...), nil
}

// midpoint finds the middle snake of b by running the forward and backward
// searches alternately until their frontiers overlap. Diagonal k is stored
// at k+max in both frontier vectors.
func (s *searcher) midpoint(b box) (snake, error) {
	max := (b.size() + 1) / 2

	vfp := getFrontier(2*max + 1)
	defer putFrontier(vfp)
	vbp := getFrontier(2*max + 1)
	defer putFrontier(vbp)
	vf, vb := *vfp, *vbp

	vf[max+1] = b.left
	vb[max+1] = b.bottom

	for d := 0; d <= max; d++ {
		if sn, ok, err := s.forward(b, vf, vb, d, max); err != nil || ok {
			return sn, err
		}
		if sn, ok, err := s.backward(b, vf, vb, d, max); err != nil || ok {
			return sn, err
		}
	}
	// A box with a non-zero size always has a middle snake.
	panic("diff: no middle snake found")
}

// forward extends the forward d-paths. vf holds the furthest x per diagonal.
func (s *searcher) forward(b box, vf, vb []int, d, max int) (snake, bool, error) {
	delta := b.delta()
	for k := d; k >= -d; k -= 2 {
		c := k - delta

		var x, px int
		if k == -d || (k != d && vf[max+k-1] < vf[max+k+1]) {
			x = vf[max+k+1]
			px = x
		} else {
			px = vf[max+k-1]
			x = px + 1
		}

		y := b.top + (x - b.left) - k
		py := y
		if d != 0 && x == px {
			py = y - 1
		}

		run := 0
		for x < b.right && y < b.bottom && s.equal(s.old[x], s.new[y]) {
			x++
			y++
			run++
		}
		if err := s.spend(run + 1); err != nil {
			return snake{}, false, err
		}

		vf[max+k] = x

		if delta%2 != 0 && c >= -(d-1) && c <= d-1 && y >= vb[max+c] {
			return snake{point{px, py}, point{x, y}}, true, nil
		}
	}
	return snake{}, false, nil
}

// backward extends the backward d-paths. vb holds the furthest y per
// diagonal, counted from the bottom-right corner.
func (s *searcher) backward(b box, vf, vb []int, d, max int) (snake, bool, error) {
	delta := b.delta()
	for c := d; c >= -d; c -= 2 {
		k := c + delta

		var y, py int
		if c == -d || (c != d && vb[max+c-1] > vb[max+c+1]) {
			y = vb[max+c+1]
			py = y
		} else {
			py = vb[max+c-1]
			y = py - 1
		}

		x := b.left + (y - b.top) + k
		px := x
		if d != 0 && y == py {
			px = x + 1
		}

		run := 0
		for x > b.left && y > b.top && s.equal(s.old[x-1], s.new[y-1]) {
			x--
			y--
			run++
		}
		if err := s.spend(run + 1); err != nil {
			return snake{}, false, err
		}

		vb[max+c] = y

		if delta%2 == 0 && k >= -d && k <= d && x <= vf[max+k] {
			return snake{point{x, y}, point{px, py}}, true, nil
		}
	}
	return snake{}, false, nil
}
