package diff

import "sync"

// maxPooledFrontier bounds the capacity of frontier vectors kept for reuse.
const maxPooledFrontier = 1 << 20

var frontierPool = sync.Pool{
	New: func() interface{} {
		s := make([]int, 0, 256)
		return &s
	},
}

// getFrontier returns a zeroed vector of n entries.
func getFrontier(n int) *[]int {
	s := frontierPool.Get().(*[]int)
	if cap(*s) < n {
		*s = make([]int, n)
	} else {
		*s = (*s)[:n]
		clear(*s)
	}
	return s
}

func putFrontier(s *[]int) {
	if s == nil || cap(*s) > maxPooledFrontier {
		return
	}
	frontierPool.Put(s)
}
