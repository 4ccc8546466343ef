package rope

import "sync"

// maxPooledOffsets bounds the capacity of offset slices kept for reuse.
const maxPooledOffsets = 64 * 1024

// offsetPool recycles the grapheme offset scratch slices used while
// building sequences.
var offsetPool = sync.Pool{
	New: func() interface{} {
		s := make([]int, 0, 1024)
		return &s
	},
}

// getOffsets retrieves an empty offset slice from the pool.
func getOffsets() *[]int {
	s := offsetPool.Get().(*[]int)
	*s = (*s)[:0]
	return s
}

// putOffsets returns an offset slice to the pool.
func putOffsets(s *[]int) {
	if s == nil {
		return
	}
	// Only keep reasonably sized buffers
	if cap(*s) > maxPooledOffsets {
		return
	}
	*s = (*s)[:0]
	offsetPool.Put(s)
}
