package diff

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// mutate returns a copy of chunks with roughly one in every rate chunks
// replaced.
func mutate(b *testing.B, rng *rand.Rand, chunks []rope.Chunk, rate int) []rope.Chunk {
	out := make([]rope.Chunk, len(chunks))
	copy(out, chunks)
	for i := range out {
		if rng.Intn(rate) == 0 {
			out[i] = mustChunks(b, fmt.Sprintf("changed %d", rng.Int()))[0]
		}
	}
	return out
}

func BenchmarkCompute(b *testing.B) {
	sizes := []int{100, 1000, 10000}
	rates := []int{10, 100}

	for _, n := range sizes {
		for _, rate := range rates {
			rng := rand.New(rand.NewSource(int64(n)))
			old := make([]rope.Chunk, n)
			for i := range old {
				old[i] = mustChunks(b, fmt.Sprintf("chunk %d", i))[0]
			}
			new := mutate(b, rng, old, rate)

			b.Run(fmt.Sprintf("chunks=%d/rate=%d", n, rate), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					if _, err := Compute(old, new, DefaultOptions()); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkApply(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	old := make([]rope.Chunk, 1000)
	for i := range old {
		old[i] = mustChunks(b, fmt.Sprintf("chunk %d", i))[0]
	}
	new := mutate(b, rng, old, 20)
	edits, err := Compute(old, new, DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	oldText, newText := join(old), join(new)

	b.SetBytes(int64(len(newText)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Apply(oldText, newText, edits)
	}
}
