package engine

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// SnapshotID orders snapshots by creation. Later snapshots have larger IDs.
type SnapshotID uint64

var lastSnapshotID atomic.Uint64

// Snapshot is a named, chunked copy of some text.
// Snapshots are immutable and can be safely shared across goroutines.
type Snapshot struct {
	ID      SnapshotID
	Name    string
	Created time.Time

	seq *rope.Sequence
}

// Sequence returns the chunk sequence.
func (s *Snapshot) Sequence() *rope.Sequence {
	return s.seq
}

// Text returns the full text at this snapshot.
func (s *Snapshot) Text() string {
	return s.seq.String()
}

// Summary returns the counts of the snapshot text.
func (s *Snapshot) Summary() rope.Summary {
	return s.seq.Summary()
}

// Age returns how long ago this snapshot was taken.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Created)
}

// snapshotStore holds at most limit snapshots by name. Storing past the
// limit evicts the snapshots with the smallest IDs.
type snapshotStore struct {
	mu     sync.RWMutex
	byName map[string]*Snapshot
	limit  int
}

func newSnapshotStore(limit int) *snapshotStore {
	return &snapshotStore{
		byName: make(map[string]*Snapshot),
		limit:  limit,
	}
}

// put stores seq under name and reports how many older snapshots were
// evicted to make room.
func (st *snapshotStore) put(name string, seq *rope.Sequence) (*Snapshot, int) {
	snap := &Snapshot{
		ID:      SnapshotID(lastSnapshotID.Add(1)),
		Name:    name,
		Created: time.Now(),
		seq:     seq,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.byName[name] = snap

	excess := len(st.byName) - st.limit
	if excess <= 0 {
		return snap, 0
	}
	for _, old := range st.sortedLocked()[:excess] {
		delete(st.byName, old.Name)
	}
	return snap, excess
}

func (st *snapshotStore) get(name string) (*Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	snap, ok := st.byName[name]
	return snap, ok
}

func (st *snapshotStore) remove(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.byName, name)
}

// list returns all snapshots, oldest first.
func (st *snapshotStore) list() []*Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sortedLocked()
}

func (st *snapshotStore) sortedLocked() []*Snapshot {
	out := make([]*Snapshot, 0, len(st.byName))
	for _, snap := range st.byName {
		out = append(out, snap)
	}
	slices.SortFunc(out, func(a, b *Snapshot) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
