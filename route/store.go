package route

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Snapshot pairs a Route with the Index built from it. Both are immutable,
// so a reader holding a Snapshot always sees a consistent pair.
type Snapshot struct {
	Route   Route
	Index   *Index
	Version uint64
}

// SelectNext runs the lookahead selection against this snapshot.
func (s *Snapshot) SelectNext(x, y float64) int {
	return SelectNext(s.Route, s.Index, x, y)
}

// Store publishes route snapshots. Readers are lock free; replacements are
// serialized and become visible in a single atomic swap once the new index
// is fully built.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// Load returns the current snapshot, nil before the first route.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Replace builds an index for r and swaps it in. On failure the previous
// snapshot stays in place.
func (s *Store) Replace(r Route) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r = slices.Clone(r)
	idx, err := NewIndex(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not replace route")
	}

	version := uint64(1)
	if prev := s.current.Load(); prev != nil {
		version = prev.Version + 1
	}
	snap := &Snapshot{Route: r, Index: idx, Version: version}
	s.current.Store(snap)
	return snap, nil
}

func (s *Store) Version() uint64 {
	if snap := s.current.Load(); snap != nil {
		return snap.Version
	}
	return 0
}
