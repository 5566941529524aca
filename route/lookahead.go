package route

import (
	m "pfeifer.dev/drived/math"
)

// SelectNext returns the index of the next waypoint to track from position
// (x, y), or None.
//
// The nearest waypoint is found with the spatial index; whether it is
// already behind the vehicle is decided from the displacement vectors to it
// and to its neighbour, so no heading is needed. Routes with fewer than two
// points have no next point.
func SelectNext(r Route, idx *Index, x, y float64) int {
	n := len(r)
	if n <= 1 || idx == nil {
		return None
	}

	i, _ := idx.Nearest(x, y)
	if i < 0 || i >= n {
		return None
	}

	pos := m.NewVector(x, y)
	toCur := pos.Subtract(r[i].Planar())

	if i+1 < n {
		toNext := pos.Subtract(r[i+1].Planar())
		if toNext.Dot(toCur) <= 0 {
			return i + 1
		}
		return i
	}

	// nearest is the last waypoint; keep reporting it while the vehicle is
	// still between it and the one before
	if i >= 1 {
		toPrev := pos.Subtract(r[i-1].Planar())
		if toPrev.Dot(toCur) < 0 {
			return i
		}
	}

	return None
}
