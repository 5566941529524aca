// Package route holds the static reference route a vehicle tracks and the
// lookahead logic that picks which part of it is ahead of the vehicle.
package route

import (
	"math"

	"github.com/pkg/errors"
	m "pfeifer.dev/drived/math"
)

// None is returned by SelectNext when no point ahead can be determined.
const None = -1

// ErrNonFinite rejects NaN or infinite coordinates wherever a route or a
// pose enters the process.
var ErrNonFinite = errors.New("non-finite value")

func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Point is a single waypoint. Its identity is its index in the Route.
type Point struct {
	X        float64
	Y        float64
	Z        float64
	Velocity float64 // reference longitudinal velocity, m/s
}

// Route is an ordered sequence of waypoints. A Route is never mutated once
// it has been handed to a Store; replacing it means building a new one.
type Route []Point

// Planar drops the height and velocity of a point.
func (p Point) Planar() m.Vector {
	return m.NewVector(p.X, p.Y)
}

func (r Route) Len() int {
	return len(r)
}

// Velocity returns the reference velocity of point i, zero when i is out of
// range.
func (r Route) Velocity(i int) float64 {
	if i < 0 || i >= len(r) {
		return 0
	}
	return r[i].Velocity
}

// Distance is the length of the polyline from point from to point to,
// following every intermediate point. Indices are clamped to the route.
func (r Route) Distance(from, to int) float64 {
	from = max(from, 0)
	to = min(to, len(r)-1)
	dist := 0.0
	for i := from + 1; i <= to; i++ {
		a, b := r[i-1], r[i]
		dist += math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
	}
	return dist
}
