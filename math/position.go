package math

import (
	m "math"

	ms "pfeifer.dev/drived/settings"
)

func NewPosition(latDeg, lonDeg float64) Position {
	return Position{latitudeDeg: latDeg, longitudeDeg: lonDeg}
}

type Position struct {
	latitudeDeg  float64
	longitudeDeg float64
}

func (p *Position) LatRad() float64 {
	return p.latitudeDeg * ms.TO_RADIANS
}

func (p *Position) LonRad() float64 {
	return p.longitudeDeg * ms.TO_RADIANS
}

func (p *Position) Lat() float64 {
	return p.latitudeDeg
}

func (p *Position) Lon() float64 {
	return p.longitudeDeg
}

func (p *Position) DistanceTo(end Position) float64 {
	latDiff := end.LatRad() - p.LatRad()
	lonDiff := end.LonRad() - p.LonRad()
	a := m.Pow(m.Sin(latDiff/2), 2) + m.Cos(p.LatRad())*m.Cos(end.LatRad())*m.Pow(m.Sin(lonDiff/2), 2)
	c := 2 * m.Atan2(m.Sqrt(a), m.Sqrt(1-a))

	return ms.R * c // in metres
}

// LocalTo projects p onto a plane tangent at origin (equirectangular, x east,
// y north). Good to well under a meter over the few kilometers of a route.
func (p *Position) LocalTo(origin Position) Vector {
	x := (p.LonRad() - origin.LonRad()) * m.Cos(origin.LatRad()) * ms.R
	y := (p.LatRad() - origin.LatRad()) * ms.R
	return Vector{X: x, Y: y}
}
