package math

import (
	m "math"
)

// Vector is a displacement in a local planar frame, in meters.
type Vector struct {
	X float64
	Y float64
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Subtract(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vector) Length() float64 {
	return m.Hypot(v.X, v.Y)
}
