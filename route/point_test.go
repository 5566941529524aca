package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteDistance(t *testing.T) {
	r := Route{{X: 0}, {X: 3, Y: 4}, {X: 3, Y: 4, Z: 12}, {X: 3, Y: 10, Z: 12}}

	assert.InDelta(t, 5, r.Distance(0, 1), 1e-12)
	assert.InDelta(t, 17, r.Distance(0, 2), 1e-12)
	assert.InDelta(t, 23, r.Distance(0, 3), 1e-12)
	assert.InDelta(t, 23, r.Distance(-4, 99), 1e-12)
	assert.Zero(t, r.Distance(2, 2))
	assert.Zero(t, r.Distance(3, 1))
	assert.Zero(t, Route{}.Distance(0, 4))
}

func TestRouteVelocity(t *testing.T) {
	r := Route{{Velocity: 4}, {Velocity: 7}}
	assert.Equal(t, 7.0, r.Velocity(1))
	assert.Zero(t, r.Velocity(2))
	assert.Zero(t, r.Velocity(None))
}
