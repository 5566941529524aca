package route

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMaxSpeed(t *testing.T) {
	assert.InDelta(t, 13.889, ParseMaxSpeed("50"), 1e-3)
	assert.InDelta(t, 13.889, ParseMaxSpeed("50 km/h"), 1e-3)
	assert.InDelta(t, 29.0576, ParseMaxSpeed("65 mph"), 1e-4)
	assert.InDelta(t, 5.14444, ParseMaxSpeed("10 knots"), 1e-4)
	assert.Zero(t, ParseMaxSpeed(""))
	assert.Zero(t, ParseMaxSpeed("signals"))
	assert.Zero(t, ParseMaxSpeed("50 furlongs"))
}

func TestImportOSMWayMissingFile(t *testing.T) {
	_, err := ImportOSMWay(context.Background(), filepath.Join(t.TempDir(), "map.osm.pbf"), 1, 0)
	assert.ErrorContains(t, err, "could not open map pbf file")
}

func testWay() *osm.Way {
	return &osm.Way{
		ID: 42,
		Nodes: osm.WayNodes{
			{ID: 1, Lat: 40.0, Lon: -105.0},
			{ID: 2, Lat: 40.001, Lon: -105.0},
			// same location as node 2, a junction split into two nodes
			{ID: 3, Lat: 40.001, Lon: -105.0},
			{ID: 4, Lat: 40.001, Lon: -104.999},
		},
		Tags: osm.Tags{{Key: "highway", Value: "residential"}, {Key: "maxspeed", Value: "25 mph"}},
	}
}

func TestWayRoute(t *testing.T) {
	r, err := WayRoute(testWay(), 0)
	require.NoError(t, err)
	require.Len(t, r, 3)

	// origin at the first node
	assert.Zero(t, r[0].X)
	assert.Zero(t, r[0].Y)

	// 0.001 degrees of latitude due north
	assert.InDelta(t, 0, r[1].X, 1e-9)
	assert.InDelta(t, 111.23, r[1].Y, 0.01)

	// 0.001 degrees of longitude east, shrunk by cos(40)
	assert.InDelta(t, 85.21, r[2].X, 0.01)
	assert.InDelta(t, r[1].Y, r[2].Y, 1e-9)

	for _, p := range r {
		assert.InDelta(t, 11.176, p.Velocity, 1e-9)
	}
}

func TestWayRouteVelocityOverride(t *testing.T) {
	r, err := WayRoute(testWay(), 7.5)
	require.NoError(t, err)
	for _, p := range r {
		assert.Equal(t, 7.5, p.Velocity)
	}

	way := testWay()
	way.Tags = nil
	r, err = WayRoute(way, 0)
	require.NoError(t, err)
	assert.Zero(t, r.Velocity(0))
}

func TestWayRouteTooShort(t *testing.T) {
	way := testWay()
	way.Nodes = way.Nodes[:1]
	_, err := WayRoute(way, 0)
	assert.ErrorContains(t, err, "need at least 2")

	way = testWay()
	way.Nodes = way.Nodes[1:3]
	_, err = WayRoute(way, 0)
	assert.ErrorContains(t, err, "collapses to 1 distinct points")
}
