package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pfeifer.dev/drived/cli"
	"pfeifer.dev/drived/params"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/settings"
	"pfeifer.dev/drived/waypoints"
)

type discard struct{}

func (discard) PublishLane(route.Route) error { return nil }

func TestVehicleParamsFromSettings(t *testing.T) {
	s := settings.DriveSettings{}
	s.Default()
	p := vehicleParams(s)
	assert.Equal(t, s.VehicleMass, p.Mass)
	assert.Equal(t, s.StandstillBrake, p.StandstillBrake)
	assert.Equal(t, s.ThrottleDeadZone, p.ThrottleDeadZone)
	assert.Equal(t, s.MaxSteerAngle, p.MaxSteerAngle)
}

func TestRouteFileFallsBackToParam(t *testing.T) {
	old := params.ParamsPath
	params.ParamsPath = filepath.Join(t.TempDir(), "params", "d")
	params.EnsureParamDirectories()
	t.Cleanup(func() { params.ParamsPath = old })

	assert.Empty(t, routeFile(cli.RunOptions{}))

	require.NoError(t, params.PutParam(params.LAST_ROUTE_FILE, []byte("/routes/loop.csv")))
	assert.Equal(t, "/routes/loop.csv", routeFile(cli.RunOptions{}))
	assert.Equal(t, "track.csv", routeFile(cli.RunOptions{RouteFile: "track.csv"}))
}

func TestReplaceRouteFeedsUpdater(t *testing.T) {
	u, err := waypoints.NewUpdater(discard{}, waypoints.Config{WindowSize: 10, Rate: 50})
	require.NoError(t, err)

	replaceRoute(u)(route.Route{{X: 0}, {X: 10}})
	require.NotNil(t, u.Route())
	assert.Equal(t, 2, u.Route().Route.Len())
}
