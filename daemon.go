package main

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"pfeifer.dev/drived/cereal"
	"pfeifer.dev/drived/cli"
	"pfeifer.dev/drived/control"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/params"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/settings"
	"pfeifer.dev/drived/utils"
	"pfeifer.dev/drived/waypoints"
)

func vehicleParams(s settings.DriveSettings) control.VehicleParams {
	return control.VehicleParams{
		Mass:             s.VehicleMass,
		FuelCapacity:     s.FuelCapacity,
		BrakeDeadband:    s.BrakeDeadband,
		DecelLimit:       s.DecelLimit,
		AccelLimit:       s.AccelLimit,
		WheelRadius:      s.WheelRadius,
		WheelBase:        s.WheelBase,
		SteerRatio:       s.SteerRatio,
		MaxLatAccel:      s.MaxLatAccel,
		MaxSteerAngle:    s.MaxSteerAngle,
		MinSpeed:         s.MinSpeed,
		StandstillBrake:  s.StandstillBrake,
		ThrottleDeadZone: s.ThrottleDeadZone,
	}
}

// routeFile picks the file given on the command line, falling back to the
// one remembered by load-route.
func routeFile(opts cli.RunOptions) string {
	if opts.RouteFile != "" {
		return opts.RouteFile
	}
	data, err := params.GetParam(params.LAST_ROUTE_FILE)
	if err != nil {
		utils.Logie(errors.Wrap(err, "no remembered route file"))
		return ""
	}
	return string(data)
}

// replaceRoute is the fatal path: a route that can not be indexed leaves
// the updater with nothing safe to publish.
func replaceRoute(updater *waypoints.Updater) func(route.Route) {
	return func(r route.Route) {
		utils.Check(updater.ReplaceRoute(r), "points", r.Len())
	}
}

func runDaemon(ctx context.Context, opts cli.RunOptions, s settings.DriveSettings) error {
	clk := clock.New()

	var open utils.Closers
	defer open.Close()

	lanePub, err := cereal.NewLanePublisher(cereal.FINAL_WAYPOINTS)
	if err != nil {
		return err
	}
	open.Add(lanePub)
	actuatorPub, err := cereal.NewActuatorPublisher(cereal.VEHICLE_CMD)
	if err != nil {
		return err
	}
	open.Add(actuatorPub)

	updater, err := waypoints.NewUpdater(lanePub, waypoints.Config{
		WindowSize: s.WindowSize,
		Rate:       s.WaypointRate,
		Clock:      clk,
	})
	if err != nil {
		return errors.Wrap(err, "could not create waypoint updater")
	}

	law := control.NewTwistController(vehicleParams(s), clk)
	dispatcher, err := dbw.NewDispatcher(law, actuatorPub, dbw.Config{
		Rate:         s.DbwRate,
		MaxSampleAge: s.SampleAge(),
		Clock:        clk,
	})
	if err != nil {
		return errors.Wrap(err, "could not create dbw dispatcher")
	}

	baseSub, err := cereal.NewSubscriber(cereal.BASE_WAYPOINTS, cereal.LaneReader, true)
	if err != nil {
		return err
	}
	open.Add(baseSub)
	poseSub, err := cereal.NewSubscriber(cereal.CURRENT_POSE, cereal.PoseReader, true)
	if err != nil {
		return err
	}
	open.Add(poseSub)
	velocitySub, err := cereal.NewSubscriber(cereal.CURRENT_VELOCITY, cereal.TwistReader, true)
	if err != nil {
		return err
	}
	open.Add(velocitySub)
	twistSub, err := cereal.NewSubscriber(cereal.TWIST_CMD, cereal.TwistReader, true)
	if err != nil {
		return err
	}
	open.Add(twistSub)
	statusSub, err := cereal.NewSubscriber(cereal.DBW_ENABLED, cereal.DbwStatusReader, true)
	if err != nil {
		return err
	}
	open.Add(statusSub)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return updater.Run(ctx) })
	g.Go(func() error { return dispatcher.Run(ctx) })

	g.Go(cereal.NewPump(cereal.BASE_WAYPOINTS, baseSub, replaceRoute(updater), clk).Runner(ctx))
	g.Go(cereal.NewPump(cereal.CURRENT_POSE, poseSub, func(p waypoints.Pose) {
		p.Time = clk.Now()
		updater.SetPose(p)
	}, clk).Runner(ctx))
	g.Go(cereal.NewPump(cereal.CURRENT_VELOCITY, velocitySub, func(v dbw.VelocitySample) {
		v.Time = clk.Now()
		dispatcher.SetCurrent(v)
	}, clk).Runner(ctx))
	g.Go(cereal.NewPump(cereal.TWIST_CMD, twistSub, func(v dbw.VelocitySample) {
		v.Time = clk.Now()
		dispatcher.SetTarget(v)
	}, clk).Runner(ctx))
	g.Go(cereal.NewPump(cereal.DBW_ENABLED, statusSub, dispatcher.SetAuthority, clk).Runner(ctx))

	if path := routeFile(opts); path != "" {
		slog.Info("watching route file", "path", path)
		// routes still arrive on baseWaypoints if the file goes bad
		g.Go(func() error {
			err := route.WatchCSV(ctx, path, s.DefaultRouteVelocity, replaceRoute(updater))
			utils.Loge(errors.Wrap(err, "could not watch route file"), "path", path)
			return nil
		})
	}

	return g.Wait()
}
