package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal"
	"pfeifer.dev/drived/params"
	"pfeifer.dev/drived/route"
	ms "pfeifer.dev/drived/settings"
	"pfeifer.dev/drived/utils"
)

func loadRoute(path string, velocity float64, remember bool) error {
	if velocity < 0 {
		ms.Settings.Load()
		velocity = ms.Settings.DefaultRouteVelocity
	}
	r, err := route.LoadCSV(path, velocity)
	if err != nil {
		return err
	}

	pub, err := cereal.NewLanePublisher(cereal.BASE_WAYPOINTS)
	if err != nil {
		return err
	}
	defer func() { utils.Logwe(pub.Close()) }()

	if err := pub.PublishLane(r); err != nil {
		return errors.Wrap(err, "could not publish route")
	}
	fmt.Printf("published %d waypoints from %s\n", r.Len(), path)

	if remember {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrap(err, "could not resolve route path")
		}
		if err := params.PutParam(params.LAST_ROUTE_FILE, []byte(abs)); err != nil {
			return errors.Wrap(err, "could not remember route file")
		}
	}
	return nil
}

func importOSM(ctx context.Context, input string, way int64, velocity float64, output string) error {
	r, err := route.ImportOSMWay(ctx, input, osm.WayID(way), velocity)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "could not create route file")
		}
		defer f.Close()
		w = f
	}
	if err := route.WriteCSV(w, r); err != nil {
		return err
	}
	if output != "-" {
		fmt.Printf("wrote %d waypoints to %s\n", r.Len(), output)
	}
	return nil
}
