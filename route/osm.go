package route

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
	m "pfeifer.dev/drived/math"
)

var ErrWayNotFound = errors.New("way not found")

const MIN_POINT_SPACING = 0.01 // m

// ImportOSMWay builds a Route from the nodes of a single OSM way, projected
// to meters around the way's first node. When velocity is not positive the
// way's maxspeed tag is used instead.
func ImportOSMWay(ctx context.Context, path string, wayID osm.WayID, velocity float64) (Route, error) {
	var way *osm.Way
	err := scanPBF(ctx, path, func(s *osmpbf.Scanner) {
		s.SkipNodes = true
		s.SkipRelations = true
	}, func(o osm.Object) bool {
		if w, ok := o.(*osm.Way); ok && w.ID == wayID {
			way = w
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if way == nil {
		return nil, errors.Wrapf(ErrWayNotFound, "way %d", wayID)
	}
	if len(way.Nodes) < 2 {
		return nil, errors.Errorf("way %d has %d nodes, need at least 2", wayID, len(way.Nodes))
	}

	missing := map[osm.NodeID][]int{}
	for i, n := range way.Nodes {
		if n.Lat == 0 && n.Lon == 0 {
			missing[n.ID] = append(missing[n.ID], i)
		}
	}

	if len(missing) > 0 {
		err = scanPBF(ctx, path, func(s *osmpbf.Scanner) {
			s.SkipWays = true
			s.SkipRelations = true
		}, func(o osm.Object) bool {
			n, ok := o.(*osm.Node)
			if !ok {
				return true
			}
			if slots, ok := missing[n.ID]; ok {
				for _, i := range slots {
					way.Nodes[i].Lat = n.Lat
					way.Nodes[i].Lon = n.Lon
				}
				delete(missing, n.ID)
			}
			return len(missing) > 0
		})
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, errors.Errorf("way %d references %d nodes missing from %s", wayID, len(missing), path)
		}
	}

	return WayRoute(way, velocity)
}

// WayRoute projects the located nodes of way to meters around its first
// node. Nodes closer than MIN_POINT_SPACING to the previous kept point are
// dropped. When velocity is not positive the maxspeed tag is used instead.
func WayRoute(way *osm.Way, velocity float64) (Route, error) {
	if len(way.Nodes) < 2 {
		return nil, errors.Errorf("way %d has %d nodes, need at least 2", way.ID, len(way.Nodes))
	}
	if velocity <= 0 {
		velocity = ParseMaxSpeed(way.Tags.Find("maxspeed"))
	}

	origin := m.NewPosition(way.Nodes[0].Lat, way.Nodes[0].Lon)
	r := make(Route, 0, len(way.Nodes))
	for _, n := range way.Nodes {
		p := m.NewPosition(n.Lat, n.Lon)
		local := p.LocalTo(origin)
		// repeated nodes would give the lookahead test a zero length segment
		if len(r) > 0 && local.Subtract(r[len(r)-1].Planar()).Length() < MIN_POINT_SPACING {
			continue
		}
		r = append(r, Point{X: local.X, Y: local.Y, Velocity: velocity})
	}
	if len(r) < 2 {
		return nil, errors.Errorf("way %d collapses to %d distinct points", way.ID, len(r))
	}
	return r, nil
}

func scanPBF(ctx context.Context, path string, configure func(*osmpbf.Scanner), visit func(osm.Object) bool) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "could not open map pbf file")
	}
	defer file.Close()

	scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	configure(scanner)

	for scanner.Scan() {
		if !visit(scanner.Object()) {
			break
		}
	}
	return errors.Wrap(scanner.Err(), "could not scan map pbf file")
}

// ParseMaxSpeed converts an OSM maxspeed tag to m/s. A bare number is km/h.
func ParseMaxSpeed(maxspeed string) float64 {
	splitSpeed := strings.Fields(maxspeed)
	if len(splitSpeed) == 0 {
		return 0
	}

	numeric, err := strconv.ParseFloat(splitSpeed[0], 64)
	if err != nil {
		return 0
	}

	if len(splitSpeed) == 1 {
		return 0.277778 * numeric
	}

	switch splitSpeed[1] {
	case "kph", "km/h", "kmh":
		return 0.277778 * numeric
	case "mph":
		return 0.44704 * numeric
	case "knots":
		return 0.514444 * numeric
	}
	return 0
}
