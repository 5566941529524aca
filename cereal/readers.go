package cereal

import (
	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal/drive"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/waypoints"
)

var ErrNonFinite = route.ErrNonFinite

var finite = route.Finite

// LaneReader decodes a lane into a route. A lane with any non-finite
// coordinate is rejected as a whole.
func LaneReader(evt drive.Event) (route.Route, error) {
	lane, err := evt.Lane()
	if err != nil {
		return nil, err
	}
	wps, err := lane.Waypoints()
	if err != nil {
		return nil, errors.Wrap(err, "could not read lane waypoints")
	}
	r := make(route.Route, wps.Len())
	for i := range r {
		wp := wps.At(i)
		r[i] = route.Point{X: wp.X(), Y: wp.Y(), Z: wp.Z(), Velocity: wp.Velocity()}
		if !finite(r[i].X, r[i].Y, r[i].Z, r[i].Velocity) {
			return nil, errors.Wrapf(ErrNonFinite, "waypoint %d", i)
		}
	}
	return r, nil
}

func PoseReader(evt drive.Event) (waypoints.Pose, error) {
	pose, err := evt.Pose()
	if err != nil {
		return waypoints.Pose{}, err
	}
	p := waypoints.Pose{X: pose.X(), Y: pose.Y(), Z: pose.Z(), Yaw: pose.Yaw()}
	if !finite(p.X, p.Y) {
		return waypoints.Pose{}, errors.Wrap(ErrNonFinite, "pose")
	}
	return p, nil
}

// TwistReader decodes a velocity sample. The sample is not timestamped
// here, the receiver stamps it against its own clock.
func TwistReader(evt drive.Event) (dbw.VelocitySample, error) {
	twist, err := evt.Twist()
	if err != nil {
		return dbw.VelocitySample{}, err
	}
	s := dbw.VelocitySample{Linear: twist.Linear(), Angular: twist.Angular()}
	if !finite(s.Linear, s.Angular) {
		return dbw.VelocitySample{}, errors.Wrap(ErrNonFinite, "twist")
	}
	return s, nil
}

func DbwStatusReader(evt drive.Event) (bool, error) {
	status, err := evt.DbwStatus()
	if err != nil {
		return false, err
	}
	return status.Enabled(), nil
}

func ActuatorsReader(evt drive.Event) (dbw.ActuatorCommand, error) {
	act, err := evt.Actuators()
	if err != nil {
		return dbw.ActuatorCommand{}, err
	}
	return dbw.ActuatorCommand{Throttle: act.Throttle(), Brake: act.Brake(), Steer: act.Steer()}, nil
}
