package cereal

import (
	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal/drive"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/waypoints"
)

func LaneCreator(evt drive.Event) (drive.Lane, error) {
	return evt.NewLane()
}

func PoseCreator(evt drive.Event) (drive.Pose, error) {
	return evt.NewPose()
}

func TwistCreator(evt drive.Event) (drive.Twist, error) {
	return evt.NewTwist()
}

func DbwStatusCreator(evt drive.Event) (drive.DbwStatus, error) {
	return evt.NewDbwStatus()
}

func ActuatorsCreator(evt drive.Event) (drive.Actuators, error) {
	return evt.NewActuators()
}

func FillLane(lane drive.Lane, r route.Route) error {
	wps, err := lane.NewWaypoints(int32(len(r)))
	if err != nil {
		return errors.Wrap(err, "could not allocate waypoints")
	}
	for i, p := range r {
		wp := wps.At(i)
		wp.SetX(p.X)
		wp.SetY(p.Y)
		wp.SetZ(p.Z)
		wp.SetVelocity(p.Velocity)
	}
	return nil
}

func FillPose(dst drive.Pose, p waypoints.Pose) {
	dst.SetX(p.X)
	dst.SetY(p.Y)
	dst.SetZ(p.Z)
	dst.SetYaw(p.Yaw)
}

func FillTwist(dst drive.Twist, s dbw.VelocitySample) {
	dst.SetLinear(s.Linear)
	dst.SetAngular(s.Angular)
}

func FillActuators(dst drive.Actuators, cmd dbw.ActuatorCommand) {
	dst.SetThrottle(cmd.Throttle)
	dst.SetBrake(cmd.Brake)
	dst.SetSteer(cmd.Steer)
}
