package cli

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/utils"
	"pfeifer.dev/drived/waypoints"
)

type posePublisher interface {
	PublishPose(waypoints.Pose) error
}

type twistPublisher interface {
	PublishTwist(dbw.VelocitySample) error
}

// parseValues reads between least and most finite floats from args.
func parseValues(args []string, least, most int) ([]float64, error) {
	if len(args) < least || len(args) > most {
		return nil, errors.Errorf("expected %d to %d values, got %d", least, most, len(args))
	}
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i+1)
		}
		if !route.Finite(v) {
			return nil, errors.Wrapf(route.ErrNonFinite, "value %d", i+1)
		}
		values[i] = v
	}
	return values, nil
}

// sendPose publishes X Y [Z [YAW]].
func sendPose(pub posePublisher, args []string) (waypoints.Pose, error) {
	v, err := parseValues(args, 2, 4)
	if err != nil {
		return waypoints.Pose{}, err
	}
	v = append(v, 0, 0)
	pose := waypoints.Pose{X: v[0], Y: v[1], Z: v[2], Yaw: v[3]}
	if err := pub.PublishPose(pose); err != nil {
		return pose, errors.Wrap(err, "could not publish pose")
	}
	return pose, nil
}

// sendTwist publishes LINEAR [ANGULAR].
func sendTwist(pub twistPublisher, args []string) (dbw.VelocitySample, error) {
	v, err := parseValues(args, 1, 2)
	if err != nil {
		return dbw.VelocitySample{}, err
	}
	v = append(v, 0)
	s := dbw.VelocitySample{Linear: v[0], Angular: v[1]}
	if err := pub.PublishTwist(s); err != nil {
		return s, errors.Wrap(err, "could not publish twist")
	}
	return s, nil
}

func injectPose(args []string) error {
	pub, err := cereal.NewPosePublisher(cereal.CURRENT_POSE)
	if err != nil {
		return err
	}
	defer func() { utils.Logwe(pub.Close()) }()

	pose, err := sendPose(pub, args)
	if err != nil {
		return err
	}
	fmt.Printf("published pose x=%.2f y=%.2f z=%.2f yaw=%.3f\n", pose.X, pose.Y, pose.Z, pose.Yaw)
	return nil
}

// twistTopic picks the velocity the daemon reads: the commanded target or
// the measured current one.
func twistTopic(current bool) string {
	if current {
		return cereal.CURRENT_VELOCITY
	}
	return cereal.TWIST_CMD
}

func injectTwist(args []string, current bool) error {
	topic := twistTopic(current)
	pub, err := cereal.NewTwistPublisher(topic)
	if err != nil {
		return err
	}
	defer func() { utils.Logwe(pub.Close()) }()

	s, err := sendTwist(pub, args)
	if err != nil {
		return err
	}
	fmt.Printf("published %s linear=%.2f angular=%.3f\n", topic, s.Linear, s.Angular)
	return nil
}
