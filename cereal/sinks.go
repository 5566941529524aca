package cereal

import (
	"pfeifer.dev/drived/cereal/drive"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/waypoints"
)

// LanePublisher sends routes as Lane events. It serves both the lookahead
// window output and route loading.
type LanePublisher struct {
	*Publisher[drive.Lane]
}

func NewLanePublisher(name string) (*LanePublisher, error) {
	pub, err := NewPublisher(name, LaneCreator)
	if err != nil {
		return nil, err
	}
	return &LanePublisher{pub}, nil
}

func (p *LanePublisher) PublishLane(window route.Route) error {
	msg, lane, err := p.NewMessage(true)
	if err != nil {
		return err
	}
	if err := FillLane(lane, window); err != nil {
		return err
	}
	return p.Send(msg)
}

type ActuatorPublisher struct {
	*Publisher[drive.Actuators]
}

func NewActuatorPublisher(name string) (*ActuatorPublisher, error) {
	pub, err := NewPublisher(name, ActuatorsCreator)
	if err != nil {
		return nil, err
	}
	return &ActuatorPublisher{pub}, nil
}

func (p *ActuatorPublisher) PublishActuators(cmd dbw.ActuatorCommand) error {
	msg, act, err := p.NewMessage(true)
	if err != nil {
		return err
	}
	FillActuators(act, cmd)
	return p.Send(msg)
}

type PosePublisher struct {
	*Publisher[drive.Pose]
}

func NewPosePublisher(name string) (*PosePublisher, error) {
	pub, err := NewPublisher(name, PoseCreator)
	if err != nil {
		return nil, err
	}
	return &PosePublisher{pub}, nil
}

func (p *PosePublisher) PublishPose(pose waypoints.Pose) error {
	msg, dst, err := p.NewMessage(true)
	if err != nil {
		return err
	}
	FillPose(dst, pose)
	return p.Send(msg)
}

type TwistPublisher struct {
	*Publisher[drive.Twist]
}

func NewTwistPublisher(name string) (*TwistPublisher, error) {
	pub, err := NewPublisher(name, TwistCreator)
	if err != nil {
		return nil, err
	}
	return &TwistPublisher{pub}, nil
}

func (p *TwistPublisher) PublishTwist(s dbw.VelocitySample) error {
	msg, dst, err := p.NewMessage(true)
	if err != nil {
		return err
	}
	FillTwist(dst, s)
	return p.Send(msg)
}

type StatusPublisher struct {
	*Publisher[drive.DbwStatus]
}

func NewStatusPublisher(name string) (*StatusPublisher, error) {
	pub, err := NewPublisher(name, DbwStatusCreator)
	if err != nil {
		return nil, err
	}
	return &StatusPublisher{pub}, nil
}

func (p *StatusPublisher) PublishAuthority(enabled bool) error {
	msg, status, err := p.NewMessage(true)
	if err != nil {
		return err
	}
	status.SetEnabled(enabled)
	return p.Send(msg)
}
