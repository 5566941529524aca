// Package dbw gates actuator commands on driver authority. Every tick the
// control law sees the latest target and current velocities; a command is
// only emitted when the vehicle has granted drive-by-wire authority and the
// law produced a valid output.
package dbw

import (
	"time"
)

// VelocitySample is a linear (m/s) and angular (rad/s) velocity pair.
type VelocitySample struct {
	Linear  float64
	Angular float64
	Time    time.Time
}

type ActuatorCommand struct {
	Throttle float64
	Brake    float64 // N*m
	Steer    float64 // steering wheel angle, rad
}

// ControlLaw is consulted on every tick where both samples are present,
// including ticks without authority so it can reset its internal state.
type ControlLaw interface {
	Control(targetLinear, targetAngular, currentLinear, currentAngular float64, active bool) (throttle, brake, steer float64, valid bool)
}

type Sink interface {
	PublishActuators(cmd ActuatorCommand) error
}

type Reason int

const (
	ReasonNone Reason = iota
	ReasonNotReady
	ReasonAuthorityWithheld
	ReasonInvalidControl
	ReasonPublishFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotReady:
		return "not ready"
	case ReasonAuthorityWithheld:
		return "authority withheld"
	case ReasonInvalidControl:
		return "invalid control"
	case ReasonPublishFailed:
		return "publish failed"
	}
	return "unknown"
}

// Decision is the outcome of one tick. Emit is true only once the sink
// accepted Command. A failed publish keeps the Command it tried to send.
type Decision struct {
	Emit    bool
	Command ActuatorCommand
	Reason  Reason
}

func Emit(cmd ActuatorCommand) Decision {
	return Decision{Emit: true, Command: cmd, Reason: ReasonNone}
}

func PublishFailed(cmd ActuatorCommand) Decision {
	return Decision{Command: cmd, Reason: ReasonPublishFailed}
}

func Suppress(reason Reason) Decision {
	return Decision{Reason: reason}
}
