// Package control holds the longitudinal and lateral controllers that turn
// a target twist into throttle, brake torque and steering wheel angle.
package control

import (
	"github.com/samber/lo"
)

// PID is a discrete PID controller whose output is clamped to [Min, Max].
// The integral term stops accumulating while the output is saturated.
type PID struct {
	Kp, Ki, Kd float64
	Min, Max   float64

	integral  float64
	lastError float64
}

func NewPID(kp, ki, kd, mn, mx float64) PID {
	return PID{Kp: kp, Ki: ki, Kd: kd, Min: mn, Max: mx}
}

func (p *PID) Reset() {
	p.integral = 0
	p.lastError = 0
}

// Step advances the controller by dt seconds. A non-positive dt only
// applies the proportional term.
func (p *PID) Step(err, dt float64) float64 {
	integral := p.integral
	derivative := 0.0
	if dt > 0 {
		integral += err * dt
		derivative = (err - p.lastError) / dt
	}
	val := p.Kp*err + p.Ki*integral + p.Kd*derivative
	p.lastError = err
	if val > p.Max || val < p.Min {
		return lo.Clamp(val, p.Min, p.Max)
	}
	p.integral = integral
	return val
}
