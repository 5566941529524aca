package control

import (
	"math"

	"github.com/samber/lo"
)

// YawController converts a target yaw rate into a steering wheel angle for a
// bicycle model, limiting the yaw rate so lateral acceleration stays under
// MaxLatAccel.
type YawController struct {
	WheelBase     float64
	SteerRatio    float64
	MinSpeed      float64
	MaxLatAccel   float64
	MaxSteerAngle float64 // rad, at the steering wheel
}

func (y YawController) angle(radius float64) float64 {
	a := math.Atan(y.WheelBase/radius) * y.SteerRatio
	return lo.Clamp(a, -y.MaxSteerAngle, y.MaxSteerAngle)
}

// Steering returns the steering wheel angle needed to follow the target
// twist at the current speed.
func (y YawController) Steering(linear, angular, current float64) float64 {
	if math.Abs(linear) > 0 {
		angular = current * angular / linear
	} else {
		angular = 0
	}

	if math.Abs(current) > 0.1 {
		maxYawRate := math.Abs(y.MaxLatAccel / current)
		angular = lo.Clamp(angular, -maxYawRate, maxYawRate)
	}

	if math.Abs(angular) == 0 {
		return 0
	}
	return y.angle(math.Max(current, y.MinSpeed) / angular)
}
