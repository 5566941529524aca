package control

import (
	"log/slog"
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"pfeifer.dev/drived/settings"
)

const (
	DEFAULT_KP = 0.3
	DEFAULT_KI = 0.1
	DEFAULT_KD = 0.0

	VELOCITY_TAU = 0.5  // s
	SAMPLE_TIME  = 0.02 // s

	STANDSTILL_SPEED = 0.1 // m/s
)

type VehicleParams struct {
	Mass             float64 // kg
	FuelCapacity     float64 // gal
	BrakeDeadband    float64
	DecelLimit       float64 // m/s^2, negative
	AccelLimit       float64 // m/s^2
	WheelRadius      float64 // m
	WheelBase        float64 // m
	SteerRatio       float64
	MaxLatAccel      float64 // m/s^2
	MaxSteerAngle    float64 // rad
	MinSpeed         float64 // m/s
	StandstillBrake  float64 // N*m
	ThrottleDeadZone float64
}

// TotalMass is the vehicle mass plus a full tank of fuel.
func (v VehicleParams) TotalMass() float64 {
	return v.Mass + v.FuelCapacity*settings.GAS_DENSITY
}

// TwistController is the reference control law. It resets whenever it is
// called without authority, and the first call after a reset only starts
// the time base so the PID never sees a made up interval.
type TwistController struct {
	params VehicleParams
	yaw    YawController
	pid    PID
	lpf    LowPass
	clock  clock.Clock
	last   time.Time
	primed bool
}

func NewTwistController(params VehicleParams, c clock.Clock) *TwistController {
	if c == nil {
		c = clock.New()
	}
	return &TwistController{
		params: params,
		yaw: YawController{
			WheelBase:     params.WheelBase,
			SteerRatio:    params.SteerRatio,
			MinSpeed:      params.MinSpeed,
			MaxLatAccel:   params.MaxLatAccel,
			MaxSteerAngle: params.MaxSteerAngle,
		},
		pid:   NewPID(DEFAULT_KP, DEFAULT_KI, DEFAULT_KD, 0, params.AccelLimit),
		lpf:   NewLowPass(VELOCITY_TAU, SAMPLE_TIME),
		clock: c,
	}
}

func (t *TwistController) Reset() {
	if t.primed {
		slog.Debug("twist controller reset")
	}
	t.pid.Reset()
	t.lpf.Reset()
	t.primed = false
}

func (t *TwistController) Control(targetLinear, targetAngular, currentLinear, currentAngular float64, active bool) (throttle, brake, steer float64, valid bool) {
	if !active {
		t.Reset()
		return 0, 0, 0, false
	}

	now := t.clock.Now()
	current := t.lpf.Filter(currentLinear)
	if !t.primed {
		t.primed = true
		t.last = now
		return 0, 0, 0, false
	}
	dt := now.Sub(t.last).Seconds()
	t.last = now

	steer = t.yaw.Steering(targetLinear, targetAngular, current)

	velErr := targetLinear - current
	throttle = t.pid.Step(velErr, dt)

	switch {
	case targetLinear == 0 && current < STANDSTILL_SPEED:
		throttle = 0
		brake = t.params.StandstillBrake
	case throttle < t.params.ThrottleDeadZone && velErr < 0:
		throttle = 0
		if math.Abs(velErr) > t.params.BrakeDeadband {
			decel := math.Max(velErr, t.params.DecelLimit)
			brake = math.Abs(decel) * t.params.TotalMass() * t.params.WheelRadius
		}
	}

	return lo.Clamp(throttle, 0, t.params.AccelLimit), brake, steer, true
}
