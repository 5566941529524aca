package control

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() VehicleParams {
	return VehicleParams{
		Mass:             1736.35,
		FuelCapacity:     13.5,
		BrakeDeadband:    0.1,
		DecelLimit:       -5,
		AccelLimit:       1,
		WheelRadius:      0.2413,
		WheelBase:        2.8498,
		SteerRatio:       14.8,
		MaxLatAccel:      3,
		MaxSteerAngle:    8,
		MinSpeed:         0.1,
		StandstillBrake:  700,
		ThrottleDeadZone: 0.05,
	}
}

func TestPIDClampsAndStopsIntegrating(t *testing.T) {
	p := NewPID(1, 1, 0, -1, 1)
	assert.InDelta(t, 0.55, p.Step(0.5, 0.1), 1e-9)
	assert.InDelta(t, 0.05, p.integral, 1e-9)

	assert.Equal(t, 1.0, p.Step(5, 0.1))
	assert.InDelta(t, 0.05, p.integral, 1e-9, "integral must not wind up while saturated")

	assert.Equal(t, -1.0, p.Step(-5, 0.1))

	p.Reset()
	assert.Zero(t, p.integral)
	assert.Zero(t, p.lastError)
}

func TestPIDZeroInterval(t *testing.T) {
	p := NewPID(2, 1, 1, -10, 10)
	assert.Equal(t, 2.0, p.Step(1, 0))
	assert.Zero(t, p.integral)
}

func TestLowPass(t *testing.T) {
	l := NewLowPass(0.5, 0.02)
	assert.Equal(t, 0.0, l.Filter(0))
	assert.InDelta(t, 1.0, l.Filter(26), 1e-9)
	assert.InDelta(t, 1.0, l.Get(), 1e-9)

	l.Reset()
	assert.Equal(t, 7.0, l.Filter(7))

	passthrough := NewLowPass(1, 0)
	passthrough.Filter(3)
	assert.Equal(t, 9.0, passthrough.Filter(9))
}

func TestYawController(t *testing.T) {
	p := testParams()
	y := YawController{
		WheelBase:     p.WheelBase,
		SteerRatio:    p.SteerRatio,
		MinSpeed:      p.MinSpeed,
		MaxLatAccel:   p.MaxLatAccel,
		MaxSteerAngle: p.MaxSteerAngle,
	}

	assert.Zero(t, y.Steering(0, 0.5, 10))
	assert.Zero(t, y.Steering(10, 0, 10))
	assert.InDelta(t, math.Atan(p.WheelBase/100)*p.SteerRatio, y.Steering(10, 0.1, 10), 1e-9)
	assert.InDelta(t, -math.Atan(p.WheelBase/100)*p.SteerRatio, y.Steering(10, -0.1, 10), 1e-9)

	// yaw rate is limited to MaxLatAccel / speed
	assert.InDelta(t, math.Atan(p.WheelBase/(20/0.15))*p.SteerRatio, y.Steering(20, 2, 20), 1e-9)

	tight := y
	tight.MaxSteerAngle = 0.1
	assert.Equal(t, 0.1, tight.Steering(1, 1, 1))
}

func TestTwistControllerInactiveResets(t *testing.T) {
	mock := clock.NewMock()
	c := NewTwistController(testParams(), mock)

	_, _, _, valid := c.Control(10, 0, 5, 0, false)
	assert.False(t, valid)

	_, _, _, valid = c.Control(10, 0, 5, 0, true)
	assert.False(t, valid, "first active call only primes the time base")
	mock.Add(20 * time.Millisecond)
	_, _, _, valid = c.Control(10, 0, 5, 0, true)
	assert.True(t, valid)

	_, _, _, valid = c.Control(10, 0, 5, 0, false)
	assert.False(t, valid)
	mock.Add(20 * time.Millisecond)
	_, _, _, valid = c.Control(10, 0, 5, 0, true)
	assert.False(t, valid, "a reset requires priming again")
}

func primed(t *testing.T, current float64) (*TwistController, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	c := NewTwistController(testParams(), mock)
	_, _, _, valid := c.Control(0, 0, current, 0, true)
	require.False(t, valid)
	mock.Add(20 * time.Millisecond)
	return c, mock
}

func TestTwistControllerAccelerates(t *testing.T) {
	c, _ := primed(t, 0)
	throttle, brake, steer, valid := c.Control(10, 0, 0, 0, true)
	require.True(t, valid)
	assert.Equal(t, 1.0, throttle)
	assert.Zero(t, brake)
	assert.Zero(t, steer)
}

func TestTwistControllerBrakes(t *testing.T) {
	p := testParams()
	c, _ := primed(t, 10)
	throttle, brake, _, valid := c.Control(5, 0, 10, 0, true)
	require.True(t, valid)
	assert.Zero(t, throttle)
	assert.InDelta(t, 5*p.TotalMass()*p.WheelRadius, brake, 1e-6)
}

func TestTwistControllerBrakeDeadband(t *testing.T) {
	c, _ := primed(t, 10)
	throttle, brake, _, valid := c.Control(9.95, 0, 10, 0, true)
	require.True(t, valid)
	assert.Zero(t, throttle)
	assert.Zero(t, brake)
}

func TestTwistControllerHoldsAtStandstill(t *testing.T) {
	c, _ := primed(t, 0)
	throttle, brake, _, valid := c.Control(0, 0, 0, 0, true)
	require.True(t, valid)
	assert.Zero(t, throttle)
	assert.Equal(t, 700.0, brake)
}

func TestTwistControllerSteers(t *testing.T) {
	p := testParams()
	c, _ := primed(t, 10)
	_, _, steer, valid := c.Control(10, 0.1, 10, 0, true)
	require.True(t, valid)
	assert.InDelta(t, math.Atan(p.WheelBase/100)*p.SteerRatio, steer, 1e-9)
}

func TestTotalMass(t *testing.T) {
	assert.InDelta(t, 1736.35+13.5*2.858, testParams().TotalMass(), 1e-9)
}
