package dbw

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"pfeifer.dev/drived/utils"
)

const DEFAULT_RATE = 50.0 // Hz

type Config struct {
	Rate float64
	// MaxSampleAge treats a velocity sample older than this as absent. Zero
	// disables the check.
	MaxSampleAge time.Duration
	Clock        clock.Clock
}

type Dispatcher struct {
	law       ControlLaw
	sink      Sink
	target    utils.Latest[VelocitySample]
	current   utils.Latest[VelocitySample]
	authority atomic.Bool
	maxAge    time.Duration
	period    time.Duration
	clock     clock.Clock

	emitted    atomic.Uint64
	notReady   atomic.Uint64
	withheld   atomic.Uint64
	invalid    atomic.Uint64
	publishErr atomic.Uint64
}

func NewDispatcher(law ControlLaw, sink Sink, cfg Config) (*Dispatcher, error) {
	if law == nil {
		return nil, errors.New("dbw dispatcher needs a control law")
	}
	if sink == nil {
		return nil, errors.New("dbw dispatcher needs a sink")
	}
	if cfg.Rate <= 0 || cfg.Rate > 1000 {
		return nil, errors.Errorf("dbw rate must be in (0, 1000] Hz, got %f", cfg.Rate)
	}
	if cfg.MaxSampleAge < 0 {
		return nil, errors.Errorf("max sample age must not be negative, got %s", cfg.MaxSampleAge)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Dispatcher{
		law:    law,
		sink:   sink,
		maxAge: cfg.MaxSampleAge,
		period: time.Duration(float64(time.Second) / cfg.Rate),
		clock:  cfg.Clock,
	}, nil
}

func (d *Dispatcher) SetTarget(s VelocitySample) {
	d.target.Set(s)
}

func (d *Dispatcher) SetCurrent(s VelocitySample) {
	d.current.Set(s)
}

// SetAuthority records the latest enable signal. Authority starts withheld.
func (d *Dispatcher) SetAuthority(enabled bool) {
	if d.authority.Swap(enabled) != enabled {
		slog.Info("dbw authority changed", "enabled", enabled)
	}
}

func (d *Dispatcher) Authority() bool {
	return d.authority.Load()
}

func (d *Dispatcher) sample(l *utils.Latest[VelocitySample], now time.Time) (VelocitySample, bool) {
	s, ok := l.Get()
	if !ok {
		return s, false
	}
	if d.maxAge > 0 && now.Sub(s.Time) > d.maxAge {
		return s, false
	}
	return s, true
}

// Step runs a single tick and reports what it decided. At most one command
// reaches the sink per call.
func (d *Dispatcher) Step() Decision {
	now := d.clock.Now()
	target, okTarget := d.sample(&d.target, now)
	current, okCurrent := d.sample(&d.current, now)
	if !okTarget || !okCurrent {
		d.notReady.Inc()
		return Suppress(ReasonNotReady)
	}

	active := d.authority.Load()
	throttle, brake, steer, valid := d.law.Control(
		target.Linear, target.Angular,
		current.Linear, current.Angular,
		active,
	)
	if !active {
		d.withheld.Inc()
		return Suppress(ReasonAuthorityWithheld)
	}
	if !valid {
		d.invalid.Inc()
		return Suppress(ReasonInvalidControl)
	}

	cmd := ActuatorCommand{Throttle: throttle, Brake: brake, Steer: steer}
	err := d.sink.PublishActuators(cmd)
	if err != nil {
		d.publishErr.Inc()
		utils.Logwe(errors.Wrap(err, "could not publish actuator command"))
		return PublishFailed(cmd)
	}
	d.emitted.Inc()
	return Emit(cmd)
}

// Counters is a snapshot of how many ticks ended in each outcome.
type Counters struct {
	Emitted       uint64
	NotReady      uint64
	Withheld      uint64
	Invalid       uint64
	PublishErrors uint64
}

func (d *Dispatcher) Counters() Counters {
	return Counters{
		Emitted:       d.emitted.Load(),
		NotReady:      d.notReady.Load(),
		Withheld:      d.withheld.Load(),
		Invalid:       d.invalid.Load(),
		PublishErrors: d.publishErr.Load(),
	}
}

// Run ticks at the configured rate until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := d.clock.Ticker(d.period)
	defer ticker.Stop()
	slog.Info("dbw dispatcher running", "period", d.period, "maxSampleAge", d.maxAge)

	var ticks int
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			decision := d.Step()
			ticks++
			if ticks%500 == 0 {
				c := d.Counters()
				slog.Debug("dbw dispatcher",
					"last", decision.Reason,
					"emitted", c.Emitted,
					"notReady", c.NotReady,
					"withheld", c.Withheld,
					"invalid", c.Invalid,
					"publishErrors", c.PublishErrors,
				)
			}
		}
	}
}
