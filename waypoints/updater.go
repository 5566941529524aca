// Package waypoints runs the loop that republishes the lookahead window of
// the reference route ahead of the vehicle's latest known pose.
package waypoints

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/utils"
)

const (
	DEFAULT_WINDOW_SIZE = 200
	DEFAULT_RATE        = 50.0 // Hz
)

// Pose is the latest localization output. Only X and Y take part in the
// lookahead selection.
type Pose struct {
	X    float64
	Y    float64
	Z    float64
	Yaw  float64
	Time time.Time
}

// Sink receives every window the loop computes, including empty ones.
type Sink interface {
	PublishLane(window route.Route) error
}

type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

type Config struct {
	WindowSize int
	Rate       float64
	Clock      clock.Clock
}

// Updater owns the route store and the latest pose. Producers call SetPose
// and ReplaceRoute from any goroutine; Run is the only reader.
type Updater struct {
	store      route.Store
	pose       utils.Latest[Pose]
	sink       Sink
	windowSize int
	period     time.Duration
	clock      clock.Clock
	tracker    utils.UpdateTracker
	ticks      int
}

func NewUpdater(sink Sink, cfg Config) (*Updater, error) {
	if sink == nil {
		return nil, errors.New("waypoint updater needs a sink")
	}
	if cfg.WindowSize <= 0 {
		return nil, errors.Errorf("window size must be positive, got %d", cfg.WindowSize)
	}
	if cfg.Rate <= 0 || cfg.Rate > 1000 {
		return nil, errors.Errorf("waypoint rate must be in (0, 1000] Hz, got %f", cfg.Rate)
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	u := &Updater{
		sink:       sink,
		windowSize: cfg.WindowSize,
		period:     time.Duration(float64(time.Second) / cfg.Rate),
		clock:      cfg.Clock,
	}
	u.tracker.Init(int(cfg.Rate), cfg.Clock)
	return u, nil
}

func (u *Updater) SetPose(p Pose) {
	u.pose.Set(p)
}

// ReplaceRoute swaps in a new reference route. A tick running concurrently
// sees either the old route and index or the new pair, never a mix. An
// error means the index could not be built and the old route is kept.
func (u *Updater) ReplaceRoute(r route.Route) error {
	snap, err := u.store.Replace(r)
	if err != nil {
		return err
	}
	slog.Info("reference route loaded", "points", snap.Route.Len(), "version", snap.Version)
	return nil
}

// Route returns the current route snapshot, nil until one was loaded.
func (u *Updater) Route() *route.Snapshot {
	return u.store.Load()
}

func (u *Updater) State() State {
	if u.store.Load() != nil && u.pose.Present() {
		return StateReady
	}
	return StateUninitialized
}

// Step runs a single tick. Until both a route and a pose are known it does
// nothing. Otherwise the window is published whether or not it is empty.
func (u *Updater) Step() (window route.Route, published bool) {
	snap := u.store.Load()
	pose, ok := u.pose.Get()
	if snap == nil || !ok {
		return nil, false
	}

	next := snap.SelectNext(pose.X, pose.Y)
	window = route.BuildWindow(snap.Route, next, u.windowSize)
	err := u.sink.PublishLane(window)
	utils.Logwe(errors.Wrap(err, "could not publish lookahead window"))

	slog.Debug("waypoints",
		"x", pose.X,
		"y", pose.Y,
		"next", next,
		"window", len(window),
		"routeVersion", snap.Version,
	)
	return window, true
}

// Run ticks at the configured rate until ctx is cancelled.
func (u *Updater) Run(ctx context.Context) error {
	ticker := u.clock.Ticker(u.period)
	defer ticker.Stop()
	slog.Info("waypoint updater running", "period", u.period, "windowSize", u.windowSize)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			u.Step()
			u.tracker.Update()
			u.ticks++
			if u.ticks%500 == 0 {
				slog.Debug("waypoint updater rate", "hz", u.tracker.Rate(), "state", u.State())
			}
		}
	}
}
