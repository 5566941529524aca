package utils

import (
	"time"

	"github.com/benbjohnson/clock"
	m "pfeifer.dev/drived/math"
)

// UpdateTracker keeps a moving average of the interval between updates so a
// loop can report the rate it actually achieves.
type UpdateTracker struct {
	LastTime time.Time
	Time     time.Time
	DiffMA   m.MovingAverage
	clock    clock.Clock
}

func (u *UpdateTracker) Init(maLength int, c clock.Clock) {
	if c == nil {
		c = clock.New()
	}
	u.clock = c
	u.LastTime = c.Now()
	u.Time = u.LastTime
	u.DiffMA.Init(maLength)
}

func (u *UpdateTracker) Update() {
	if u.clock == nil {
		u.Init(1, nil)
	}
	u.LastTime = u.Time
	u.Time = u.clock.Now()
	u.DiffMA.Update(u.Time.Sub(u.LastTime).Seconds())
}

// Rate is the average update frequency in Hz, zero until two updates with a
// non-zero interval have been seen.
func (u *UpdateTracker) Rate() float64 {
	if u.DiffMA.Estimate <= 0 {
		return 0
	}
	return 1 / u.DiffMA.Estimate
}
