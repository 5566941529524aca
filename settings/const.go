package settings

import (
	"math"
	"time"
)

const (
	DEFAULT_SEGMENT_SIZE = 1024 * 1024
	LANE_SEGMENT_SIZE    = 10 * 1024 * 1024
	POLL_DELAY           = 5 * time.Millisecond
	TO_RADIANS           = math.Pi / 180
	TO_DEGREES           = 180 / math.Pi
	R                    = 6373000.0 // approximate radius of earth in meters
	GAS_DENSITY          = 2.858     // kg/gal
	MPH_TO_MS            = 0.44704
)

var segmentSizes = map[string]int64{
	"baseWaypoints":  LANE_SEGMENT_SIZE,
	"finalWaypoints": LANE_SEGMENT_SIZE,
}

// GetSegmentSize returns the msgq segment size for a service. Lanes can
// carry a whole route, everything else is a handful of floats.
func GetSegmentSize(name string) int64 {
	if size, ok := segmentSizes[name]; ok {
		return size
	}
	return DEFAULT_SEGMENT_SIZE
}
