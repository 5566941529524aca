package cereal

import (
	"golang.org/x/sys/unix"
)

// GetTime returns CLOCK_MONOTONIC in nanoseconds, the time base of
// logMonoTime.
func GetTime() uint64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return uint64(ts.Nano())
}
