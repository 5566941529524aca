package settings

import (
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
	"pfeifer.dev/drived/params"
)

var (
	Settings = DriveSettings{}
	logLevel = new(slog.LevelVar)
)

type DriveSettings struct {
	VehicleMass          float64 `json:"vehicle_mass"`
	FuelCapacity         float64 `json:"fuel_capacity"`
	BrakeDeadband        float64 `json:"brake_deadband"`
	DecelLimit           float64 `json:"decel_limit"`
	AccelLimit           float64 `json:"accel_limit"`
	WheelRadius          float64 `json:"wheel_radius"`
	WheelBase            float64 `json:"wheel_base"`
	SteerRatio           float64 `json:"steer_ratio"`
	MaxLatAccel          float64 `json:"max_lat_accel"`
	MaxSteerAngle        float64 `json:"max_steer_angle"`
	MinSpeed             float64 `json:"min_speed"`
	StandstillBrake      float64 `json:"standstill_brake"`
	ThrottleDeadZone     float64 `json:"throttle_dead_zone"`
	WindowSize           int     `json:"window_size"`
	WaypointRate         float64 `json:"waypoint_rate"`
	DbwRate              float64 `json:"dbw_rate"`
	MaxSampleAge         float64 `json:"max_sample_age"` // s, 0 disables
	DefaultRouteVelocity float64 `json:"default_route_velocity"`
	LogLevel             string  `json:"log_level"`
	LogFile              string  `json:"log_file"`
}

func (s *DriveSettings) Default() {
	s.VehicleMass = 1736.35
	s.FuelCapacity = 13.5
	s.BrakeDeadband = 0.1
	s.DecelLimit = -5
	s.AccelLimit = 1
	s.WheelRadius = 0.2413
	s.WheelBase = 2.8498
	s.SteerRatio = 14.8
	s.MaxLatAccel = 3
	s.MaxSteerAngle = 8
	s.MinSpeed = 0.1
	s.StandstillBrake = 700
	s.ThrottleDeadZone = 0.05
	s.WindowSize = 200
	s.WaypointRate = 50
	s.DbwRate = 50
	s.MaxSampleAge = 0
	s.DefaultRouteVelocity = 40 * MPH_TO_MS
	s.LogLevel = "error"
	s.LogFile = ""
}

// Validate rejects settings the loops can not run with.
func (s *DriveSettings) Validate() error {
	if s.WindowSize <= 0 {
		return errors.Errorf("window_size must be positive, got %d", s.WindowSize)
	}
	if s.WaypointRate <= 0 {
		return errors.Errorf("waypoint_rate must be positive, got %f", s.WaypointRate)
	}
	if s.DbwRate <= 0 {
		return errors.Errorf("dbw_rate must be positive, got %f", s.DbwRate)
	}
	if s.MaxSampleAge < 0 {
		return errors.Errorf("max_sample_age must not be negative, got %f", s.MaxSampleAge)
	}
	if s.DecelLimit > 0 {
		return errors.Errorf("decel_limit must not be positive, got %f", s.DecelLimit)
	}
	if s.AccelLimit <= 0 {
		return errors.Errorf("accel_limit must be positive, got %f", s.AccelLimit)
	}
	return nil
}

func (s *DriveSettings) SampleAge() time.Duration {
	return time.Duration(s.MaxSampleAge * float64(time.Second))
}

func (s *DriveSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.DRIVE_SETTINGS)
	if err != nil {
		slog.Error("could not load drive settings", "error", err)
		return false
	}

	err = json.Unmarshal(data, s)
	if err != nil {
		slog.Error("could not parse drive settings", "error", err)
		s.Default()
		return false
	}

	if err := s.Validate(); err != nil {
		slog.Error("invalid drive settings, using defaults", "error", err)
		s.Default()
		return false
	}

	s.setLogLevel()
	return true
}

func (s *DriveSettings) LoadWithRetries(tries int) {
	for range tries {
		if s.Load() {
			break
		}
		time.Sleep(1 * time.Second)
	}
	s.Save()
}

func (s *DriveSettings) Save() {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		slog.Error("could not encode drive settings", "error", err)
		return
	}
	err = params.PutParam(params.DRIVE_SETTINGS, data)
	if err != nil {
		slog.Error("could not save drive settings", "error", err)
	}
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

func (s *DriveSettings) setLogLevel() {
	logLevel.Set(ParseLogLevel(s.LogLevel))
	slog.SetLogLoggerLevel(logLevel.Level())
}

// ConfigureLogging applies the log level and, when LogFile is set, sends
// the default logger to a rotated file. The returned closer flushes that
// file.
func (s *DriveSettings) ConfigureLogging() io.Closer {
	s.setLogLevel()
	if s.LogFile == "" {
		return io.NopCloser(nil)
	}
	out := &lumberjack.Logger{
		Filename:   s.LogFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: logLevel})))
	return out
}
