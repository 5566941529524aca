package utils

import (
	"log/slog"
)

// Check is the fatal path: log and panic. Only used where the process can
// not keep driving safely without the value.
func Check(e error, args ...any) {
	if e != nil {
		slog.Error("Unexpected Error", append([]any{"error", e}, args...)...)
		panic(e)
	}
}

func Loge(e error, args ...any) {
	if e != nil {
		slog.Error("", append([]any{"error", e}, args...)...)
	}
}

func Logwe(e error, args ...any) {
	if e != nil {
		slog.Warn("", append([]any{"error", e}, args...)...)
	}
}

func Logie(e error, args ...any) {
	if e != nil {
		slog.Info("", append([]any{"error", e}, args...)...)
	}
}

func Logde(e error, args ...any) {
	if e != nil {
		slog.Debug("", append([]any{"error", e}, args...)...)
	}
}
