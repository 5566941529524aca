package utils

import (
	"go.uber.org/atomic"
)

// Latest is a single-slot, last-write-wins cell. Writers never block readers
// and a read never observes a partially written value. The zero value is
// empty.
type Latest[T any] struct {
	v atomic.Pointer[T]
}

func (l *Latest[T]) Set(val T) {
	l.v.Store(&val)
}

// Get returns the most recent value and whether one has been set.
func (l *Latest[T]) Get() (val T, ok bool) {
	p := l.v.Load()
	if p == nil {
		return val, false
	}
	return *p, true
}

func (l *Latest[T]) Present() bool {
	return l.v.Load() != nil
}
