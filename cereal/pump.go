package cereal

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
	"pfeifer.dev/drived/settings"
)

// Source is anything that can be polled for the next message.
type Source[T any] interface {
	Read() (obj T, success bool)
}

// Pump drains a source into a handler. It is how incoming topics reach the
// latest-value caches of the loops.
type Pump[T any] struct {
	name   string
	src    Source[T]
	handle func(T)
	clock  clock.Clock
}

func NewPump[T any](name string, src Source[T], handle func(T), c clock.Clock) *Pump[T] {
	if c == nil {
		c = clock.New()
	}
	return &Pump[T]{name: name, src: src, handle: handle, clock: c}
}

// Run polls until ctx is cancelled. Every available message is handed over
// before the pump sleeps again.
func (p *Pump[T]) Run(ctx context.Context) error {
	slog.Info("pump running", "topic", p.name)
	var received uint64
	for {
		select {
		case <-ctx.Done():
			slog.Info("pump stopped", "topic", p.name, "received", received)
			return nil
		default:
		}

		obj, ok := p.src.Read()
		if !ok {
			p.clock.Sleep(settings.POLL_DELAY)
			continue
		}
		received++
		p.handle(obj)
	}
}

// Runner adapts Run to the func() error shape of errgroup.
func (p *Pump[T]) Runner(ctx context.Context) func() error {
	return func() error { return p.Run(ctx) }
}
