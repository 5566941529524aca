package cereal

import (
	"math"

	"capnproto.org/go/capnp/v3"
	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal/drive"
	"pfeifer.dev/drived/settings"
	"pfeifer.dev/drived/utils"
)

type Reader[T any] func(drive.Event) (T, error)

type Subscriber[T any] struct {
	Sub    gomsgq.MsgqSubscriber
	name   string
	read   func() []byte
	reader Reader[T]
}

// Read polls the queue once. Nothing new and undecodable messages both
// report false.
func (s *Subscriber[T]) Read() (obj T, success bool) {
	data := s.read()
	if len(data) == 0 {
		return obj, false
	}
	obj, err := Decode(data, s.reader)
	if err != nil {
		utils.Logde(errors.Wrapf(err, "dropped message on %s", s.name))
		return obj, false
	}
	return obj, true
}

func (s *Subscriber[T]) Ready() bool {
	return s.Sub.Ready()
}

func (s *Subscriber[T]) Close() error {
	err, err2 := s.Sub.Msgq.Close()
	if err != nil {
		return errors.Wrap(err, "could not close subscriber")
	}
	return errors.Wrap(err2, "could not close subscriber")
}

// Decode unmarshals a single event and hands it to reader.
func Decode[T any](data []byte, reader Reader[T]) (obj T, err error) {
	msg, err := capnp.Unmarshal(data)
	if err != nil {
		return obj, errors.Wrap(err, "could not unmarshal message")
	}

	// allow us to read as much as we want
	msg.ResetReadLimit(math.MaxUint64)

	event, err := drive.ReadRootEvent(msg)
	if err != nil {
		return obj, errors.Wrap(err, "could not read event")
	}
	return reader(event)
}

func NewSubscriber[T any](name string, reader Reader[T], conflate bool) (*Subscriber[T], error) {
	msgq := gomsgq.Msgq{}
	err := msgq.Init(name, settings.GetSegmentSize(name))
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s for subscribing", name)
	}
	subscriber := &Subscriber[T]{name: name, reader: reader}
	subscriber.Sub.Conflate = conflate
	subscriber.Sub.Init(msgq)
	subscriber.read = func() []byte { return subscriber.Sub.Read() }
	return subscriber, nil
}
