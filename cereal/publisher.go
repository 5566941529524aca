package cereal

import (
	"capnproto.org/go/capnp/v3"
	"github.com/pfeiferj/gomsgq"
	"github.com/pkg/errors"
	"pfeifer.dev/drived/cereal/drive"
	"pfeifer.dev/drived/settings"
)

type MessageCreator[T any] func(drive.Event) (T, error)

type Publisher[T any] struct {
	Pub     gomsgq.MsgqPublisher
	msgq    gomsgq.Msgq
	send    func([]byte)
	creator MessageCreator[T]
}

func (p *Publisher[T]) Send(msg *capnp.Message) error {
	b, err := msg.Marshal()
	if err != nil {
		return errors.Wrap(err, "could not marshal message")
	}
	p.send(b)
	return nil
}

// NewMessage starts a new event stamped with the monotonic clock and returns
// the union member the creator selected.
func (p *Publisher[T]) NewMessage(valid bool) (msg *capnp.Message, obj T, err error) {
	return newMessage(valid, p.creator)
}

func (p *Publisher[T]) Close() error {
	err, err2 := p.msgq.Close()
	if err != nil {
		return errors.Wrap(err, "could not close publisher")
	}
	return errors.Wrap(err2, "could not close publisher")
}

func newMessage[T any](valid bool, creator MessageCreator[T]) (msg *capnp.Message, obj T, err error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not create message")
	}

	event, err := drive.NewRootEvent(seg)
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not create event")
	}

	event.SetLogMonoTime(GetTime())
	event.SetValid(valid)

	obj, err = creator(event)
	if err != nil {
		return nil, obj, errors.Wrap(err, "could not create event member")
	}
	return msg, obj, nil
}

func NewPublisher[T any](name string, creator MessageCreator[T]) (*Publisher[T], error) {
	msgq := gomsgq.Msgq{}
	err := msgq.Init(name, settings.GetSegmentSize(name))
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s for publishing", name)
	}
	publisher := &Publisher[T]{msgq: msgq, creator: creator}
	publisher.Pub.Init(msgq)
	publisher.send = func(b []byte) { publisher.Pub.Send(b) }
	return publisher, nil
}
