package cereal

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pfeifer.dev/drived/cereal/drive"
	"pfeifer.dev/drived/dbw"
	"pfeifer.dev/drived/route"
	"pfeifer.dev/drived/waypoints"
)

// fakePublisher captures marshalled messages instead of writing to msgq.
func fakePublisher[T any](creator MessageCreator[T]) (*Publisher[T], *[][]byte) {
	var sent [][]byte
	return &Publisher[T]{creator: creator, send: func(b []byte) { sent = append(sent, b) }}, &sent
}

func TestLaneThroughPublisher(t *testing.T) {
	pub, sent := fakePublisher(LaneCreator)
	lanes := &LanePublisher{pub}

	want := route.Route{
		{X: 1, Y: 2, Z: 3, Velocity: 11},
		{X: 4.5, Y: -6, Z: 0, Velocity: 0},
	}
	require.NoError(t, lanes.PublishLane(want))
	require.Len(t, *sent, 1)

	got, err := Decode((*sent)[0], LaneReader)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lane mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyLane(t *testing.T) {
	pub, sent := fakePublisher(LaneCreator)
	lanes := &LanePublisher{pub}
	require.NoError(t, lanes.PublishLane(route.Route{}))

	got, err := Decode((*sent)[0], LaneReader)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventHeader(t *testing.T) {
	before := GetTime()
	msg, _, err := newMessage(true, PoseCreator)
	require.NoError(t, err)
	b, err := msg.Marshal()
	require.NoError(t, err)

	evt, err := Decode(b, func(evt drive.Event) (drive.Event, error) { return evt, nil })
	require.NoError(t, err)
	assert.True(t, evt.Valid())
	assert.Equal(t, drive.Event_Which_pose, evt.Which())
	assert.GreaterOrEqual(t, evt.LogMonoTime(), before)
}

func TestActuatorsThroughPublisher(t *testing.T) {
	pub, sent := fakePublisher(ActuatorsCreator)
	acts := &ActuatorPublisher{pub}
	want := dbw.ActuatorCommand{Throttle: 0.4, Brake: 0, Steer: -0.2}
	require.NoError(t, acts.PublishActuators(want))

	got, err := Decode((*sent)[0], ActuatorsReader)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPoseTwistStatus(t *testing.T) {
	posePub, poseSent := fakePublisher(PoseCreator)
	require.NoError(t, (&PosePublisher{posePub}).PublishPose(waypoints.Pose{X: 10, Y: -3, Z: 1, Yaw: 0.5}))
	pose, err := Decode((*poseSent)[0], PoseReader)
	require.NoError(t, err)
	assert.Equal(t, waypoints.Pose{X: 10, Y: -3, Z: 1, Yaw: 0.5}, pose)

	twistPub, twistSent := fakePublisher(TwistCreator)
	require.NoError(t, (&TwistPublisher{twistPub}).PublishTwist(dbw.VelocitySample{Linear: 11, Angular: 0.1}))
	twist, err := Decode((*twistSent)[0], TwistReader)
	require.NoError(t, err)
	assert.Equal(t, dbw.VelocitySample{Linear: 11, Angular: 0.1}, twist)

	statusPub, statusSent := fakePublisher(DbwStatusCreator)
	status := &StatusPublisher{statusPub}
	require.NoError(t, status.PublishAuthority(true))
	require.NoError(t, status.PublishAuthority(false))
	enabled, err := Decode((*statusSent)[0], DbwStatusReader)
	require.NoError(t, err)
	assert.True(t, enabled)
	enabled, err = Decode((*statusSent)[1], DbwStatusReader)
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestReaderRejectsWrongMember(t *testing.T) {
	pub, sent := fakePublisher(TwistCreator)
	require.NoError(t, (&TwistPublisher{pub}).PublishTwist(dbw.VelocitySample{Linear: 1}))

	_, err := Decode((*sent)[0], LaneReader)
	assert.Error(t, err)
	_, err = Decode((*sent)[0], DbwStatusReader)
	assert.Error(t, err)
}

func TestReaderRejectsNonFinite(t *testing.T) {
	pub, sent := fakePublisher(LaneCreator)
	require.NoError(t, (&LanePublisher{pub}).PublishLane(route.Route{{X: 1}, {X: math.NaN()}}))
	_, err := Decode((*sent)[0], LaneReader)
	assert.ErrorIs(t, err, ErrNonFinite)

	posePub, poseSent := fakePublisher(PoseCreator)
	require.NoError(t, (&PosePublisher{posePub}).PublishPose(waypoints.Pose{X: math.Inf(1)}))
	_, err = Decode((*poseSent)[0], PoseReader)
	assert.Equal(t, ErrNonFinite, errors.Cause(err))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, LaneReader)
	assert.Error(t, err)
}

func TestSubscriberDropsMalformed(t *testing.T) {
	pub, sent := fakePublisher(PoseCreator)
	require.NoError(t, (&PosePublisher{pub}).PublishPose(waypoints.Pose{X: 3}))

	queue := [][]byte{nil, {0xff}, (*sent)[0]}
	sub := &Subscriber[waypoints.Pose]{
		name:   CURRENT_POSE,
		reader: PoseReader,
		read: func() []byte {
			if len(queue) == 0 {
				return nil
			}
			b := queue[0]
			queue = queue[1:]
			return b
		},
	}

	_, ok := sub.Read()
	assert.False(t, ok, "empty read")
	_, ok = sub.Read()
	assert.False(t, ok, "malformed read")
	pose, ok := sub.Read()
	assert.True(t, ok)
	assert.Equal(t, 3.0, pose.X)
}

type sliceSource struct {
	mu    sync.Mutex
	items []int
}

func (s *sliceSource) Read() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return 0, false
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, true
}

func TestPumpDeliversInOrder(t *testing.T) {
	src := &sliceSource{items: []int{1, 2, 3}}
	var mu sync.Mutex
	var got []int
	pump := NewPump("numbers", src, func(v int) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, v)
	}, clock.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pump.Run(ctx) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, []int{1, 2, 3}, got)
}
