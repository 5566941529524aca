package drive

import (
	"math"
	"strconv"

	capnp "capnproto.org/go/capnp/v3"
	"github.com/pkg/errors"
)

type Waypoint capnp.Struct

const Waypoint_TypeID = 0xa3b1f4c2d5e60718

func NewWaypoint(s *capnp.Segment) (Waypoint, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 32, PointerCount: 0})
	return Waypoint(st), err
}

func (s Waypoint) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s Waypoint) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s Waypoint) X() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(0))
}

func (s Waypoint) SetX(v float64) {
	capnp.Struct(s).SetUint64(0, math.Float64bits(v))
}

func (s Waypoint) Y() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(8))
}

func (s Waypoint) SetY(v float64) {
	capnp.Struct(s).SetUint64(8, math.Float64bits(v))
}

func (s Waypoint) Z() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(16))
}

func (s Waypoint) SetZ(v float64) {
	capnp.Struct(s).SetUint64(16, math.Float64bits(v))
}

func (s Waypoint) Velocity() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(24))
}

func (s Waypoint) SetVelocity(v float64) {
	capnp.Struct(s).SetUint64(24, math.Float64bits(v))
}

// Waypoint_List is a list of Waypoint.
type Waypoint_List = capnp.StructList[Waypoint]

// NewWaypoint_List creates a new list of Waypoint.
func NewWaypoint_List(s *capnp.Segment, sz int32) (Waypoint_List, error) {
	l, err := capnp.NewCompositeList(s, capnp.ObjectSize{DataSize: 32, PointerCount: 0}, sz)
	return capnp.StructList[Waypoint](l), err
}

type Lane capnp.Struct

const Lane_TypeID = 0xb7c2e5d3f6a10829

func NewLane(s *capnp.Segment) (Lane, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 0, PointerCount: 1})
	return Lane(st), err
}

func (s Lane) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s Lane) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s Lane) Waypoints() (Waypoint_List, error) {
	p, err := capnp.Struct(s).Ptr(0)
	return Waypoint_List(p.List()), err
}

func (s Lane) HasWaypoints() bool {
	return capnp.Struct(s).HasPtr(0)
}

func (s Lane) SetWaypoints(v Waypoint_List) error {
	return capnp.Struct(s).SetPtr(0, v.ToPtr())
}

// NewWaypoints sets the waypoints field to a newly
// allocated Waypoint_List, preferring placement in s's segment.
func (s Lane) NewWaypoints(n int32) (Waypoint_List, error) {
	l, err := NewWaypoint_List(capnp.Struct(s).Segment(), n)
	if err != nil {
		return Waypoint_List{}, err
	}
	err = capnp.Struct(s).SetPtr(0, l.ToPtr())
	return l, err
}

type Pose capnp.Struct

const Pose_TypeID = 0xc8d3f6e4a7b2193a

func NewPose(s *capnp.Segment) (Pose, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 32, PointerCount: 0})
	return Pose(st), err
}

func (s Pose) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s Pose) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s Pose) X() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(0))
}

func (s Pose) SetX(v float64) {
	capnp.Struct(s).SetUint64(0, math.Float64bits(v))
}

func (s Pose) Y() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(8))
}

func (s Pose) SetY(v float64) {
	capnp.Struct(s).SetUint64(8, math.Float64bits(v))
}

func (s Pose) Z() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(16))
}

func (s Pose) SetZ(v float64) {
	capnp.Struct(s).SetUint64(16, math.Float64bits(v))
}

func (s Pose) Yaw() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(24))
}

func (s Pose) SetYaw(v float64) {
	capnp.Struct(s).SetUint64(24, math.Float64bits(v))
}

type Twist capnp.Struct

const Twist_TypeID = 0xd9e4a7f5b8c32a4b

func NewTwist(s *capnp.Segment) (Twist, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 16, PointerCount: 0})
	return Twist(st), err
}

func (s Twist) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s Twist) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s Twist) Linear() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(0))
}

func (s Twist) SetLinear(v float64) {
	capnp.Struct(s).SetUint64(0, math.Float64bits(v))
}

func (s Twist) Angular() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(8))
}

func (s Twist) SetAngular(v float64) {
	capnp.Struct(s).SetUint64(8, math.Float64bits(v))
}

type DbwStatus capnp.Struct

const DbwStatus_TypeID = 0xeaf5b8a6c9d43b5c

func NewDbwStatus(s *capnp.Segment) (DbwStatus, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 8, PointerCount: 0})
	return DbwStatus(st), err
}

func (s DbwStatus) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s DbwStatus) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s DbwStatus) Enabled() bool {
	return capnp.Struct(s).Bit(0)
}

func (s DbwStatus) SetEnabled(v bool) {
	capnp.Struct(s).SetBit(0, v)
}

type Actuators capnp.Struct

const Actuators_TypeID = 0xfb06c9b7dae54c6d

func NewActuators(s *capnp.Segment) (Actuators, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 24, PointerCount: 0})
	return Actuators(st), err
}

func (s Actuators) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s Actuators) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s Actuators) Throttle() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(0))
}

func (s Actuators) SetThrottle(v float64) {
	capnp.Struct(s).SetUint64(0, math.Float64bits(v))
}

func (s Actuators) Brake() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(8))
}

func (s Actuators) SetBrake(v float64) {
	capnp.Struct(s).SetUint64(8, math.Float64bits(v))
}

func (s Actuators) Steer() float64 {
	return math.Float64frombits(capnp.Struct(s).Uint64(16))
}

func (s Actuators) SetSteer(v float64) {
	capnp.Struct(s).SetUint64(16, math.Float64bits(v))
}

type Event capnp.Struct
type Event_Which uint16

const (
	Event_Which_lane      Event_Which = 0
	Event_Which_pose      Event_Which = 1
	Event_Which_twist     Event_Which = 2
	Event_Which_dbwStatus Event_Which = 3
	Event_Which_actuators Event_Which = 4
)

func (w Event_Which) String() string {
	const s = "laneposetwistdbwStatusactuators"
	switch w {
	case Event_Which_lane:
		return s[0:4]
	case Event_Which_pose:
		return s[4:8]
	case Event_Which_twist:
		return s[8:13]
	case Event_Which_dbwStatus:
		return s[13:22]
	case Event_Which_actuators:
		return s[22:31]
	}
	return "Event_Which(" + strconv.FormatUint(uint64(w), 10) + ")"
}

const Event_TypeID = 0x8c17a2d4e9f05b6e

func NewEvent(s *capnp.Segment) (Event, error) {
	st, err := capnp.NewStruct(s, capnp.ObjectSize{DataSize: 16, PointerCount: 1})
	return Event(st), err
}

func NewRootEvent(s *capnp.Segment) (Event, error) {
	st, err := capnp.NewRootStruct(s, capnp.ObjectSize{DataSize: 16, PointerCount: 1})
	return Event(st), err
}

func ReadRootEvent(msg *capnp.Message) (Event, error) {
	root, err := msg.Root()
	return Event(root.Struct()), err
}

func (s Event) ToPtr() capnp.Ptr {
	return capnp.Struct(s).ToPtr()
}

func (s Event) IsValid() bool {
	return capnp.Struct(s).IsValid()
}

func (s Event) Which() Event_Which {
	return Event_Which(capnp.Struct(s).Uint16(10))
}

func (s Event) LogMonoTime() uint64 {
	return capnp.Struct(s).Uint64(0)
}

func (s Event) SetLogMonoTime(v uint64) {
	capnp.Struct(s).SetUint64(0, v)
}

func (s Event) Valid() bool {
	return capnp.Struct(s).Bit(64)
}

func (s Event) SetValid(v bool) {
	capnp.Struct(s).SetBit(64, v)
}

func (s Event) member(which Event_Which) (capnp.Struct, error) {
	if s.Which() != which {
		return capnp.Struct{}, errors.Errorf("Which() = %s, want %s", s.Which(), which)
	}
	p, err := capnp.Struct(s).Ptr(0)
	return p.Struct(), err
}

func (s Event) newMember(which Event_Which, sz capnp.ObjectSize) (capnp.Struct, error) {
	capnp.Struct(s).SetUint16(10, uint16(which))
	ss, err := capnp.NewStruct(capnp.Struct(s).Segment(), sz)
	if err != nil {
		return capnp.Struct{}, err
	}
	err = capnp.Struct(s).SetPtr(0, ss.ToPtr())
	return ss, err
}

func (s Event) Lane() (Lane, error) {
	st, err := s.member(Event_Which_lane)
	return Lane(st), err
}

// NewLane sets the lane field to a newly allocated Lane struct, preferring
// placement in s's segment.
func (s Event) NewLane() (Lane, error) {
	st, err := s.newMember(Event_Which_lane, capnp.ObjectSize{DataSize: 0, PointerCount: 1})
	return Lane(st), err
}

func (s Event) Pose() (Pose, error) {
	st, err := s.member(Event_Which_pose)
	return Pose(st), err
}

func (s Event) NewPose() (Pose, error) {
	st, err := s.newMember(Event_Which_pose, capnp.ObjectSize{DataSize: 32, PointerCount: 0})
	return Pose(st), err
}

func (s Event) Twist() (Twist, error) {
	st, err := s.member(Event_Which_twist)
	return Twist(st), err
}

func (s Event) NewTwist() (Twist, error) {
	st, err := s.newMember(Event_Which_twist, capnp.ObjectSize{DataSize: 16, PointerCount: 0})
	return Twist(st), err
}

func (s Event) DbwStatus() (DbwStatus, error) {
	st, err := s.member(Event_Which_dbwStatus)
	return DbwStatus(st), err
}

func (s Event) NewDbwStatus() (DbwStatus, error) {
	st, err := s.newMember(Event_Which_dbwStatus, capnp.ObjectSize{DataSize: 8, PointerCount: 0})
	return DbwStatus(st), err
}

func (s Event) Actuators() (Actuators, error) {
	st, err := s.member(Event_Which_actuators)
	return Actuators(st), err
}

func (s Event) NewActuators() (Actuators, error) {
	st, err := s.newMember(Event_Which_actuators, capnp.ObjectSize{DataSize: 24, PointerCount: 0})
	return Actuators(st), err
}
