package locomotion

import "github.com/go-gl/mathgl/mgl64"

// Input is the continuous input sampled once per frame.
type Input struct {
	// Move is the strafe (X) and forward (Y) intent, each in [-1, 1]. It is not
	// renormalised.
	Move mgl64.Vec2
	// Look is the per-frame look delta. The controller ignores it; it travels
	// with the snapshot for the look component.
	Look mgl64.Vec2
	// Sprint is 1 while sprint is held.
	Sprint float64
}

func (in Input) SprintHeld() bool {
	return in.Sprint == 1
}

// Event is an edge-triggered input.
type Event uint8

const (
	EventJump Event = iota + 1
	EventCrouchStart
	EventCrouchStop
)

func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventCrouchStart:
		return "crouch_start"
	case EventCrouchStop:
		return "crouch_stop"
	default:
		return "unknown"
	}
}

const maxQueuedEvents = 16

// eventQueue buffers edge events between decision phases. Its backing array is
// reused across frames.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) bool {
	if len(q.events) >= maxQueuedEvents {
		return false
	}
	q.events = append(q.events, e)
	return true
}

func (q *eventQueue) drain(f func(Event)) {
	for i := 0; i < len(q.events); i++ {
		f(q.events[i])
	}
	q.events = q.events[:0]
}

func (q *eventQueue) len() int {
	return len(q.events)
}
