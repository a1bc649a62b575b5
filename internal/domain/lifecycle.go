package domain

import "fmt"

// Event drives a booking status transition
type Event string

const (
	EventApprove Event = "approve"
	EventReject  Event = "reject"
	EventCancel  Event = "cancel"
	EventStart   Event = "start"
	EventFinish  Event = "finish"
)

// transitions is the complete lifecycle table. Anything missing is illegal.
var transitions = map[BookingStatus]map[Event]BookingStatus{
	StatusPending: {
		EventApprove: StatusConfirmed,
		EventReject:  StatusCancelled,
		EventCancel:  StatusCancelled,
	},
	StatusConfirmed: {
		EventCancel: StatusCancelled,
		EventStart:  StatusPlaying,
	},
	StatusPlaying: {
		EventFinish: StatusCompleted,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

var knownEvents = map[Event]struct{}{
	EventApprove: {},
	EventReject:  {},
	EventCancel:  {},
	EventStart:   {},
	EventFinish:  {},
}

// ParseEvent validates an event name
func ParseEvent(s string) (Event, error) {
	e := Event(s)
	if _, ok := knownEvents[e]; !ok {
		return "", fmt.Errorf("%w: unknown event %q", ErrValidation, s)
	}
	return e, nil
}

func (e Event) String() string {
	return string(e)
}

// Apply returns the status reached by applying event to s.
//
// Cancelling an already cancelled booking is a no-op: it returns s and no
// error. Every other pair outside the table returns a *TransitionError.
func (s BookingStatus) Apply(event Event) (BookingStatus, error) {
	if s == StatusCancelled && event == EventCancel {
		return s, nil
	}
	next, ok := transitions[s][event]
	if !ok {
		return s, &TransitionError{From: s, Event: event}
	}
	return next, nil
}

// StatusChange is a staff request to move a booking along the lifecycle
type StatusChange struct {
	Event  Event
	Reason *string // stored on reject/cancel
	Force  bool    // manual override of the start-time guard
}
