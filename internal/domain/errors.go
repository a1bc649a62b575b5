package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation malformed input: missing fields, non-positive duration, past date
	ErrValidation = errors.New("validation error")

	// ErrInvalidRange end is not after start, or start is in the past
	ErrInvalidRange = fmt.Errorf("%w: invalid time range", ErrValidation)

	// ErrConflict interval overlaps an existing blocking booking
	ErrConflict = errors.New("booking conflict")

	// ErrInvalidTransition status change is not in the transition table
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotEditable booking already left pending/confirmed
	ErrNotEditable = fmt.Errorf("%w: booking can no longer be edited", ErrInvalidTransition)

	// ErrNotFound unknown field or booking
	ErrNotFound = errors.New("not found")

	ErrFieldNotFound   = fmt.Errorf("field %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)

	// ErrPersistence storage-layer failure, surfaced as-is
	ErrPersistence = errors.New("persistence error")
)

// ConflictError carries the booking that blocks the requested interval.
// BookingID is zero when the storage constraint rejected the write without
// reporting the row it collided with.
type ConflictError struct {
	FieldID   int64
	BookingID int64
}

func (e *ConflictError) Error() string {
	if e.BookingID == 0 {
		return fmt.Sprintf("booking conflict on field %d", e.FieldID)
	}
	return fmt.Sprintf("booking conflict on field %d with booking %d", e.FieldID, e.BookingID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// TransitionError is returned for an event that is not allowed from the current status.
type TransitionError struct {
	From  BookingStatus
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: cannot %s a booking in status %s", e.Event, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
