package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusPlaying   BookingStatus = "playing"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// BlockingStatuses reserve their interval: no other booking on the same
// field may overlap a booking in one of these statuses.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPlaying,
}

// IsBlocking returns true if the status reserves the booking interval
func (s BookingStatus) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

// IsValid returns true for one of the known statuses
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking is a reservation of a field for [StartAt, EndAt)
type Booking struct {
	ID            int64
	FieldID       int64
	CustomerName  string
	CustomerPhone string
	StartAt       time.Time
	EndAt         time.Time
	Status        BookingStatus

	BasePrice  Money
	Surcharge  Money
	TotalPrice Money

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking currently reserves its interval
func (b *Booking) IsBlocking() bool {
	return b.Status.IsBlocking()
}

// Overlaps reports whether the booking interval intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartAt, b.EndAt, start, end)
}

// CanBeEdited returns true if the time range and customer data may still change
func (b *Booking) CanBeEdited() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// ApplyPrice copies a computed price onto the booking
func (b *Booking) ApplyPrice(p Price) {
	b.BasePrice = p.BasePrice
	b.Surcharge = p.Surcharge
	b.TotalPrice = p.Total
}

// Overlaps reports whether half-open intervals [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// BookingDraft is the input for creating a booking
type BookingDraft struct {
	FieldID       int64
	CustomerName  string
	CustomerPhone string
	StartAt       time.Time
	EndAt         time.Time
	Notes         *string
}

// BookingChanges is a partial edit of a booking; nil fields stay as they are
type BookingChanges struct {
	FieldID       *int64
	CustomerName  *string
	CustomerPhone *string
	StartAt       *time.Time
	EndAt         *time.Time
	Notes         *string
}

// ChangesSchedule returns true if the edit moves the booking in time or to another field
func (c BookingChanges) ChangesSchedule(b *Booking) bool {
	if c.FieldID != nil && *c.FieldID != b.FieldID {
		return true
	}
	if c.StartAt != nil && !c.StartAt.Equal(b.StartAt) {
		return true
	}
	if c.EndAt != nil && !c.EndAt.Equal(b.EndAt) {
		return true
	}
	return false
}

// FieldBookingsFilter filter for listing bookings of a field
type FieldBookingsFilter struct {
	FieldID         int64
	From            time.Time // inclusive window start
	To              time.Time // exclusive window end
	IncludeInactive bool
	ExcludeID       *int64
}
