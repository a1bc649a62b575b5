package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Field is a bookable sports pitch. Read-only to the booking core.
type Field struct {
	ID                  int64
	Name                string
	Location            string
	HourlyRate          Money
	OpeningTime         types.TimeString
	ClosingTime         types.TimeString
	SlotDurationMinutes int
	Timezone            string // IANA name, empty = service default
	Active              bool
}

// Validate checks the configuration the scheduler depends on
func (f *Field) Validate() error {
	if f.HourlyRate <= 0 {
		return fmt.Errorf("%w: field %d hourly rate must be positive", ErrValidation, f.ID)
	}
	if f.SlotDurationMinutes < MinSlotDurationMinutes || f.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: field %d slot duration must be between %d and %d minutes",
			ErrValidation, f.ID, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if err := f.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: field %d opening time: %v", ErrValidation, f.ID, err)
	}
	if err := f.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: field %d closing time: %v", ErrValidation, f.ID, err)
	}
	return nil
}

// ClosesAfterMidnight returns true when closing time is not after opening time,
// e.g. 08:00-00:00 or 16:00-02:00
func (f *Field) ClosesAfterMidnight() bool {
	return !f.ClosingTime.IsAfter(f.OpeningTime)
}

// LoadLocation resolves the field timezone, falling back to def
func (f *Field) LoadLocation(def *time.Location) (*time.Location, error) {
	if f.Timezone == "" {
		if def == nil {
			return time.UTC, nil
		}
		return def, nil
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: field %d timezone %q: %v", ErrValidation, f.ID, f.Timezone, err)
	}
	return loc, nil
}

// OperatingWindow returns the [open, close) interval of the field on date in loc
func (f *Field) OperatingWindow(date time.Time, loc *time.Location) (time.Time, time.Time, error) {
	open, err := f.OpeningTime.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closing, err := f.ClosingTime.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if f.ClosesAfterMidnight() {
		closing = closing.AddDate(0, 0, 1)
	}
	return open, closing, nil
}

// DayWindow returns [00:00 of date, 00:00 of the next day) in loc
func DayWindow(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

// BookingHorizon returns the first instant that can no longer be booked when
// bookings are allowed days ahead: 00:00 of the day after today+days in loc.
// ok is false when days is zero, meaning no horizon.
func BookingHorizon(now time.Time, days int, loc *time.Location) (horizon time.Time, ok bool) {
	if days <= 0 {
		return time.Time{}, false
	}
	_, horizon = DayWindow(now.In(loc).AddDate(0, 0, days), loc)
	return horizon, true
}
