package domain

import (
	"fmt"
	"time"
)

// Money is an amount in minor currency units.
type Money int64

// Price is the result of pricing a [start, end) interval.
type Price struct {
	DurationMinutes int64
	DurationHours   float64
	BasePrice       Money
	Surcharge       Money
	Total           Money
}

// ComputePrice prices a booking interval at the given hourly rate.
//
// The night surcharge applies when the start hour, read in loc, is
// NightSurchargeStartHour or later. It is flat over the whole booking and
// ignores the end time. A nil loc uses start's own location.
//
// Slot generation and free-form bookings must both price through this function.
func ComputePrice(hourlyRate Money, start, end time.Time, loc *time.Location) (Price, error) {
	if !end.After(start) {
		return Price{}, fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if hourlyRate <= 0 {
		return Price{}, fmt.Errorf("%w: hourly rate must be positive", ErrValidation)
	}

	minutes := int64(end.Sub(start) / time.Minute)
	if minutes == 0 {
		return Price{}, fmt.Errorf("%w: interval is shorter than a minute", ErrInvalidRange)
	}

	base := divRound(int64(hourlyRate)*minutes, 60)

	if loc == nil {
		loc = start.Location()
	}
	var surcharge int64
	if start.In(loc).Hour() >= NightSurchargeStartHour {
		surcharge = divRound(base*NightSurchargePercent, 100)
	}

	return Price{
		DurationMinutes: minutes,
		DurationHours:   float64(minutes) / 60,
		BasePrice:       Money(base),
		Surcharge:       Money(surcharge),
		Total:           Money(base + surcharge),
	}, nil
}

// divRound divides non-negative a by b rounding half up.
func divRound(a, b int64) int64 {
	return (a + b/2) / b
}
