package edit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на изменение бронирования. nil - поле не меняется.
type Request struct {
	BookingID     int64
	FieldID       *int64
	StartAt       *time.Time
	EndAt         *time.Time
	CustomerName  *string
	CustomerPhone *string
	Notes         *string
}

func (r *Request) validate() error {
	if r.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if r.FieldID != nil && *r.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if r.FieldID == nil && r.StartAt == nil && r.EndAt == nil &&
		r.CustomerName == nil && r.CustomerPhone == nil && r.Notes == nil {
		return fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}
	return nil
}

func (r *Request) toChanges() domain.BookingChanges {
	return domain.BookingChanges{
		FieldID:       r.FieldID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Notes:         r.Notes,
	}
}
