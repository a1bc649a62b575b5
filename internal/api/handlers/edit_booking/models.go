package edit_booking

import (
	"time"

	editBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/edit_booking"
)

// EditBookingRequest HTTP request model. Отсутствующие поля не меняются.
type EditBookingRequest struct {
	FieldID       *int64  `json:"fieldId,omitempty" validate:"omitempty,gt=0"`
	StartAt       *string `json:"startAt,omitempty"`
	EndAt         *string `json:"endAt,omitempty"`
	CustomerName  *string `json:"customerName,omitempty" validate:"omitempty,min=1"`
	CustomerPhone *string `json:"customerPhone,omitempty" validate:"omitempty,min=1"`
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditBookingRequest) ToUseCaseRequest(bookingID int64) (*editBooking.Request, error) {
	req := &editBooking.Request{
		BookingID:     bookingID,
		FieldID:       r.FieldID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}

	if r.StartAt != nil {
		startAt, err := time.Parse(time.RFC3339, *r.StartAt)
		if err != nil {
			return nil, err
		}
		req.StartAt = &startAt
	}

	if r.EndAt != nil {
		endAt, err := time.Parse(time.RFC3339, *r.EndAt)
		if err != nil {
			return nil, err
		}
		req.EndAt = &endAt
	}

	return req, nil
}
