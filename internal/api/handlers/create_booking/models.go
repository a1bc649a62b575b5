package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// startAt и endAt в формате RFC 3339 с указанием смещения.
type CreateBookingRequest struct {
	FieldID       int64   `json:"fieldId" validate:"required,gt=0"`
	StartAt       string  `json:"startAt" validate:"required"`       // "2025-10-15T20:00:00+03:00"
	EndAt         string  `json:"endAt" validate:"required"`         // "2025-10-15T21:30:00+03:00"
	CustomerName  string  `json:"customerName" validate:"required"`  // длину проверяет сервис
	CustomerPhone string  `json:"customerPhone" validate:"required"` // формат проверяет сервис
	Notes         *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		FieldID:       r.FieldID,
		StartAt:       startAt,
		EndAt:         endAt,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}, nil
}
