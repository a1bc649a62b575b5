package update_booking_status

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
