package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	listBookings "github.com/m04kA/SMC-FieldBookingService/internal/usecase/list_bookings"
)

type ListBookingsUseCase interface {
	Execute(ctx context.Context, req *listBookings.Request) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
