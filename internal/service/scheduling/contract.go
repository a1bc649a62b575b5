package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// BookingReader источник бронирований поля за окно времени
type BookingReader interface {
	ListByField(ctx context.Context, filter domain.FieldBookingsFilter) ([]*domain.Booking, error)
}

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// RealClock реальные часы для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}
