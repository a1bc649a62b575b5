package get_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldProvider источник конфигурации поля (клиент сервиса полей или кэш)
type FieldProvider interface {
	GetField(ctx context.Context, fieldID int64) (*domain.Field, error)
}

// AvailabilityIndex блокирующие бронирования поля на дату
type AvailabilityIndex interface {
	BlockingBookings(ctx context.Context, fieldID int64, date time.Time, loc *time.Location) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
