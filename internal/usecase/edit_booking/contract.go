package edit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldProvider источник конфигурации поля (клиент сервиса полей или кэш)
type FieldProvider interface {
	GetField(ctx context.Context, fieldID int64) (*domain.Field, error)
}

// BookingService хранилище бронирований
type BookingService interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Edit(ctx context.Context, id int64, changes domain.BookingChanges, field *domain.Field) (*domain.Booking, error)
	Location(field *domain.Field) (*time.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
