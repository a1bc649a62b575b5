package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockField(ctx context.Context, fieldID int64) error
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByField(ctx context.Context, filter domain.FieldBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
}

// ConflictChecker проверка интервала на пересечения
type ConflictChecker interface {
	Check(ctx context.Context, req scheduling.CheckRequest) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий бронирований после коммита
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
	StatusChanged(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
	Rescheduled(ctx context.Context, booking *domain.Booking, previous *domain.Booking) error
}

// MetricsRecorder доменные метрики бронирований
type MetricsRecorder interface {
	BookingCreated()
	BookingConflict(operation string)
	StatusChanged(from, to string)
}

// Clock интерфейс для получения текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
