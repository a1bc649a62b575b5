package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// UseCase use case для создания бронирования произвольного интервала
type UseCase struct {
	fields   FieldProvider
	bookings BookingService
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(fields FieldProvider, bookings BookingService, logger Logger) *UseCase {
	return &UseCase{
		fields:   fields,
		bookings: bookings,
		logger:   logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и запись атомарны внутри хранилища бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: field=%d, %s - %s",
		req.FieldID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := req.validate(); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем поле
	field, err := uc.fields.GetField(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldClient.ErrFieldNotFound) {
			uc.logger.Warn("CreateBooking: field id=%d not found", req.FieldID)
			return nil, domain.ErrFieldNotFound
		}
		uc.logger.Error("CreateBooking: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 3. Создаем бронирование
	booking, err := uc.bookings.Create(ctx, domain.BookingDraft{
		FieldID:       req.FieldID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Notes:         req.Notes,
	}, field)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", booking.ID)

	// Время в ответе в часовом поясе поля
	loc, err := uc.bookings.Location(field)
	if err != nil {
		uc.logger.Warn("CreateBooking: field id=%d timezone: %v", field.ID, err)
	}
	return models.FromDomainBooking(booking, loc), nil
}
