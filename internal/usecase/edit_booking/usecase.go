package edit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// UseCase use case для изменения бронирования (поле, интервал, данные клиента)
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

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("EditBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if err := req.validate(); err != nil {
		uc.logger.Warn("EditBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем целевое поле
	fieldID := int64(0)
	if req.FieldID != nil {
		fieldID = *req.FieldID
	} else {
		current, err := uc.bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			return nil, err
		}
		fieldID = current.FieldID
	}

	// 3. Получаем поле
	field, err := uc.fields.GetField(ctx, fieldID)
	if err != nil {
		if errors.Is(err, fieldClient.ErrFieldNotFound) {
			uc.logger.Warn("EditBooking: field id=%d not found", fieldID)
			return nil, domain.ErrFieldNotFound
		}
		uc.logger.Error("EditBooking: failed to get field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	// 4. Применяем изменения с перепроверкой пересечений
	booking, err := uc.bookings.Edit(ctx, req.BookingID, req.toChanges(), field)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("EditBooking: successfully updated booking id=%d", booking.ID)

	loc, err := uc.bookings.Location(field)
	if err != nil {
		uc.logger.Warn("EditBooking: field id=%d timezone: %v", field.ID, err)
	}
	return models.FromDomainBooking(booking, loc), nil
}
