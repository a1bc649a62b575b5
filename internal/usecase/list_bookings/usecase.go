package list_bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// UseCase use case для получения бронирований поля на дату
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

// Execute возвращает бронирования, пересекающие сутки в часовом поясе поля
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingListResponse, error) {
	uc.logger.Info("ListBookings: field=%d, date=%s, includeInactive=%t",
		req.FieldID, req.Date.Format(domain.DateFormat), req.IncludeInactive)

	if req.FieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	field, err := uc.fields.GetField(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldClient.ErrFieldNotFound) {
			uc.logger.Warn("ListBookings: field id=%d not found", req.FieldID)
			return nil, domain.ErrFieldNotFound
		}
		uc.logger.Error("ListBookings: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	loc, err := uc.bookings.Location(field)
	if err != nil {
		return nil, err
	}
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	bookings, err := uc.bookings.ListByFieldAndDate(ctx, field.ID, date, loc, req.IncludeInactive)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBookingList(bookings, loc), nil
}
