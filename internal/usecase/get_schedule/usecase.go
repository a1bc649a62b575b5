package get_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/scheduling"
)

// UseCase use case для получения расписания поля на дату
type UseCase struct {
	fields       FieldProvider
	availability AvailabilityIndex
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	fields FieldProvider,
	availability AvailabilityIndex,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	return &UseCase{
		fields:       fields,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		opts:         opts,
	}
}

// Execute выполняет use case получения расписания.
// Слоты генерируются заново на каждый запрос и ничего не кэшируется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSchedule: field=%d, date=%s", req.FieldID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем поле
	field, err := uc.fields.GetField(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldClient.ErrFieldNotFound) {
			uc.logger.Warn("GetSchedule: field id=%d not found", req.FieldID)
			return nil, domain.ErrFieldNotFound
		}
		uc.logger.Error("GetSchedule: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}
	if !field.Active {
		uc.logger.Warn("GetSchedule: field id=%d is not active", req.FieldID)
		return nil, ErrFieldInactive
	}

	// 3. Дата и текущее время в часовом поясе поля
	loc, err := field.LoadLocation(uc.opts.DefaultLocation)
	if err != nil {
		uc.logger.Error("GetSchedule: field id=%d has invalid timezone: %v", req.FieldID, err)
		return nil, err
	}
	now := uc.timeProvider.Now().In(loc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	if err := validateDate(date, now, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetSchedule: date validation failed: %v", err)
		return nil, err
	}

	// 4. Генерируем слоты с ценами
	candidates, err := scheduling.GenerateSlots(field, date, loc)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to generate slots for field=%d: %v", req.FieldID, err)
		return nil, err
	}
	if uc.opts.HidePastSlots {
		candidates = scheduling.DropStarted(candidates, now)
	}
	// Слоты после полуночи последнего дня горизонта забронировать уже нельзя
	if horizon, ok := domain.BookingHorizon(now, uc.opts.AdvanceBookingDays, loc); ok {
		candidates = scheduling.DropBeyond(candidates, horizon)
	}

	// 5. Получаем блокирующие бронирования и размечаем слоты
	blocking, err := uc.availability.BlockingBookings(ctx, field.ID, date, loc)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to get bookings for field=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	// Слоты поля, работающего после полуночи, заходят в следующие сутки
	if field.ClosesAfterMidnight() {
		nextDay, err := uc.availability.BlockingBookings(ctx, field.ID, date.AddDate(0, 0, 1), loc)
		if err != nil {
			uc.logger.Error("GetSchedule: failed to get next day bookings for field=%d: %v", req.FieldID, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		blocking = mergeBookings(blocking, nextDay)
	}

	slots := scheduling.Annotate(field.ID, candidates, blocking)

	available := 0
	for _, s := range slots {
		if s.IsAvailable() {
			available++
		}
	}
	uc.logger.Info("GetSchedule: field=%d, date=%s, slots=%d, available=%d",
		req.FieldID, date.Format(domain.DateFormat), len(slots), available)

	return &Response{
		FieldID:  field.ID,
		Date:     date,
		Timezone: loc.String(),
		Slots:    toSlots(slots),
	}, nil
}

func mergeBookings(a, b []*domain.Booking) []*domain.Booking {
	seen := make(map[int64]struct{}, len(a))
	for _, booking := range a {
		seen[booking.ID] = struct{}{}
	}
	for _, booking := range b {
		if _, ok := seen[booking.ID]; !ok {
			a = append(a, booking)
		}
	}
	return a
}
