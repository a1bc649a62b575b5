package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/scheduling"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// Options настройки сервиса бронирований
type Options struct {
	// DefaultLocation часовой пояс полей без собственного Timezone
	DefaultLocation *time.Location
	// AdvanceBookingDays максимальный горизонт бронирования в днях, 0 - без ограничения
	AdvanceBookingDays int
}

// Service хранилище бронирований: создание, чтение, смена статуса и перенос.
// Проверка пересечений и запись выполняются в одной транзакции под
// блокировкой поля, поэтому из двух конкурентных запросов на пересекающиеся
// интервалы успешен максимум один.
type Service struct {
	repo      BookingRepository
	checker   ConflictChecker
	txManager TransactionManager
	publisher EventPublisher
	metrics   MetricsRecorder
	clock     Clock
	logger    Logger
	opts      Options
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo BookingRepository,
	checker ConflictChecker,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	clock Clock,
	logger Logger,
	opts Options,
) *Service {
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	return &Service{
		repo:      repo,
		checker:   checker,
		txManager: txManager,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		logger:    logger,
		opts:      opts,
	}
}

// Location возвращает часовой пояс поля с учётом значения по умолчанию
func (s *Service) Location(field *domain.Field) (*time.Location, error) {
	return field.LoadLocation(s.opts.DefaultLocation)
}

// Create создает бронирование в статусе pending с рассчитанной ценой.
// Возвращает *domain.ConflictError, если интервал занят.
func (s *Service) Create(ctx context.Context, draft domain.BookingDraft, field *domain.Field) (*domain.Booking, error) {
	s.logger.Info("Create: field=%d, %s - %s", draft.FieldID, draft.StartAt.Format(time.RFC3339), draft.EndAt.Format(time.RFC3339))

	if field == nil || field.ID != draft.FieldID {
		return nil, ErrFieldMismatch
	}
	if err := validateCustomer(draft.CustomerName, draft.CustomerPhone, draft.Notes); err != nil {
		s.logger.Warn("Create: invalid draft for field=%d: %v", draft.FieldID, err)
		return nil, err
	}

	loc, price, err := s.prepareSchedule(field, draft.StartAt, draft.EndAt)
	if err != nil {
		s.logger.Warn("Create: rejected for field=%d: %v", draft.FieldID, err)
		return nil, err
	}

	booking := &domain.Booking{
		FieldID:       draft.FieldID,
		CustomerName:  strings.TrimSpace(draft.CustomerName),
		CustomerPhone: strings.TrimSpace(draft.CustomerPhone),
		StartAt:       draft.StartAt,
		EndAt:         draft.EndAt,
		Status:        domain.StatusPending,
		Notes:         draft.Notes,
	}
	booking.ApplyPrice(price)

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем поле до конца транзакции
		if err := s.repo.LockField(ctx, field.ID); err != nil {
			return err
		}

		// 2. Проверяем пересечения уже под блокировкой
		if err := s.checker.Check(ctx, scheduling.CheckRequest{
			FieldID:  field.ID,
			StartAt:  booking.StartAt,
			EndAt:    booking.EndAt,
			Location: loc,
		}); err != nil {
			return err
		}

		// 3. Пишем бронирование
		created, err := s.repo.Create(ctx, booking)
		if err != nil {
			return err
		}
		booking = created
		return nil
	})
	if err != nil {
		err = s.toDomainError("Create", field.ID, err)
		if errors.Is(err, domain.ErrConflict) {
			s.metrics.BookingConflict("create")
			s.logger.Warn("Create: conflict on field=%d: %v", field.ID, err)
		} else {
			s.logger.Error("Create: failed for field=%d: %v", field.ID, err)
		}
		return nil, err
	}

	s.metrics.BookingCreated()
	s.logger.Info("Create: booking id=%d created on field=%d, total=%d", booking.ID, booking.FieldID, booking.TotalPrice)

	if err := s.publisher.BookingCreated(ctx, booking); err != nil {
		s.logger.Warn("Create: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, domain.ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", domain.ErrPersistence, err)
	}
	return booking, nil
}

// ListByFieldAndDate возвращает бронирования поля, пересекающие сутки date
// в часовом поясе loc. Без includeInactive - только блокирующие.
func (s *Service) ListByFieldAndDate(ctx context.Context, fieldID int64, date time.Time, loc *time.Location, includeInactive bool) ([]*domain.Booking, error) {
	from, to := domain.DayWindow(date, loc)

	bookings, err := s.repo.ListByField(ctx, domain.FieldBookingsFilter{
		FieldID:         fieldID,
		From:            from,
		To:              to,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		s.logger.Error("ListByFieldAndDate: repository error for field=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: ListByFieldAndDate - repository error: %v", domain.ErrPersistence, err)
	}

	s.logger.Info("ListByFieldAndDate: field=%d, date=%s, found=%d", fieldID, from.Format(domain.DateFormat), len(bookings))
	return bookings, nil
}

// UpdateStatus применяет событие жизненного цикла к бронированию.
// Повторная отмена отменённого бронирования - успешный no-op.
func (s *Service) UpdateStatus(ctx context.Context, id int64, change domain.StatusChange) (*domain.Booking, error) {
	s.logger.Info("UpdateStatus: booking id=%d, event=%s, force=%t", id, change.Event, change.Force)

	if err := validateReason(change.Reason); err != nil {
		return nil, err
	}

	var (
		booking *domain.Booking
		from    domain.BookingStatus
		changed bool
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		booking = current
		from = current.Status

		next, err := current.Status.Apply(change.Event)
		if err != nil {
			return err
		}
		if next == current.Status {
			return nil
		}

		if change.Event == domain.EventStart && !change.Force && s.clock.Now().Before(current.StartAt) {
			return fmt.Errorf("%w: booking id=%d starts at %s", ErrStartTooEarly, id, current.StartAt.Format(time.RFC3339))
		}

		current.Status = next
		if next == domain.StatusCancelled {
			now := s.clock.Now()
			current.CancelledAt = &now
			current.CancellationReason = change.Reason
		}

		changed = true
		return s.repo.UpdateStatus(ctx, current)
	})
	if err != nil {
		err = s.toDomainError("UpdateStatus", 0, err)
		s.logger.Warn("UpdateStatus: booking id=%d, event=%s rejected: %v", id, change.Event, err)
		return nil, err
	}

	if !changed {
		s.logger.Info("UpdateStatus: booking id=%d already %s, nothing to do", id, booking.Status)
		return booking, nil
	}

	s.metrics.StatusChanged(from.String(), booking.Status.String())
	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", id, from, booking.Status)

	if err := s.publisher.StatusChanged(ctx, booking, from); err != nil {
		s.logger.Warn("UpdateStatus: failed to publish event for booking id=%d: %v", id, err)
	}

	return booking, nil
}

// Edit изменяет бронирование. field - поле, на котором бронирование окажется
// после изменений. Если меняется поле или интервал, пересечения проверяются
// заново (без учёта самого бронирования) и цена пересчитывается.
func (s *Service) Edit(ctx context.Context, id int64, changes domain.BookingChanges, field *domain.Field) (*domain.Booking, error) {
	s.logger.Info("Edit: booking id=%d", id)

	if field == nil {
		return nil, ErrFieldMismatch
	}

	var (
		booking   *domain.Booking
		previous  *domain.Booking
		scheduled bool
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем целевое поле до чтения бронирования
		if err := s.repo.LockField(ctx, field.ID); err != nil {
			return err
		}

		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !current.CanBeEdited() {
			return fmt.Errorf("%w: booking id=%d is %s", domain.ErrNotEditable, id, current.Status)
		}

		snapshot := *current
		previous = &snapshot
		scheduled = changes.ChangesSchedule(current)

		// 2. Применяем изменения
		updated := applyChanges(current, changes)
		if updated.FieldID != field.ID {
			return ErrFieldMismatch
		}
		if err := validateCustomer(updated.CustomerName, updated.CustomerPhone, updated.Notes); err != nil {
			return err
		}

		// 3. Перепроверяем расписание и пересчитываем цену
		if scheduled {
			loc, price, err := s.prepareSchedule(field, updated.StartAt, updated.EndAt)
			if err != nil {
				return err
			}
			if err := s.checker.Check(ctx, scheduling.CheckRequest{
				FieldID:   field.ID,
				StartAt:   updated.StartAt,
				EndAt:     updated.EndAt,
				ExcludeID: &updated.ID,
				Location:  loc,
			}); err != nil {
				return err
			}
			updated.ApplyPrice(price)
		}

		// 4. Сохраняем
		if err := s.repo.Update(ctx, updated); err != nil {
			return err
		}
		booking = updated
		return nil
	})
	if err != nil {
		err = s.toDomainError("Edit", field.ID, err)
		if errors.Is(err, domain.ErrConflict) {
			s.metrics.BookingConflict("edit")
		}
		s.logger.Warn("Edit: booking id=%d rejected: %v", id, err)
		return nil, err
	}

	s.logger.Info("Edit: booking id=%d updated, field=%d, %s - %s", id, booking.FieldID,
		booking.StartAt.Format(time.RFC3339), booking.EndAt.Format(time.RFC3339))

	if scheduled {
		if err := s.publisher.Rescheduled(ctx, booking, previous); err != nil {
			s.logger.Warn("Edit: failed to publish event for booking id=%d: %v", id, err)
		}
	}

	return booking, nil
}

// prepareSchedule проверяет поле и интервал и считает цену
func (s *Service) prepareSchedule(field *domain.Field, start, end time.Time) (*time.Location, domain.Price, error) {
	if !field.Active {
		return nil, domain.Price{}, ErrFieldInactive
	}
	if err := field.Validate(); err != nil {
		return nil, domain.Price{}, err
	}

	loc, err := s.Location(field)
	if err != nil {
		return nil, domain.Price{}, err
	}

	if horizon, ok := domain.BookingHorizon(s.clock.Now(), s.opts.AdvanceBookingDays, loc); ok && !start.Before(horizon) {
		return nil, domain.Price{}, fmt.Errorf("%w: limit is %d days", ErrTooFarInAdvance, s.opts.AdvanceBookingDays)
	}

	price, err := domain.ComputePrice(field.HourlyRate, start, end, loc)
	if err != nil {
		return nil, domain.Price{}, err
	}
	return loc, price, nil
}

// toDomainError приводит ошибки хранилища к доменной таксономии.
// Доменные ошибки проходят как есть.
func (s *Service) toDomainError(op string, fieldID int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotFound):
		return err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return domain.ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrOverlap):
		return &domain.ConflictError{FieldID: fieldID}
	default:
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
	}
}

func applyChanges(b *domain.Booking, c domain.BookingChanges) *domain.Booking {
	updated := *b
	updated.FieldID = ptr.Deref(c.FieldID, b.FieldID)
	updated.StartAt = ptr.Deref(c.StartAt, b.StartAt)
	updated.EndAt = ptr.Deref(c.EndAt, b.EndAt)
	if c.CustomerName != nil {
		updated.CustomerName = strings.TrimSpace(*c.CustomerName)
	}
	if c.CustomerPhone != nil {
		updated.CustomerPhone = strings.TrimSpace(*c.CustomerPhone)
	}
	if c.Notes != nil {
		updated.Notes = c.Notes
	}
	return &updated
}

func validateCustomer(name, phone string, notes *string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}
	if len([]rune(name)) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is longer than %d characters", domain.ErrValidation, domain.MaxCustomerNameLength)
	}
	if phone == "" {
		return fmt.Errorf("%w: customer phone is required", domain.ErrValidation)
	}
	if len(phone) > domain.MaxCustomerPhoneLength {
		return fmt.Errorf("%w: customer phone is longer than %d characters", domain.ErrValidation, domain.MaxCustomerPhoneLength)
	}
	if notes != nil && len([]rune(*notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", domain.ErrValidation, domain.MaxNotesLength)
	}
	return nil
}

func validateReason(reason *string) error {
	if reason != nil && len([]rune(*reason)) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", domain.ErrValidation, domain.MaxCancellationReasonLength)
	}
	return nil
}
