package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// CheckRequest интервал, который нужно проверить на пересечения
type CheckRequest struct {
	FieldID   int64
	StartAt   time.Time
	EndAt     time.Time
	ExcludeID *int64 // ID редактируемого бронирования
	Location  *time.Location
}

// ConflictChecker проверяет интервал (слот или произвольный) против блокирующих бронирований
type ConflictChecker struct {
	index *AvailabilityIndex
	clock Clock
}

func NewConflictChecker(index *AvailabilityIndex, clock Clock) *ConflictChecker {
	if clock == nil {
		clock = RealClock{}
	}
	return &ConflictChecker{index: index, clock: clock}
}

// Check возвращает nil, если интервал свободен, *domain.ConflictError с первым
// найденным пересечением, либо ошибку валидации (ErrInvalidRange) для пустого
// интервала или интервала в прошлом.
//
// Окно поиска - от начала суток StartAt до конца суток EndAt, так что
// бронирования соседних суток, переходящие через полночь, тоже учитываются.
func (c *ConflictChecker) Check(ctx context.Context, req CheckRequest) error {
	if err := c.ValidateRange(req.StartAt, req.EndAt); err != nil {
		return err
	}

	loc := req.Location
	if loc == nil {
		loc = req.StartAt.Location()
	}
	from, _ := domain.DayWindow(req.StartAt.In(loc), loc)
	_, to := domain.DayWindow(req.EndAt.Add(-time.Nanosecond).In(loc), loc)

	blocking, err := c.index.BlockingInWindow(ctx, req.FieldID, from, to, req.ExcludeID)
	if err != nil {
		return err
	}

	if conflicting := FindConflict(blocking, req.StartAt, req.EndAt, req.ExcludeID); conflicting != nil {
		return &domain.ConflictError{FieldID: req.FieldID, BookingID: conflicting.ID}
	}
	return nil
}

// ValidateRange проверяет, что интервал не пустой, не в прошлом и не длиннее суток
func (c *ConflictChecker) ValidateRange(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end must be after start", domain.ErrInvalidRange)
	}
	if start.Before(c.clock.Now()) {
		return fmt.Errorf("%w: start %s is in the past", domain.ErrInvalidRange, start.Format(time.RFC3339))
	}
	if end.Sub(start) > domain.MaxBookingDurationMinutes*time.Minute {
		return fmt.Errorf("%w: booking is longer than %d minutes", domain.ErrValidation, domain.MaxBookingDurationMinutes)
	}
	return nil
}

// FindConflict возвращает первое блокирующее бронирование, пересекающее [start, end).
// Для отказа достаточно любого пересечения, поэтому порядок обхода не важен.
func FindConflict(bookings []*domain.Booking, start, end time.Time, excludeID *int64) *domain.Booking {
	for _, b := range bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.IsBlocking() && b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}
