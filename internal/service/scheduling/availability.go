package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// AvailabilityIndex отвечает на вопрос "какие бронирования блокируют поле в этот день".
// Только чтение, ничего не кэширует между запросами.
type AvailabilityIndex struct {
	reader BookingReader
}

func NewAvailabilityIndex(reader BookingReader) *AvailabilityIndex {
	return &AvailabilityIndex{reader: reader}
}

// BlockingBookings возвращает блокирующие бронирования (pending, confirmed, playing),
// пересекающие сутки date в часовом поясе поля, включая начатые накануне
// и переходящие через полночь.
func (idx *AvailabilityIndex) BlockingBookings(ctx context.Context, fieldID int64, date time.Time, loc *time.Location) ([]*domain.Booking, error) {
	from, to := domain.DayWindow(date, loc)
	return idx.BlockingInWindow(ctx, fieldID, from, to, nil)
}

// BlockingInWindow возвращает блокирующие бронирования, пересекающие [from, to).
// excludeID позволяет не учитывать само редактируемое бронирование.
func (idx *AvailabilityIndex) BlockingInWindow(ctx context.Context, fieldID int64, from, to time.Time, excludeID *int64) ([]*domain.Booking, error) {
	bookings, err := idx.reader.ListByField(ctx, domain.FieldBookingsFilter{
		FieldID:   fieldID,
		From:      from,
		To:        to,
		ExcludeID: excludeID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: field=%d: %w", ErrReadBookings, fieldID, err)
	}

	// Хранилище уже фильтрует по статусу, но индекс не доверяет фильтру
	blocking := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsBlocking() || !b.Overlaps(from, to) {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		blocking = append(blocking, b)
	}
	return blocking, nil
}

// Annotate помечает каждый слот как booked, если его пересекает
// хотя бы одно блокирующее бронирование, иначе available
func Annotate(fieldID int64, slots []Candidate, blocking []*domain.Booking) []domain.TimeSlot {
	result := make([]domain.TimeSlot, len(slots))

	for i, slot := range slots {
		status := domain.SlotAvailable
		for _, b := range blocking {
			if b.IsBlocking() && b.Overlaps(slot.StartAt, slot.EndAt) {
				status = domain.SlotBooked
				break
			}
		}

		result[i] = domain.TimeSlot{
			FieldID: fieldID,
			StartAt: slot.StartAt,
			EndAt:   slot.EndAt,
			Price:   slot.Price,
			Status:  status,
		}
	}

	return result
}
