package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
)

// Repository in-memory хранилище бронирований.
// Повторяет поведение PostgreSQL-репозитория, включая ограничение
// на пересечение блокирующих бронирований одного поля.
type Repository struct {
	mu       sync.RWMutex
	bookings map[int64]*domain.Booking
	nextID   int64
	now      func() time.Time

	locksMu sync.Mutex
	locks   map[lockKey]*sync.Mutex
}

const (
	lockField   = "field"
	lockBooking = "booking"
)

func NewRepository() *Repository {
	return &Repository{
		bookings: make(map[int64]*domain.Booking),
		now:      time.Now,
		locks:    make(map[lockKey]*sync.Mutex),
	}
}

// LockField захватывает мьютекс поля до конца текущей транзакции
func (r *Repository) LockField(ctx context.Context, fieldID int64) error {
	tx, ok := getTx(ctx)
	if !ok {
		return fmt.Errorf("%w: LockField - field=%d: no active transaction", booking.ErrTransaction, fieldID)
	}

	r.acquire(tx, lockKey{kind: lockField, id: fieldID})
	return nil
}

// acquire захватывает блокировку до конца транзакции.
// Повторный захват в той же транзакции ничего не делает.
func (r *Repository) acquire(tx *txState, key lockKey) {
	if tx.holds(key) {
		return
	}

	r.locksMu.Lock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	r.locksMu.Unlock()

	lock.Lock()
	tx.addUnlock(key, lock.Unlock)
}

func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOverlap(b); err != nil {
		return nil, fmt.Errorf("%w: Create", err)
	}

	r.nextID++
	now := r.now()
	b.ID = r.nextID
	b.CreatedAt = now
	b.UpdatedAt = now

	stored := cloneBooking(b)
	r.bookings[b.ID] = stored
	r.recordUndo(ctx, b.ID, nil)

	return b, nil
}

// GetByID возвращает бронирование. Внутри транзакции бронирование блокируется
// до её завершения, аналог SELECT ... FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if tx, ok := getTx(ctx); ok {
		r.acquire(tx, lockKey{kind: lockBooking, id: id})
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// ListByField возвращает бронирования поля, пересекающие [From, To), по возрастанию начала
func (r *Repository) ListByField(_ context.Context, filter domain.FieldBookingsFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.FieldID != filter.FieldID {
			continue
		}
		if !filter.To.IsZero() && !b.StartAt.Before(filter.To) {
			continue
		}
		if !filter.From.IsZero() && !b.EndAt.After(filter.From) {
			continue
		}
		if !filter.IncludeInactive && !b.IsBlocking() {
			continue
		}
		if filter.ExcludeID != nil && b.ID == *filter.ExcludeID {
			continue
		}
		result = append(result, cloneBooking(b))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartAt.Before(result[j].StartAt)
	})

	return result, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bookings[b.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}

	updated := cloneBooking(current)
	updated.Status = b.Status
	updated.CancellationReason = b.CancellationReason
	updated.CancelledAt = b.CancelledAt
	updated.UpdatedAt = r.now()

	if err := r.checkOverlap(updated); err != nil {
		return fmt.Errorf("%w: UpdateStatus", err)
	}

	r.bookings[b.ID] = updated
	r.recordUndo(ctx, b.ID, current)
	b.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bookings[b.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}

	updated := cloneBooking(b)
	updated.Status = current.Status
	updated.CancellationReason = current.CancellationReason
	updated.CancelledAt = current.CancelledAt
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.now()

	if err := r.checkOverlap(updated); err != nil {
		return fmt.Errorf("%w: Update", err)
	}

	r.bookings[b.ID] = updated
	r.recordUndo(ctx, b.ID, current)
	b.UpdatedAt = updated.UpdatedAt
	return nil
}

// checkOverlap аналог EXCLUDE-ограничения таблицы bookings. Вызывается под r.mu.
func (r *Repository) checkOverlap(b *domain.Booking) error {
	if !b.IsBlocking() {
		return nil
	}
	for id, other := range r.bookings {
		if id == b.ID || other.FieldID != b.FieldID || !other.IsBlocking() {
			continue
		}
		if other.Overlaps(b.StartAt, b.EndAt) {
			return fmt.Errorf("%w: field=%d conflicts with booking=%d", booking.ErrOverlap, b.FieldID, id)
		}
	}
	return nil
}

// recordUndo запоминает предыдущее состояние бронирования для отката транзакции.
// Вызывается под r.mu.
func (r *Repository) recordUndo(ctx context.Context, id int64, previous *domain.Booking) {
	tx, ok := getTx(ctx)
	if !ok {
		return
	}
	tx.addUndo(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if previous == nil {
			delete(r.bookings, id)
			return
		}
		r.bookings[id] = previous
	})
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		c.CancellationReason = &reason
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}
