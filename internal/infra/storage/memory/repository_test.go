package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
)

var day = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

func hm(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newBooking(fieldID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		FieldID:       fieldID,
		CustomerName:  "Ivan",
		CustomerPhone: "+79990000000",
		StartAt:       start,
		EndAt:         end,
		Status:        status,
		TotalPrice:    300000,
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusPending))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.StartAt, got.StartAt)
	assert.Equal(t, domain.StatusPending, got.Status)

	// Возвращается копия
	got.Status = domain.StatusCancelled
	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestRepository_OverlapConstraint(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusConfirmed))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking(1, hm(10, 30), hm(11, 30), domain.StatusPending))
	assert.ErrorIs(t, err, booking.ErrOverlap)

	// другое поле, касание и неблокирующий статус допустимы
	_, err = repo.Create(ctx, newBooking(2, hm(10, 30), hm(11, 30), domain.StatusPending))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(1, hm(11, 0), hm(12, 0), domain.StatusPending))
	assert.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusCancelled))
	assert.NoError(t, err)
}

func TestRepository_ListByField(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	overnight, err := repo.Create(ctx, newBooking(1, hm(-1, 0), hm(1, 0), domain.StatusConfirmed))
	require.NoError(t, err)
	late, err := repo.Create(ctx, newBooking(1, hm(18, 0), hm(19, 0), domain.StatusPending))
	require.NoError(t, err)
	early, err := repo.Create(ctx, newBooking(1, hm(9, 0), hm(10, 0), domain.StatusPending))
	require.NoError(t, err)
	done, err := repo.Create(ctx, newBooking(1, hm(12, 0), hm(13, 0), domain.StatusCompleted))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(1, hm(24, 0), hm(25, 0), domain.StatusPending))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(2, hm(9, 0), hm(10, 0), domain.StatusPending))
	require.NoError(t, err)

	from, to := domain.DayWindow(day, time.UTC)

	blocking, err := repo.ListByField(ctx, domain.FieldBookingsFilter{FieldID: 1, From: from, To: to})
	require.NoError(t, err)
	assert.Equal(t, []int64{overnight.ID, early.ID, late.ID}, ids(blocking))

	all, err := repo.ListByField(ctx, domain.FieldBookingsFilter{FieldID: 1, From: from, To: to, IncludeInactive: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{overnight.ID, early.ID, done.ID, late.ID}, ids(all))

	excluded, err := repo.ListByField(ctx, domain.FieldBookingsFilter{FieldID: 1, From: from, To: to, ExcludeID: &early.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{overnight.ID, late.ID}, ids(excluded))
}

func TestRepository_UpdateStatusAndUpdate(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	b, err := repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusPending))
	require.NoError(t, err)

	cancelledAt := hm(9, 0)
	reason := "rain"
	b.Status = domain.StatusCancelled
	b.CancelledAt = &cancelledAt
	b.CancellationReason = &reason
	require.NoError(t, repo.UpdateStatus(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "rain", *got.CancellationReason)

	// Update не трогает статус
	other, err := repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusPending))
	require.NoError(t, err)
	other.StartAt = hm(14, 0)
	other.EndAt = hm(15, 0)
	other.Status = domain.StatusCompleted
	require.NoError(t, repo.Update(ctx, other))

	got, err = repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, hm(14, 0), got.StartAt)
	assert.Equal(t, domain.StatusPending, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, &domain.Booking{ID: 999}), booking.ErrBookingNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, &domain.Booking{ID: 999}), booking.ErrBookingNotFound)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	repo := NewRepository()
	tm := NewTxManager()
	ctx := context.Background()

	kept, err := repo.Create(ctx, newBooking(1, hm(8, 0), hm(9, 0), domain.StatusPending))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.Do(ctx, func(ctx context.Context) error {
		if _, err := repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusPending)); err != nil {
			return err
		}
		kept.StartAt = hm(16, 0)
		kept.EndAt = hm(17, 0)
		if err := repo.Update(ctx, kept); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := repo.ListByField(ctx, domain.FieldBookingsFilter{FieldID: 1, IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, hm(8, 0), all[0].StartAt)
}

func TestLockField(t *testing.T) {
	repo := NewRepository()
	tm := NewTxManager()

	err := repo.LockField(context.Background(), 1)
	assert.ErrorIs(t, err, booking.ErrTransaction)

	// Без блокировки обе транзакции увидели бы свободный слот
	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = tm.Do(context.Background(), func(ctx context.Context) error {
				if err := repo.LockField(ctx, 1); err != nil {
					return err
				}
				existing, err := repo.ListByField(ctx, domain.FieldBookingsFilter{FieldID: 1, From: hm(10, 0), To: hm(11, 0)})
				if err != nil {
					return err
				}
				if len(existing) > 0 {
					return &domain.ConflictError{FieldID: 1, BookingID: existing[0].ID}
				}
				_, err = repo.Create(ctx, newBooking(1, hm(10, 0), hm(11, 0), domain.StatusPending))
				return err
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
}

func TestGetByID_LocksBookingUntilTxEnds(t *testing.T) {
	repo := NewRepository()
	tm := NewTxManager()

	created, err := repo.Create(context.Background(), newBooking(1, hm(10, 0), hm(11, 0), domain.StatusPending))
	require.NoError(t, err)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- tm.Do(context.Background(), func(ctx context.Context) error {
			current, err := repo.GetByID(ctx, created.ID)
			if err != nil {
				return err
			}
			// повторное чтение в той же транзакции не блокируется
			if _, err := repo.GetByID(ctx, created.ID); err != nil {
				return err
			}
			close(locked)
			<-release
			current.Status = domain.StatusCancelled
			return repo.UpdateStatus(ctx, current)
		})
	}()
	<-locked

	read := make(chan domain.BookingStatus, 1)
	go func() {
		_ = tm.Do(context.Background(), func(ctx context.Context) error {
			b, err := repo.GetByID(ctx, created.ID)
			if err != nil {
				return err
			}
			read <- b.Status
			return nil
		})
	}()

	select {
	case <-read:
		t.Fatal("second transaction read a locked booking")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, domain.StatusCancelled, <-read)

	// вне транзакции чтение не блокируется
	b, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
}

func ids(bookings []*domain.Booking) []int64 {
	result := make([]int64, len(bookings))
	for i, b := range bookings {
		result[i] = b.ID
	}
	return result
}
