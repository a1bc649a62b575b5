package get_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

type fakeFields struct {
	fields map[int64]*domain.Field
	err    error
}

func (f *fakeFields) GetField(_ context.Context, id int64) (*domain.Field, error) {
	if f.err != nil {
		return nil, f.err
	}
	field, ok := f.fields[id]
	if !ok {
		return nil, fieldClient.ErrFieldNotFound
	}
	return field, nil
}

type fakeAvailability struct {
	bookings []*domain.Booking
	err      error
	dates    []time.Time
}

func (a *fakeAvailability) BlockingBookings(_ context.Context, fieldID int64, date time.Time, loc *time.Location) ([]*domain.Booking, error) {
	a.dates = append(a.dates, date)
	if a.err != nil {
		return nil, a.err
	}
	from, to := domain.DayWindow(date, loc)
	var result []*domain.Booking
	for _, b := range a.bookings {
		if b.FieldID == fieldID && b.IsBlocking() && b.Overlaps(from, to) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var moscow = time.FixedZone("MSK", 3*60*60)

func field(id int64, open, close string) *domain.Field {
	return &domain.Field{
		ID:                  id,
		Name:                "Arena",
		HourlyRate:          300000,
		OpeningTime:         types.TimeString(open),
		ClosingTime:         types.TimeString(close),
		SlotDurationMinutes: 90,
		Active:              true,
	}
}

func newUseCase(fields *fakeFields, availability *fakeAvailability, now time.Time, opts Options) *UseCase {
	uc := NewUseCase(fields, availability, nopLogger{}, opts)
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func at(day, hour, min int) time.Time {
	return time.Date(2026, 5, day, hour, min, 0, 0, moscow)
}

func TestExecute_AnnotatedSchedule(t *testing.T) {
	fields := &fakeFields{fields: map[int64]*domain.Field{1: field(1, "08:00", "22:00")}}
	availability := &fakeAvailability{bookings: []*domain.Booking{
		{ID: 1, FieldID: 1, StartAt: at(20, 18, 0), EndAt: at(20, 19, 30), Status: domain.StatusConfirmed},
		{ID: 2, FieldID: 1, StartAt: at(20, 9, 0), EndAt: at(20, 10, 0), Status: domain.StatusCancelled},
	}}
	uc := newUseCase(fields, availability, at(19, 12, 0), Options{DefaultLocation: moscow, HidePastSlots: true})

	resp, err := uc.Execute(context.Background(), &Request{FieldID: 1, Date: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.FieldID)
	assert.Equal(t, at(20, 0, 0), resp.Date)
	assert.Equal(t, "MSK", resp.Timezone)

	// 08:00-22:00 по 90 минут: 9 слотов, хвост 21:30-22:00 отброшен
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, at(20, 8, 0), resp.Slots[0].StartAt)
	assert.Equal(t, at(20, 21, 30), resp.Slots[8].EndAt)

	// 17:00-18:30 и 18:30-20:00 пересекают бронь 18:00-19:30
	for _, s := range resp.Slots {
		start := s.StartAt.Format(domain.TimeFormat)
		switch start {
		case "17:00", "18:30":
			assert.Equal(t, domain.SlotBooked, s.Status, start)
		default:
			assert.Equal(t, domain.SlotAvailable, s.Status, start)
		}
	}

	// 20:00-21:30 с ночной надбавкой
	night := resp.Slots[8]
	assert.Equal(t, domain.Money(450000), night.BasePrice)
	assert.Equal(t, domain.Money(90000), night.Surcharge)
	assert.Equal(t, domain.Money(540000), night.TotalPrice)
	assert.Equal(t, int64(90), night.DurationMinutes)
}

func TestExecute_HidesStartedSlotsToday(t *testing.T) {
	fields := &fakeFields{fields: map[int64]*domain.Field{1: field(1, "08:00", "22:00")}}
	uc := newUseCase(fields, &fakeAvailability{}, at(20, 12, 0), Options{DefaultLocation: moscow, HidePastSlots: true})

	resp, err := uc.Execute(context.Background(), &Request{FieldID: 1, Date: at(20, 0, 0)})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, at(20, 12, 30), resp.Slots[0].StartAt)

	uc.opts.HidePastSlots = false
	resp, err = uc.Execute(context.Background(), &Request{FieldID: 1, Date: at(20, 0, 0)})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_ClosesAfterMidnight(t *testing.T) {
	fields := &fakeFields{fields: map[int64]*domain.Field{1: field(1, "17:00", "02:00")}}
	availability := &fakeAvailability{bookings: []*domain.Booking{
		{ID: 7, FieldID: 1, StartAt: at(21, 0, 30), EndAt: at(21, 1, 30), Status: domain.StatusPending},
	}}
	uc := newUseCase(fields, availability, at(19, 12, 0), Options{DefaultLocation: moscow})

	resp, err := uc.Execute(context.Background(), &Request{FieldID: 1, Date: at(20, 0, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 6)

	last := resp.Slots[5]
	assert.Equal(t, at(21, 0, 30), last.StartAt)
	assert.Equal(t, domain.SlotBooked, last.Status)
	assert.Len(t, availability.dates, 2)
}

func TestExecute_LastDayOfHorizon(t *testing.T) {
	fields := &fakeFields{fields: map[int64]*domain.Field{1: field(1, "17:00", "02:00")}}
	uc := newUseCase(fields, &fakeAvailability{}, at(20, 12, 0), Options{DefaultLocation: moscow, AdvanceBookingDays: 1})

	// Последний день горизонта открыт целиком, но слот после полуночи
	// уже за горизонтом и не показывается
	resp, err := uc.Execute(context.Background(), &Request{FieldID: 1, Date: at(21, 0, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 5)
	assert.Equal(t, at(21, 23, 0), resp.Slots[4].StartAt)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotAvailable, s.Status)
	}

	_, err = uc.Execute(context.Background(), &Request{FieldID: 1, Date: at(22, 0, 0)})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_Errors(t *testing.T) {
	inactive := field(2, "08:00", "22:00")
	inactive.Active = false
	fields := &fakeFields{fields: map[int64]*domain.Field{1: field(1, "08:00", "22:00"), 2: inactive}}
	now := at(20, 12, 0)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *Request
		opts Options
		want error
	}{
		{name: "no field id", req: &Request{Date: now}, want: ErrInvalidInput},
		{name: "no date", req: &Request{FieldID: 1}, want: ErrInvalidInput},
		{name: "unknown field", req: &Request{FieldID: 9, Date: now}, want: domain.ErrFieldNotFound},
		{name: "inactive field", req: &Request{FieldID: 2, Date: now}, want: ErrFieldInactive},
		{name: "past date", req: &Request{FieldID: 1, Date: at(19, 0, 0)}, want: ErrInvalidDate},
		{name: "too far", req: &Request{FieldID: 1, Date: at(30, 0, 0)}, opts: Options{AdvanceBookingDays: 7}, want: ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.DefaultLocation = moscow
			uc := newUseCase(fields, &fakeAvailability{}, now, tt.opts)
			_, err := uc.Execute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("field service down", func(t *testing.T) {
		uc := newUseCase(&fakeFields{err: errors.New("timeout")}, &fakeAvailability{}, now, Options{})
		_, err := uc.Execute(ctx, &Request{FieldID: 1, Date: now})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("storage down", func(t *testing.T) {
		uc := newUseCase(fields, &fakeAvailability{err: errors.New("db down")}, now, Options{DefaultLocation: moscow})
		_, err := uc.Execute(ctx, &Request{FieldID: 1, Date: now})
		assert.ErrorIs(t, err, domain.ErrPersistence)
	})
}
