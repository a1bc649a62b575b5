package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]time.Time
		want bool
	}{
		{"partial overlap", [2]time.Time{at(18, 0), at(19, 30)}, [2]time.Time{at(19, 0), at(20, 0)}, true},
		{"touching end to start", [2]time.Time{at(18, 0), at(19, 30)}, [2]time.Time{at(19, 30), at(21, 0)}, false},
		{"touching start to end", [2]time.Time{at(19, 30), at(21, 0)}, [2]time.Time{at(18, 0), at(19, 30)}, false},
		{"contained", [2]time.Time{at(18, 0), at(22, 0)}, [2]time.Time{at(19, 0), at(20, 0)}, true},
		{"identical", [2]time.Time{at(18, 0), at(19, 0)}, [2]time.Time{at(18, 0), at(19, 0)}, true},
		{"disjoint", [2]time.Time{at(8, 0), at(9, 0)}, [2]time.Time{at(10, 0), at(11, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a[0], tt.a[1], tt.b[0], tt.b[1]))
			assert.Equal(t, tt.want, Overlaps(tt.b[0], tt.b[1], tt.a[0], tt.a[1]))
		})
	}
}

func TestBookingChanges_ChangesSchedule(t *testing.T) {
	b := &Booking{FieldID: 1, StartAt: at(18, 0), EndAt: at(19, 30)}

	assert.False(t, BookingChanges{CustomerName: ptr.Ptr("Ivan")}.ChangesSchedule(b))
	assert.False(t, BookingChanges{FieldID: ptr.Ptr(int64(1)), StartAt: ptr.Ptr(at(18, 0))}.ChangesSchedule(b))
	assert.True(t, BookingChanges{FieldID: ptr.Ptr(int64(2))}.ChangesSchedule(b))
	assert.True(t, BookingChanges{EndAt: ptr.Ptr(at(20, 0))}.ChangesSchedule(b))
}

func TestField_OperatingWindow(t *testing.T) {
	date := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	f := &Field{OpeningTime: "08:00", ClosingTime: "22:00"}
	open, closing, err := f.OperatingWindow(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, at(8, 0), open)
	assert.Equal(t, at(22, 0), closing)

	night := &Field{OpeningTime: "16:00", ClosingTime: "00:00"}
	_, closing, err = night.OperatingWindow(date, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, at(0, 0).AddDate(0, 0, 1), closing)
}

func TestField_Validate(t *testing.T) {
	valid := Field{ID: 1, HourlyRate: 300000, OpeningTime: "08:00", ClosingTime: "22:00", SlotDurationMinutes: 90}
	require.NoError(t, valid.Validate())

	noRate := valid
	noRate.HourlyRate = 0
	assert.ErrorIs(t, noRate.Validate(), ErrValidation)

	noSlot := valid
	noSlot.SlotDurationMinutes = 0
	assert.ErrorIs(t, noSlot.Validate(), ErrValidation)

	shortSlot := valid
	shortSlot.SlotDurationMinutes = MinSlotDurationMinutes - 1
	assert.ErrorIs(t, shortSlot.Validate(), ErrValidation)

	longSlot := valid
	longSlot.SlotDurationMinutes = MaxSlotDurationMinutes + 1
	assert.ErrorIs(t, longSlot.Validate(), ErrValidation)

	bounds := valid
	bounds.SlotDurationMinutes = MinSlotDurationMinutes
	assert.NoError(t, bounds.Validate())
	bounds.SlotDurationMinutes = MaxSlotDurationMinutes
	assert.NoError(t, bounds.Validate())

	badTime := valid
	badTime.ClosingTime = "25:00"
	assert.ErrorIs(t, badTime.Validate(), ErrValidation)
}

func TestField_LoadLocation(t *testing.T) {
	f := &Field{}
	loc, err := f.LoadLocation(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	f.Timezone = "Not/AZone"
	_, err = f.LoadLocation(time.UTC)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBookingHorizon(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	// 23:30 по Москве - уже 20 мая, хотя в UTC ещё 19-е
	now := time.Date(2026, 5, 19, 20, 30, 0, 0, time.UTC)

	horizon, ok := BookingHorizon(now, 2, msk)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 5, 23, 0, 0, 0, 0, msk), horizon)

	_, ok = BookingHorizon(now, 0, msk)
	assert.False(t, ok)
}
