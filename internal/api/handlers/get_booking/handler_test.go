package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

type fakeService struct {
	booking *domain.Booking
	err     error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	b := *f.booking
	b.ID = id
	return &b, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	return mux.SetURLVars(req, map[string]string{"bookingId": id})
}

func TestHandle_OK(t *testing.T) {
	start := time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC)
	svc := &fakeService{booking: &domain.Booking{
		FieldID:    2,
		StartAt:    start,
		EndAt:      start.Add(90 * time.Minute),
		Status:     domain.StatusConfirmed,
		BasePrice:  450000,
		Surcharge:  90000,
		TotalPrice: 540000,
	}}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("15"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(15), body.ID)
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, int64(90), body.DurationMinutes)
	assert.True(t, body.StartAt.Equal(start))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		err  error
		want int
	}{
		{name: "bad id", id: "abc", want: http.StatusBadRequest},
		{name: "not found", id: "1", err: domain.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "storage failure", id: "1", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
