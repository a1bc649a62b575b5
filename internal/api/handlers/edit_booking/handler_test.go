package edit_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
	editBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/edit_booking"
)

type fakeUseCase struct {
	got *editBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *editBooking.Request) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: req.BookingID, FieldID: 1, Status: "pending"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(id, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+id, strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"bookingId": id})
}

func TestHandle_Reschedule(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("9", `{"startAt":"2025-06-01T18:00:00+03:00","endAt":"2025-06-01T19:00:00+03:00"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(9), uc.got.BookingID)
	require.NotNil(t, uc.got.StartAt)
	require.NotNil(t, uc.got.EndAt)
	assert.Equal(t, time.Hour, uc.got.EndAt.Sub(*uc.got.StartAt))
	assert.Nil(t, uc.got.FieldID)
	assert.Nil(t, uc.got.CustomerName)
}

func TestHandle_CustomerOnly(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("9", `{"customerName":"Petr"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.CustomerName)
	assert.Equal(t, "Petr", *uc.got.CustomerName)
	assert.Nil(t, uc.got.StartAt)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{name: "bad id", id: "-", body: `{}`, want: http.StatusBadRequest},
		{name: "broken json", id: "1", body: `[`, want: http.StatusBadRequest},
		{name: "bad datetime", id: "1", body: `{"startAt":"tomorrow"}`, want: http.StatusBadRequest},
		{name: "non-positive field", id: "1", body: `{"fieldId":-1}`, want: http.StatusUnprocessableEntity},
		{name: "empty name", id: "1", body: `{"customerName":""}`, want: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.id, tt.body))

			assert.Equal(t, tt.want, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "booking not found", err: domain.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "field not found", err: domain.ErrFieldNotFound, want: http.StatusNotFound},
		{name: "conflict", err: &domain.ConflictError{FieldID: 1, BookingID: 2}, want: http.StatusConflict},
		{name: "not editable", err: fmt.Errorf("%w: completed", domain.ErrNotEditable), want: http.StatusConflict},
		{name: "invalid range", err: domain.ErrInvalidRange, want: http.StatusUnprocessableEntity},
		{name: "nothing to change", err: editBooking.ErrInvalidInput, want: http.StatusUnprocessableEntity},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("1", `{"notes":"bring balls"}`))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_ConflictBodyNamesBooking(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: &domain.ConflictError{FieldID: 2, BookingID: 17}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("1", `{"notes":"bring balls"}`))

	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.FieldID)
	require.NotNil(t, body.ConflictingBookingID)
	assert.Equal(t, int64(2), *body.FieldID)
	assert.Equal(t, int64(17), *body.ConflictingBookingID)
}
