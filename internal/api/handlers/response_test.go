package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type sampleRequest struct {
	FieldID int64  `json:"fieldId" validate:"required,gt=0"`
	Name    string `json:"name" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"fieldId":1,"name":"Ivan"}`},
		{name: "unknown field", body: `{"fieldId":1,"extra":true}`, wantErr: true},
		{name: "broken json", body: `{"fieldId":`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var v sampleRequest
			err := DecodeJSON(req, &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), v.FieldID)
		})
	}
}

func TestDecodeJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var v sampleRequest
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrEmptyBody)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&sampleRequest{FieldID: 1, Name: "Ivan"}))

	err := Validate(&sampleRequest{FieldID: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FieldID")
	assert.Contains(t, err.Error(), "Name")
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "занято"}, body)
}

func TestRespondBookingConflict(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantField   *int64
		wantBooking *int64
	}{
		{
			name:        "conflicting booking known",
			err:         fmt.Errorf("wrapped: %w", &domain.ConflictError{FieldID: 3, BookingID: 9}),
			wantField:   int64Ptr(3),
			wantBooking: int64Ptr(9),
		},
		{
			name:      "rejected by storage constraint",
			err:       &domain.ConflictError{FieldID: 3},
			wantField: int64Ptr(3),
		},
		{
			name: "plain error",
			err:  errors.New("busy"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondBookingConflict(rec, "занято", tt.err)

			assert.Equal(t, http.StatusConflict, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, http.StatusConflict, body.Code)
			assert.Equal(t, "занято", body.Message)
			assert.Equal(t, tt.wantField, body.FieldID)
			assert.Equal(t, tt.wantBooking, body.ConflictingBookingID)
		})
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
