package fieldservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/fields/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": 1,
				"name": "Arena",
				"location": "North stand",
				"hourlyRate": 300000,
				"openingTime": "08:00",
				"closingTime": "00:00",
				"slotDurationMinutes": 90,
				"timezone": "Europe/Moscow",
				"active": true
			}`))
		case "/internal/fields/2":
			w.WriteHeader(http.StatusNotFound)
		case "/internal/fields/3":
			_, _ = w.Write([]byte(`{"id": 99}`))
		case "/internal/fields/4":
			_, _ = w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nopLogger{})
	ctx := context.Background()

	field, err := client.GetField(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Arena", field.Name)
	assert.Equal(t, domain.Money(300000), field.HourlyRate)
	assert.Equal(t, "08:00", field.OpeningTime.String())
	assert.Equal(t, 90, field.SlotDurationMinutes)
	assert.Equal(t, "Europe/Moscow", field.Timezone)
	assert.True(t, field.ClosesAfterMidnight())

	_, err = client.GetField(ctx, 2)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = client.GetField(ctx, 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetField(ctx, 4)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetField(ctx, 5)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_GetField_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{})

	_, err := client.GetField(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
