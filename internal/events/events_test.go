package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type published struct {
	key       string
	messageID string
	event     *BookingEvent
}

type fakeBroker struct {
	messages []published
	err      error
}

func (b *fakeBroker) PublishJSON(_ context.Context, key, messageID string, v any) error {
	if b.err != nil {
		return b.err
	}
	b.messages = append(b.messages, published{key: key, messageID: messageID, event: v.(*BookingEvent)})
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:         11,
		FieldID:    3,
		StartAt:    time.Date(2026, 5, 20, 20, 0, 0, 0, time.UTC),
		EndAt:      time.Date(2026, 5, 20, 21, 30, 0, 0, time.UTC),
		Status:     domain.StatusConfirmed,
		TotalPrice: 540000,
	}
}

func TestPublisher_Events(t *testing.T) {
	broker := &fakeBroker{}
	p := NewPublisher(broker)
	ctx := context.Background()
	b := testBooking()

	require.NoError(t, p.BookingCreated(ctx, b))
	require.NoError(t, p.StatusChanged(ctx, b, domain.StatusPending))

	previous := testBooking()
	previous.StartAt = previous.StartAt.Add(-time.Hour)
	require.NoError(t, p.Rescheduled(ctx, b, previous))

	require.Len(t, broker.messages, 3)

	created := broker.messages[0]
	assert.Equal(t, RoutingBookingCreated, created.key)
	assert.Equal(t, created.event.EventID, created.messageID)
	_, err := uuid.Parse(created.messageID)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), created.event.BookingID)
	assert.Equal(t, int64(540000), created.event.TotalPrice)

	status := broker.messages[1]
	assert.Equal(t, RoutingBookingStatusChanged, status.key)
	assert.Equal(t, "pending", status.event.PreviousStatus)
	assert.Equal(t, "confirmed", status.event.Status)

	rescheduled := broker.messages[2]
	assert.Equal(t, RoutingBookingRescheduled, rescheduled.key)
	require.NotNil(t, rescheduled.event.PreviousStartAt)
	assert.Equal(t, previous.StartAt, *rescheduled.event.PreviousStartAt)
	assert.NotEqual(t, created.messageID, rescheduled.messageID)
}

func TestPublisher_BrokerError(t *testing.T) {
	p := NewPublisher(&fakeBroker{err: errors.New("channel closed")})

	err := p.BookingCreated(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrPublish)
}
