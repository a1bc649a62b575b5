package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Ключи маршрутизации событий бронирований
const (
	RoutingBookingCreated       = "booking.created"
	RoutingBookingStatusChanged = "booking.status_changed"
	RoutingBookingRescheduled   = "booking.rescheduled"
)

// Broker транспорт публикации (pkg/mq.Publisher)
type Broker interface {
	PublishJSON(ctx context.Context, key, messageID string, v any) error
}

// BookingEvent тело события. Читатели: отчёты и уведомления.
type BookingEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	BookingID  int64     `json:"bookingId"`
	FieldID    int64     `json:"fieldId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`
	Status     string    `json:"status"`
	TotalPrice int64     `json:"totalPrice"`

	PreviousStatus  string     `json:"previousStatus,omitempty"`
	PreviousFieldID *int64     `json:"previousFieldId,omitempty"`
	PreviousStartAt *time.Time `json:"previousStartAt,omitempty"`
	PreviousEndAt   *time.Time `json:"previousEndAt,omitempty"`
}

// Publisher публикует события жизненного цикла бронирований
type Publisher struct {
	broker Broker
	now    func() time.Time
}

func NewPublisher(broker Broker) *Publisher {
	return &Publisher{broker: broker, now: time.Now}
}

func (p *Publisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return p.publish(ctx, p.newEvent(RoutingBookingCreated, b))
}

func (p *Publisher) StatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus) error {
	event := p.newEvent(RoutingBookingStatusChanged, b)
	event.PreviousStatus = from.String()
	return p.publish(ctx, event)
}

func (p *Publisher) Rescheduled(ctx context.Context, b *domain.Booking, previous *domain.Booking) error {
	event := p.newEvent(RoutingBookingRescheduled, b)
	if previous != nil {
		fieldID, start, end := previous.FieldID, previous.StartAt, previous.EndAt
		event.PreviousFieldID = &fieldID
		event.PreviousStartAt = &start
		event.PreviousEndAt = &end
	}
	return p.publish(ctx, event)
}

func (p *Publisher) newEvent(eventType string, b *domain.Booking) *BookingEvent {
	return &BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		BookingID:  b.ID,
		FieldID:    b.FieldID,
		StartAt:    b.StartAt,
		EndAt:      b.EndAt,
		Status:     b.Status.String(),
		TotalPrice: int64(b.TotalPrice),
	}
}

func (p *Publisher) publish(ctx context.Context, event *BookingEvent) error {
	if err := p.broker.PublishJSON(ctx, event.Type, event.EventID, event); err != nil {
		return fmt.Errorf("%w: %s booking=%d: %v", ErrPublish, event.Type, event.BookingID, err)
	}
	return nil
}

// Noop используется, когда брокер выключен
type Noop struct{}

func (Noop) BookingCreated(context.Context, *domain.Booking) error                      { return nil }
func (Noop) StatusChanged(context.Context, *domain.Booking, domain.BookingStatus) error { return nil }
func (Noop) Rescheduled(context.Context, *domain.Booking, *domain.Booking) error        { return nil }
