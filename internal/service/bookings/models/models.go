package models

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Response модели

// BookingResponse ответ с данными бронирования.
// Цены в минимальных единицах валюты.
type BookingResponse struct {
	ID            int64     `json:"id"`
	FieldID       int64     `json:"fieldId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`

	DurationMinutes int64 `json:"durationMinutes"`
	BasePrice       int64 `json:"basePrice"`
	Surcharge       int64 `json:"surcharge"`
	TotalPrice      int64 `json:"totalPrice"`

	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// Время начала и конца отдаётся в часовом поясе поля (loc), если он задан.
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	start, end := b.StartAt, b.EndAt
	if loc != nil {
		start, end = start.In(loc), end.In(loc)
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		FieldID:            b.FieldID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		StartAt:            start,
		EndAt:              end,
		Status:             string(b.Status),
		DurationMinutes:    int64(b.EndAt.Sub(b.StartAt) / time.Minute),
		BasePrice:          int64(b.BasePrice),
		Surcharge:          int64(b.Surcharge),
		TotalPrice:         int64(b.TotalPrice),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
