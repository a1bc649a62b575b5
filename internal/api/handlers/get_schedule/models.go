package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	getSchedule "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_schedule"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	FieldID  int64          `json:"fieldId"`
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse слот расписания. Цены в минимальных единицах валюты.
type SlotResponse struct {
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	DurationMinutes int64     `json:"durationMinutes"`
	BasePrice       int64     `json:"basePrice"`
	Surcharge       int64     `json:"surcharge"`
	TotalPrice      int64     `json:"totalPrice"`
	Status          string    `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response) *ScheduleResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartAt:         slot.StartAt,
			EndAt:           slot.EndAt,
			DurationMinutes: slot.DurationMinutes,
			BasePrice:       int64(slot.BasePrice),
			Surcharge:       int64(slot.Surcharge),
			TotalPrice:      int64(slot.TotalPrice),
			Status:          string(slot.Status),
		}
	}

	return &ScheduleResponse{
		FieldID:  resp.FieldID,
		Date:     resp.Date.Format(domain.DateFormat),
		Timezone: resp.Timezone,
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(fieldID int64, dateStr string) (*getSchedule.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSchedule.Request{
		FieldID: fieldID,
		Date:    date,
	}, nil
}
