package fieldservice

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Field модель поля из сервиса администрирования полей
type Field struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Location            string           `json:"location"`
	HourlyRate          int64            `json:"hourlyRate"` // в минимальных единицах валюты
	OpeningTime         types.TimeString `json:"openingTime"`
	ClosingTime         types.TimeString `json:"closingTime"`
	SlotDurationMinutes int              `json:"slotDurationMinutes"`
	Timezone            string           `json:"timezone,omitempty"`
	Active              bool             `json:"active"`
}

// ToDomain конвертирует ответ сервиса в доменную модель
func (f *Field) ToDomain() *domain.Field {
	return &domain.Field{
		ID:                  f.ID,
		Name:                f.Name,
		Location:            f.Location,
		HourlyRate:          domain.Money(f.HourlyRate),
		OpeningTime:         f.OpeningTime,
		ClosingTime:         f.ClosingTime,
		SlotDurationMinutes: f.SlotDurationMinutes,
		Timezone:            f.Timezone,
		Active:              f.Active,
	}
}

// FromDomain конвертирует доменную модель в модель сервиса (для кэша)
func FromDomain(f *domain.Field) *Field {
	return &Field{
		ID:                  f.ID,
		Name:                f.Name,
		Location:            f.Location,
		HourlyRate:          int64(f.HourlyRate),
		OpeningTime:         f.OpeningTime,
		ClosingTime:         f.ClosingTime,
		SlotDurationMinutes: f.SlotDurationMinutes,
		Timezone:            f.Timezone,
		Active:              f.Active,
	}
}

// ErrorResponse модель ошибки от сервиса полей
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
