package get_field

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// FieldResponse HTTP response model. hourlyRate в минимальных единицах валюты.
type FieldResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Location            string `json:"location"`
	HourlyRate          int64  `json:"hourlyRate"`
	OpeningTime         string `json:"openingTime"`
	ClosingTime         string `json:"closingTime"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	Timezone            string `json:"timezone"`
	Active              bool   `json:"active"`
}

// FromDomain конвертирует поле в HTTP response.
// Пустой часовой пояс поля заменяется часовым поясом сервиса.
func FromDomain(f *domain.Field, defaultTimezone string) *FieldResponse {
	tz := f.Timezone
	if tz == "" {
		tz = defaultTimezone
	}

	return &FieldResponse{
		ID:                  f.ID,
		Name:                f.Name,
		Location:            f.Location,
		HourlyRate:          int64(f.HourlyRate),
		OpeningTime:         f.OpeningTime.String(),
		ClosingTime:         f.ClosingTime.String(),
		SlotDurationMinutes: f.SlotDurationMinutes,
		Timezone:            tz,
		Active:              f.Active,
	}
}
