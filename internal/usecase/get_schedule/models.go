package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Options настройки расписания
type Options struct {
	DefaultLocation    *time.Location // часовой пояс полей без собственного
	HidePastSlots      bool           // скрывать начавшиеся слоты в расписании на сегодня
	AdvanceBookingDays int            // 0 - без ограничения
}

// Request модель запроса расписания поля
type Request struct {
	FieldID int64
	Date    time.Time // Используются только год, месяц и день
}

// Response модель ответа с расписанием
type Response struct {
	FieldID  int64
	Date     time.Time // Полночь даты в часовом поясе поля
	Timezone string
	Slots    []Slot
}

// Slot слот расписания с ценой и статусом
type Slot struct {
	StartAt         time.Time
	EndAt           time.Time
	DurationMinutes int64
	BasePrice       domain.Money
	Surcharge       domain.Money
	TotalPrice      domain.Money
	Status          domain.SlotStatus
}

func toSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			StartAt:         s.StartAt,
			EndAt:           s.EndAt,
			DurationMinutes: s.Price.DurationMinutes,
			BasePrice:       s.Price.BasePrice,
			Surcharge:       s.Price.Surcharge,
			TotalPrice:      s.Price.Total,
			Status:          s.Status,
		}
	}
	return result
}
