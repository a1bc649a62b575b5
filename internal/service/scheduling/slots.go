package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Candidate слот-кандидат с ценой, ещё без статуса занятости
type Candidate struct {
	StartAt time.Time
	EndAt   time.Time
	Price   domain.Price
}

// GenerateSlots генерирует слоты поля на дату с шагом SlotDurationMinutes
// от открытия до закрытия. Хвост короче длительности слота отбрасывается.
// Если поле закрывается после полуночи, слоты продолжаются на следующие сутки.
// Каждый слот оценивается через domain.ComputePrice.
func GenerateSlots(field *domain.Field, date time.Time, loc *time.Location) ([]Candidate, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}

	open, closing, err := field.OperatingWindow(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: field %d operating window: %v", domain.ErrValidation, field.ID, err)
	}

	step := time.Duration(field.SlotDurationMinutes) * time.Minute
	slots := make([]Candidate, 0, int(closing.Sub(open)/step))

	for start := open; !start.Add(step).After(closing); start = start.Add(step) {
		end := start.Add(step)

		price, err := domain.ComputePrice(field.HourlyRate, start, end, loc)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Candidate{
			StartAt: start,
			EndAt:   end,
			Price:   price,
		})
	}

	return slots, nil
}

// DropStarted убирает слоты, которые уже начались к моменту now
func DropStarted(slots []Candidate, now time.Time) []Candidate {
	result := make([]Candidate, 0, len(slots))
	for _, s := range slots {
		if !s.StartAt.Before(now) {
			result = append(result, s)
		}
	}
	return result
}

// DropBeyond убирает слоты, начинающиеся в horizon или позже
func DropBeyond(slots []Candidate, horizon time.Time) []Candidate {
	result := make([]Candidate, 0, len(slots))
	for _, s := range slots {
		if s.StartAt.Before(horizon) {
			result = append(result, s)
		}
	}
	return result
}
