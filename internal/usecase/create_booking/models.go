package create_booking

import (
	"fmt"
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	FieldID       int64     // ID поля
	StartAt       time.Time // Начало интервала
	EndAt         time.Time // Конец интервала (не включительно)
	CustomerName  string    // Имя клиента
	CustomerPhone string    // Телефон клиента
	Notes         *string   // Дополнительные заметки (опционально)
}

// validate проверяет обязательные поля запроса.
// Длины и диапазон времени проверяет хранилище бронирований.
func (r *Request) validate() error {
	if r.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if r.StartAt.IsZero() || r.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	return nil
}
