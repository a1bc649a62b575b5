package list_bookings

import "time"

// Request модель запроса бронирований поля на дату
type Request struct {
	FieldID         int64
	Date            time.Time // Используются только год, месяц и день
	IncludeInactive bool      // Включить завершённые и отменённые
}
