package list_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	listBookings "github.com/m04kA/SMC-FieldBookingService/internal/usecase/list_bookings"
)

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(fieldID int64, dateStr, includeInactiveStr string) (*listBookings.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &listBookings.Request{
		FieldID:         fieldID,
		Date:            date,
		IncludeInactive: false, // По умолчанию только блокирующие
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
