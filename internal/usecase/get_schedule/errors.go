package get_schedule

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_schedule: invalid input data", domain.ErrValidation)

	// ErrInvalidDate возвращается при запросе расписания на прошедшую дату
	ErrInvalidDate = fmt.Errorf("%w: get_schedule: date is in the past", domain.ErrValidation)

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = fmt.Errorf("%w: get_schedule: date is too far in the future", domain.ErrValidation)

	// ErrFieldInactive возвращается для выключенного поля
	ErrFieldInactive = fmt.Errorf("%w: get_schedule: field is not active", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_schedule: internal error")
)
