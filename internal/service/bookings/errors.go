package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

var (
	// ErrFieldInactive возвращается при бронировании выключенного поля
	ErrFieldInactive = fmt.Errorf("%w: field is not active", domain.ErrValidation)

	// ErrFieldMismatch возвращается, если переданное поле не совпадает с полем бронирования
	ErrFieldMismatch = fmt.Errorf("%w: field does not match booking", domain.ErrValidation)

	// ErrTooFarInAdvance возвращается, если бронирование дальше разрешённого горизонта
	ErrTooFarInAdvance = fmt.Errorf("%w: booking is too far in advance", domain.ErrValidation)

	// ErrStartTooEarly возвращается при попытке начать игру раньше времени бронирования
	ErrStartTooEarly = fmt.Errorf("%w: booking has not started yet", domain.ErrInvalidTransition)
)
