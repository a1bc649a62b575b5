package scheduling

import "errors"

var (
	// ErrReadBookings возвращается при ошибке чтения бронирований из хранилища
	ErrReadBookings = errors.New("scheduling: failed to read bookings")
)
