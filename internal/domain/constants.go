package domain

// Pricing rules
const (
	// NightSurchargeStartHour bookings starting at or after this hour (field local time) pay the surcharge
	NightSurchargeStartHour = 20
	NightSurchargePercent   = 20
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 15
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxBookingDurationMinutes   = 24 * 60
	MaxCustomerNameLength       = 255
	MaxCustomerPhoneLength      = 32
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
