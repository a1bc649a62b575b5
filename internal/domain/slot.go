package domain

import "time"

// SlotStatus availability of a generated slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// TimeSlot is a derived, never persisted, candidate interval on a field
type TimeSlot struct {
	FieldID int64
	StartAt time.Time
	EndAt   time.Time
	Price   Price
	Status  SlotStatus
}

// IsAvailable returns true if no blocking booking overlaps the slot
func (s *TimeSlot) IsAvailable() bool {
	return s.Status == SlotAvailable
}
