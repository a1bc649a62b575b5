package update_booking_status

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Event  string  `json:"event" validate:"required,oneof=approve reject cancel start finish"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Force  bool    `json:"force,omitempty"` // начать игру раньше времени
}

// ToStatusChange конвертирует HTTP request в модель домена
func (r *UpdateStatusRequest) ToStatusChange() (domain.StatusChange, error) {
	event, err := domain.ParseEvent(r.Event)
	if err != nil {
		return domain.StatusChange{}, err
	}

	return domain.StatusChange{
		Event:  event,
		Reason: r.Reason,
		Force:  r.Force,
	}, nil
}
