package edit_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается RFC 3339 (2025-10-15T20:00:00+03:00)"
	msgInvalidParams      = "некорректные параметры бронирования"
	msgInvalidRange       = "некорректный интервал бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgFieldNotFound      = "поле не найдено"
	msgFieldInactive      = "поле недоступно для бронирования"
	msgTooFarInAdvance    = "дата бронирования слишком далеко в будущем"
	msgSlotNotAvailable   = "выбранный интервал пересекается с существующим бронированием"
	msgNotEditable        = "бронирование больше нельзя изменить"
)

type Handler struct {
	useCase EditBookingUseCase
	logger  Logger
}

func NewHandler(useCase EditBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req EditBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidParams)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, domain.ErrFieldNotFound):
			h.logger.Warn("PUT /bookings/{id} - Field not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PUT /bookings/{id} - Slot not available: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBookingConflict(w, msgSlotNotAvailable, err)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PUT /bookings/{id} - Booking not editable: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, bookings.ErrFieldInactive):
			h.logger.Warn("PUT /bookings/{id} - Field inactive: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgFieldInactive)

		case errors.Is(err, bookings.ErrTooFarInAdvance):
			h.logger.Warn("PUT /bookings/{id} - Date too far in future: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgTooFarInAdvance)

		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("PUT /bookings/{id} - Invalid range: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, msgInvalidRange)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /bookings/{id} - Validation failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, msgInvalidParams)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to edit booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, field_id=%d, total_price=%d",
		bookingID, result.FieldID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, result)
}
