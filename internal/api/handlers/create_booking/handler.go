package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается RFC 3339 (2025-10-15T20:00:00+03:00)"
	msgInvalidParams      = "некорректные параметры бронирования"
	msgInvalidRange       = "некорректный интервал бронирования"
	msgFieldNotFound      = "поле не найдено"
	msgFieldInactive      = "поле недоступно для бронирования"
	msgTooFarInAdvance    = "дата бронирования слишком далеко в будущем"
	msgSlotNotAvailable   = "выбранный интервал пересекается с существующим бронированием"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidParams)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Slot not available: field_id=%d, error=%v", req.FieldID, err)
			handlers.RespondBookingConflict(w, msgSlotNotAvailable, err)

		case errors.Is(err, domain.ErrFieldNotFound):
			h.logger.Warn("POST /bookings - Field not found: field_id=%d", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, bookings.ErrFieldInactive):
			h.logger.Warn("POST /bookings - Field inactive: field_id=%d", req.FieldID)
			handlers.RespondUnprocessable(w, msgFieldInactive)

		case errors.Is(err, bookings.ErrTooFarInAdvance):
			h.logger.Warn("POST /bookings - Date too far in future: field_id=%d", req.FieldID)
			handlers.RespondUnprocessable(w, msgTooFarInAdvance)

		case errors.Is(err, domain.ErrInvalidRange):
			h.logger.Warn("POST /bookings - Invalid range: field_id=%d, error=%v", req.FieldID, err)
			handlers.RespondUnprocessable(w, msgInvalidRange)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: field_id=%d, error=%v", req.FieldID, err)
			handlers.RespondUnprocessable(w, msgInvalidParams)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: field_id=%d, error=%v", req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, field_id=%d, total_price=%d",
		result.ID, result.FieldID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
