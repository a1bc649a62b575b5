package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgMissingDate    = "дата обязательна"
	msgInvalidParams  = "некорректные параметры запроса"
	msgFieldNotFound  = "поле не найдено"
)

type Handler struct {
	useCase ListBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ListBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/bookings
// Query params: date (required, YYYY-MM-DD), includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем fieldId из URL
	vars := mux.Vars(r)
	fieldID, err := strconv.ParseInt(vars["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/bookings - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /fields/{id}/bookings - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fieldID, dateStr, r.URL.Query().Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /fields/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id}/bookings - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /fields/{id}/bookings - Validation failed: field_id=%d, error=%v", fieldID, err)
			handlers.RespondUnprocessable(w, msgInvalidParams)

		default:
			h.logger.Error("GET /fields/{id}/bookings - Failed to get bookings: field_id=%d, error=%v",
				fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id}/bookings - Bookings retrieved successfully: field_id=%d, count=%d",
		fieldID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
