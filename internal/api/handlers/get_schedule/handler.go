package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	getSchedule "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_schedule"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFieldNotFound  = "поле не найдено"
	msgFieldInactive  = "поле недоступно для бронирования"
	msgPastDate       = "нельзя получить расписание на прошедшую дату"
	msgDateTooFar     = "дата слишком далеко в будущем"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/schedule
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем fieldId из URL
	fieldID, err := strconv.ParseInt(vars["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/schedule - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /fields/{id}/schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(fieldID, dateStr)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id}/schedule - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, getSchedule.ErrFieldInactive):
			h.logger.Warn("GET /fields/{id}/schedule - Field inactive: field_id=%d", fieldID)
			handlers.RespondUnprocessable(w, msgFieldInactive)

		case errors.Is(err, getSchedule.ErrInvalidDate):
			h.logger.Warn("GET /fields/{id}/schedule - Past date: field_id=%d, date=%s", fieldID, dateStr)
			handlers.RespondUnprocessable(w, msgPastDate)

		case errors.Is(err, getSchedule.ErrDateTooFarInFuture):
			h.logger.Warn("GET /fields/{id}/schedule - Date too far: field_id=%d, date=%s", fieldID, dateStr)
			handlers.RespondUnprocessable(w, msgDateTooFar)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /fields/{id}/schedule - Validation failed: field_id=%d, error=%v", fieldID, err)
			handlers.RespondUnprocessable(w, msgInvalidParams)

		default:
			h.logger.Error("GET /fields/{id}/schedule - Failed to get schedule: field_id=%d, date=%s, error=%v",
				fieldID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /fields/{id}/schedule - Schedule retrieved successfully: field_id=%d, date=%s, slots_count=%d",
		fieldID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
