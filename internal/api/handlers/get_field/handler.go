package get_field

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	fieldClient "github.com/m04kA/SMC-FieldBookingService/internal/integrations/fieldservice"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgFieldNotFound  = "поле не найдено"
)

type Handler struct {
	fields          FieldProvider
	defaultTimezone string
	logger          Logger
}

func NewHandler(fields FieldProvider, defaultTimezone string, logger Logger) *Handler {
	return &Handler{
		fields:          fields,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}
// Конфигурация поля: тариф, часы работы, длительность слота
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fieldID, err := strconv.ParseInt(vars["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /fields/{id} - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	field, err := h.fields.GetField(r.Context(), fieldID)
	if err != nil {
		switch {
		case errors.Is(err, fieldClient.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id} - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		default:
			h.logger.Error("GET /fields/{id} - Failed to get field: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id} - Field retrieved successfully: field_id=%d", fieldID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(field, h.defaultTimezone))
}
