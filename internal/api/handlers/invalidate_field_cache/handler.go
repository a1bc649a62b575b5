package invalidate_field_cache

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
)

type Handler struct {
	cache  FieldCache
	logger Logger
}

func NewHandler(cache FieldCache, logger Logger) *Handler {
	return &Handler{
		cache:  cache,
		logger: logger,
	}
}

// Handle DELETE /api/v1/fields/{fieldId}/cache
// Вызывается сервисом полей после изменения конфигурации поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fieldID, err := strconv.ParseInt(vars["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /fields/{id}/cache - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	if err := h.cache.Invalidate(r.Context(), fieldID); err != nil {
		h.logger.Error("DELETE /fields/{id}/cache - Failed to invalidate: field_id=%d, error=%v", fieldID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /fields/{id}/cache - Field cache invalidated: field_id=%d", fieldID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
