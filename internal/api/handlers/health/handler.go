package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger проверка доступности зависимости (БД)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

// Response тело ответа health check
type Response struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

type Handler struct {
	db      Pinger // nil для in-memory хранилища
	storage string
	logger  Logger
}

func NewHandler(db Pinger, storage string, logger Logger) *Handler {
	return &Handler{
		db:      db,
		storage: storage,
		logger:  logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Database ping failed: %v", err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable", Storage: h.storage})
			return
		}
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok", Storage: h.storage})
}
