package get_field

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type FieldProvider interface {
	GetField(ctx context.Context, fieldID int64) (*domain.Field, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
