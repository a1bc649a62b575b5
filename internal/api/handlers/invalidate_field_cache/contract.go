package invalidate_field_cache

import "context"

type FieldCache interface {
	Invalidate(ctx context.Context, fieldID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
