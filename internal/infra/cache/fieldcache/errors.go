package fieldcache

import "errors"

var (
	// ErrInvalidate возвращается при ошибке удаления ключа из Redis
	ErrInvalidate = errors.New("fieldcache: failed to invalidate field")
)
