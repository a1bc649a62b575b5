package fieldservice

import "errors"

var (
	// ErrFieldNotFound возвращается, когда поле не найдено
	ErrFieldNotFound = errors.New("field not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fieldservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fieldservice client: invalid response")
)
