package get_cabin_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_cabin_availability: invalid input data")

	// ErrUnknownService возвращается при неизвестном типе услуги
	ErrUnknownService = errors.New("get_cabin_availability: unknown service type")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_cabin_availability: internal error")
)
