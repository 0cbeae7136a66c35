package get_slot_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_availability: invalid input data")

	// ErrUnknownService возвращается при неизвестном типе услуги
	ErrUnknownService = errors.New("get_slot_availability: unknown service type")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_availability: internal error")
)
