package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствующих или некорректных полях запроса
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidCabin возвращается при номере кабинки вне настроенного диапазона
	ErrInvalidCabin = errors.New("create_booking: cabin out of range")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом расписания
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда у слота не осталось свободных единиц.
	// Ожидаемая, восстановимая ситуация: клиенту следует перечитать доступность
	// и выбрать другой слот.
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrStorage возвращается при сбое записи в хранилище; транзакция
	// откатывается целиком, бронирование не применяется частично
	ErrStorage = errors.New("create_booking: storage failure")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
