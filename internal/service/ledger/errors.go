package ledger

import "errors"

var (
	// ErrInvariantViolated возвращается, когда восстановленный леджер
	// нарушает инвариант вместимости или ссылается на несуществующий ключ
	ErrInvariantViolated = errors.New("ledger.service: capacity invariant violated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ledger.service: internal error")
)
