package appointment

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation      pq.ErrorCode = "23505"
	pqSerializationFailure pq.ErrorCode = "40001"
)

// classify сопоставляет ошибки PostgreSQL конфликта слота с ошибками репозитория
// Возвращает nil, если ошибка не связана с конфликтом
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return ErrDuplicate
	case pqSerializationFailure:
		return ErrSerialization
	default:
		return nil
	}
}

// IsConflict возвращает true, если ошибка означает конфликт за слот:
// нарушение уникального индекса активных записей или сбой сериализации транзакции.
// Ошибки COMMIT оборачиваются менеджером транзакций, поэтому проверяется вся цепочка
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrSerialization) {
		return true
	}
	return classify(err) != nil
}
