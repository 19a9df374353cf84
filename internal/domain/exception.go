package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// ExceptionKind тип исключения из недельного расписания
type ExceptionKind string

const (
	ExceptionFullDay   ExceptionKind = "full_day"
	ExceptionVacation  ExceptionKind = "vacation"
	ExceptionTimeRange ExceptionKind = "time_range"
)

// ParseExceptionKind разбирает строковое значение типа исключения
func ParseExceptionKind(s string) (ExceptionKind, error) {
	switch kind := ExceptionKind(s); kind {
	case ExceptionFullDay, ExceptionVacation, ExceptionTimeRange:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidException, s)
	}
}

// BlocksWholeDay возвращает true для исключений, закрывающих дату целиком
func (k ExceptionKind) BlocksWholeDay() bool {
	switch k {
	case ExceptionFullDay, ExceptionVacation:
		return true
	case ExceptionTimeRange:
		return false
	default:
		return false
	}
}

// DateException разовое исключение из расписания на конкретную дату ("заблокированная дата")
// Не редактируется: только создание и удаление
type DateException struct {
	ID         int64
	ProjectID  uuid.UUID
	Date       time.Time
	Kind       ExceptionKind
	RangeStart types.TimeString // только для time_range
	RangeEnd   types.TimeString // только для time_range
	Reason     *string
	CreatedAt  time.Time
}

// Range возвращает заблокированный интервал для time_range
func (e *DateException) Range() TimeRange {
	return TimeRange{Start: e.RangeStart, End: e.RangeEnd}
}

// Validate проверяет инварианты исключения
func (e *DateException) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidException)
	}

	switch e.Kind {
	case ExceptionFullDay, ExceptionVacation:
		if !e.RangeStart.IsZero() || !e.RangeEnd.IsZero() {
			return fmt.Errorf("%w: %s must not have a time range", ErrInvalidException, e.Kind)
		}
	case ExceptionTimeRange:
		if !e.Range().IsValid() {
			return fmt.Errorf("%w: time_range requires rangeStart < rangeEnd", ErrInvalidException)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidException, e.Kind)
	}

	if e.Reason != nil && len(*e.Reason) > MaxReasonLength {
		return fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidException, MaxReasonLength)
	}

	return nil
}
