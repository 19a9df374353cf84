package domain

import "errors"

var (
	// ErrInvalidSchedule возвращается при нарушении инвариантов недельного расписания
	ErrInvalidSchedule = errors.New("domain: invalid weekly schedule")

	// ErrInvalidException возвращается при некорректном исключении из расписания
	ErrInvalidException = errors.New("domain: invalid date exception")

	// ErrInvalidFormField возвращается при некорректном поле формы
	ErrInvalidFormField = errors.New("domain: invalid form field")

	// ErrInvalidSettings возвращается при некорректных настройках бронирования
	ErrInvalidSettings = errors.New("domain: invalid booking settings")

	// ErrInvalidStatus возвращается при неизвестном статусе записи
	ErrInvalidStatus = errors.New("domain: invalid appointment status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса записи
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
