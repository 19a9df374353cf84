package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена в проекте
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrSlotUnavailable возвращается, когда слот отмененной записи уже занят другой активной записью
	ErrSlotUnavailable = errors.New("appointments: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
