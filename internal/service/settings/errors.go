package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrFormFieldNotFound возвращается, когда поле формы не найдено
	ErrFormFieldNotFound = errors.New("settings: form field not found")

	// ErrFormFieldExists возвращается при создании поля с уже существующим идентификатором
	ErrFormFieldExists = errors.New("settings: form field already exists")

	// ErrSystemFieldLocked возвращается при попытке удалить системное поле или изменить его тип
	ErrSystemFieldLocked = errors.New("settings: system form field cannot be removed or retyped")

	// ErrBlockedDateNotFound возвращается, когда исключение из расписания не найдено
	ErrBlockedDateNotFound = errors.New("settings: blocked date not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)
