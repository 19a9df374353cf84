package submit_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

var (
	// ErrSystemDisabled возвращается, когда онлайн-запись для проекта выключена
	ErrSystemDisabled = errors.New("submit_booking: online booking is disabled")

	// ErrSlotUnavailable возвращается, когда выбранный слот больше недоступен
	ErrSlotUnavailable = errors.New("submit_booking: slot is not available")

	// ErrMissingField возвращается, когда обязательное поле формы не заполнено
	ErrMissingField = errors.New("submit_booking: required field is missing")

	// ErrConsentRequired возвращается, когда не дано обязательное согласие
	ErrConsentRequired = errors.New("submit_booking: consent is required")

	// ErrRejectedAsSpam причина отказа для отправок, похожих на спам
	// Наружу отдается как ErrSlotUnavailable
	ErrRejectedAsSpam = errors.New("submit_booking: rejected as spam")

	// ErrStorageConflict причина отказа при конфликте в хранилище (уникальный индекс, сериализация)
	// Наружу отдается как ErrSlotUnavailable
	ErrStorageConflict = errors.New("submit_booking: storage conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)

// SlotUnavailableError отказ в записи на слот вместе с актуальным списком свободных слотов
// errors.Is срабатывает и для ErrSlotUnavailable, и для внутренней причины
type SlotUnavailableError struct {
	Slots  []types.TimeString
	Reason error
}

func (e *SlotUnavailableError) Error() string {
	if e.Reason == nil {
		return ErrSlotUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrSlotUnavailable, e.Reason)
}

func (e *SlotUnavailableError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrSlotUnavailable}
	}
	return []error{ErrSlotUnavailable, e.Reason}
}

// MissingFieldError незаполненное обязательное поле
type MissingFieldError struct {
	Field string // идентификатор поля формы (name, email, phone, note или пользовательский)
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}
