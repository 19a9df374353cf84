package submit_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// clientData данные клиента из формы записи
type clientData struct {
	Name     string
	Email    string
	Phone    *string
	Note     *string
	FormData map[string]string
}

// validateSlotInput проверяет идентификатор проекта, дату и время слота
func validateSlotInput(projectID uuid.UUID, date time.Time, startTime types.TimeString) error {
	if projectID == uuid.Nil {
		return fmt.Errorf("%w: projectId is required", ErrInvalidInput)
	}

	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if startTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := startTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateClientData проверяет обязательные поля формы и нормализует значения
// Возвращает значения пользовательских полей, известных форме проекта
func validateClientData(settings *domain.BookingSettings, data *clientData) (map[string]string, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.TrimSpace(data.Email)
	data.Phone = trimOptional(data.Phone)
	data.Note = trimOptional(data.Note)

	// Имя и email обязательны всегда, даже если форма проекта повреждена
	if data.Name == "" {
		return nil, &MissingFieldError{Field: domain.FieldIDName}
	}
	if data.Email == "" {
		return nil, &MissingFieldError{Field: domain.FieldIDEmail}
	}

	formData := make(map[string]string)
	for _, field := range settings.FormFields {
		value := fieldValue(field, data)
		if field.Required && value == "" {
			return nil, &MissingFieldError{Field: field.ID}
		}
		if value == "" || field.System {
			continue
		}

		if utf8.RuneCountInString(value) > domain.MaxFieldValueLength {
			return nil, fmt.Errorf("%w: field %q is longer than %d characters", ErrInvalidInput, field.ID, domain.MaxFieldValueLength)
		}
		if field.Type == domain.FieldSelect && !field.HasOption(value) {
			return nil, fmt.Errorf("%w: %q is not an option of field %q", ErrInvalidInput, value, field.ID)
		}
		formData[field.ID] = value
	}

	if utf8.RuneCountInString(data.Name) > domain.MaxClientNameLength {
		return nil, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxClientNameLength)
	}
	if _, err := mail.ParseAddress(data.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
	}
	if data.Phone != nil && utf8.RuneCountInString(*data.Phone) > domain.MaxFieldValueLength {
		return nil, fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxFieldValueLength)
	}
	if data.Note != nil && utf8.RuneCountInString(*data.Note) > domain.MaxNoteLength {
		return nil, fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return formData, nil
}

// fieldValue значение поля формы: системные поля берутся из типизированных полей заявки
func fieldValue(field domain.FormField, data *clientData) string {
	switch field.ID {
	case domain.FieldIDName:
		return data.Name
	case domain.FieldIDEmail:
		return data.Email
	case domain.FieldIDPhone:
		if data.Phone == nil {
			return ""
		}
		return *data.Phone
	case domain.FieldIDNote:
		if data.Note == nil {
			return ""
		}
		return *data.Note
	default:
		return strings.TrimSpace(data.FormData[field.ID])
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
