package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FormFieldType тип поля формы записи
type FormFieldType string

const (
	FieldText     FormFieldType = "text"
	FieldEmail    FormFieldType = "email"
	FieldTel      FormFieldType = "tel"
	FieldTextarea FormFieldType = "textarea"
	FieldSelect   FormFieldType = "select"
)

// Идентификаторы системных полей (не удаляются пользователем)
const (
	FieldIDName  = "name"
	FieldIDEmail = "email"
	FieldIDPhone = "phone"
	FieldIDNote  = "note"
)

var fieldIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

// FormField поле формы записи
type FormField struct {
	ID          string        `json:"id"`
	Type        FormFieldType `json:"type"`
	Label       string        `json:"label"`
	Required    bool          `json:"required"`
	System      bool          `json:"system"`
	Order       int           `json:"order"`
	Placeholder *string       `json:"placeholder,omitempty"`
	Options     []string      `json:"options,omitempty"`
}

// IsSystemFieldID возвращает true для идентификаторов системных полей
func IsSystemFieldID(id string) bool {
	switch id {
	case FieldIDName, FieldIDEmail, FieldIDPhone, FieldIDNote:
		return true
	default:
		return false
	}
}

// DefaultFormFields системные поля формы по умолчанию
func DefaultFormFields() []FormField {
	return []FormField{
		{ID: FieldIDName, Type: FieldText, Label: "Имя", Required: true, System: true, Order: 0},
		{ID: FieldIDEmail, Type: FieldEmail, Label: "Email", Required: true, System: true, Order: 1},
		{ID: FieldIDPhone, Type: FieldTel, Label: "Телефон", Required: false, System: true, Order: 2},
		{ID: FieldIDNote, Type: FieldTextarea, Label: "Комментарий", Required: false, System: true, Order: 3},
	}
}

// ParseFormFieldType разбирает строковый тип поля
func ParseFormFieldType(s string) (FormFieldType, error) {
	switch t := FormFieldType(s); t {
	case FieldText, FieldEmail, FieldTel, FieldTextarea, FieldSelect:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidFormField, s)
	}
}

// Validate проверяет поле формы
func (f *FormField) Validate() error {
	if !fieldIDPattern.MatchString(f.ID) {
		return fmt.Errorf("%w: id %q must match %s", ErrInvalidFormField, f.ID, fieldIDPattern)
	}
	if _, err := ParseFormFieldType(string(f.Type)); err != nil {
		return err
	}

	label := strings.TrimSpace(f.Label)
	if label == "" || len(label) > MaxFieldLabelLength {
		return fmt.Errorf("%w: label must be 1..%d characters", ErrInvalidFormField, MaxFieldLabelLength)
	}

	if f.Type == FieldSelect {
		if len(f.Options) == 0 {
			return fmt.Errorf("%w: select field %q requires options", ErrInvalidFormField, f.ID)
		}
		for _, opt := range f.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("%w: select field %q has an empty option", ErrInvalidFormField, f.ID)
			}
		}
	} else if len(f.Options) > 0 {
		return fmt.Errorf("%w: only select fields can have options", ErrInvalidFormField)
	}

	return nil
}

// HasOption проверяет, что значение есть среди вариантов select-поля
func (f *FormField) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// SortFormFields сортирует поля по Order (стабильно)
func SortFormFields(fields []FormField) {
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })
}

// RenumberFormFields перенумеровывает Order плотно с 0 в текущем порядке слайса
func RenumberFormFields(fields []FormField) {
	for i := range fields {
		fields[i].Order = i
	}
}

// ReorderFormFields возвращает поля в порядке ids с плотной нумерацией с 0
// ids должен быть перестановкой идентификаторов всех полей
func ReorderFormFields(fields []FormField, ids []string) ([]FormField, error) {
	if len(ids) != len(fields) {
		return nil, fmt.Errorf("%w: expected %d field ids, got %d", ErrInvalidFormField, len(fields), len(ids))
	}

	byID := make(map[string]FormField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	result := make([]FormField, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field id %q", ErrInvalidFormField, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate field id %q", ErrInvalidFormField, id)
		}
		seen[id] = struct{}{}
		result = append(result, f)
	}

	RenumberFormFields(result)
	return result, nil
}
