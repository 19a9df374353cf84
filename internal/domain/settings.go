package domain

import (
	"fmt"
	"time"
	_ "time/tzdata" // часовые пояса проектов не зависят от tzdata в образе

	"github.com/google/uuid"
)

// BookingSettings настройки онлайн-записи проекта (одна запись на проект)
// Изменение SlotDurationMinutes не пересчитывает уже созданные записи
type BookingSettings struct {
	ProjectID           uuid.UUID
	IsEnabled           bool
	SlotDurationMinutes int
	BufferMinutes       int
	MaxAdvanceDays      int
	Timezone            string
	WeeklySchedule      WeeklySchedule
	ConsentRequired     bool
	ConsentText         *string
	FormFields          []FormField // Хранятся отдельно, отсортированы по Order

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBookingSettings возвращает настройки по умолчанию (онлайн-запись выключена)
func DefaultBookingSettings(projectID uuid.UUID) *BookingSettings {
	return &BookingSettings{
		ProjectID:           projectID,
		IsEnabled:           false,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		BufferMinutes:       DefaultBufferMinutes,
		MaxAdvanceDays:      DefaultMaxAdvanceDays,
		Timezone:            DefaultTimezone,
		WeeklySchedule:      DefaultWeeklySchedule(),
		FormFields:          DefaultFormFields(),
	}
}

// Location возвращает часовой пояс проекта
func (s *BookingSettings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidSettings, s.Timezone)
	}
	return loc, nil
}

// FormField ищет поле формы по идентификатору
func (s *BookingSettings) FormField(id string) (FormField, bool) {
	for _, f := range s.FormFields {
		if f.ID == id {
			return f, true
		}
	}
	return FormField{}, false
}

// Validate проверяет настройки (без полей формы, они валидируются отдельно)
func (s *BookingSettings) Validate() error {
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidSettings, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}

	if s.BufferMinutes < MinBufferMinutes || s.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidSettings, MinBufferMinutes, MaxBufferMinutes)
	}

	if s.MaxAdvanceDays < MinAdvanceDays || s.MaxAdvanceDays > MaxAdvanceDays {
		return fmt.Errorf("%w: maxAdvanceDays must be between %d and %d",
			ErrInvalidSettings, MinAdvanceDays, MaxAdvanceDays)
	}

	if _, err := s.Location(); err != nil {
		return err
	}

	if s.ConsentText != nil && len(*s.ConsentText) > MaxConsentTextLength {
		return fmt.Errorf("%w: consentText is longer than %d characters", ErrInvalidSettings, MaxConsentTextLength)
	}

	if err := s.WeeklySchedule.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	return nil
}
