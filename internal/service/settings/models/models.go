package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// Request модели

// UpdateSettingsRequest частичное обновление настроек
// Обновляются только переданные поля, недельное расписание заменяется целиком
type UpdateSettingsRequest struct {
	IsEnabled           *bool                  `json:"isEnabled,omitempty"`
	SlotDurationMinutes *int                   `json:"slotDurationMinutes,omitempty"`
	BufferMinutes       *int                   `json:"bufferMinutes,omitempty"`
	MaxAdvanceDays      *int                   `json:"maxAdvanceDays,omitempty"`
	Timezone            *string                `json:"timezone,omitempty"`
	WeeklySchedule      *domain.WeeklySchedule `json:"weeklySchedule,omitempty"`
	ConsentRequired     *bool                  `json:"consentRequired,omitempty"`
	ConsentText         *string                `json:"consentText,omitempty"` // Пустая строка очищает текст
}

// ApplyToSettings применяет обновления к существующим настройкам
func (r *UpdateSettingsRequest) ApplyToSettings(s *domain.BookingSettings) {
	if r.IsEnabled != nil {
		s.IsEnabled = *r.IsEnabled
	}
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.BufferMinutes != nil {
		s.BufferMinutes = *r.BufferMinutes
	}
	if r.MaxAdvanceDays != nil {
		s.MaxAdvanceDays = *r.MaxAdvanceDays
	}
	if r.Timezone != nil {
		s.Timezone = strings.TrimSpace(*r.Timezone)
	}
	if r.WeeklySchedule != nil {
		s.WeeklySchedule = *r.WeeklySchedule
	}
	if r.ConsentRequired != nil {
		s.ConsentRequired = *r.ConsentRequired
	}
	if r.ConsentText != nil {
		if text := strings.TrimSpace(*r.ConsentText); text != "" {
			s.ConsentText = &text
		} else {
			s.ConsentText = nil
		}
	}
}

// FormFieldRequest создание или изменение поля формы
// ID учитывается только при создании
type FormFieldRequest struct {
	ID          string               `json:"id"`
	Type        domain.FormFieldType `json:"type"`
	Label       string               `json:"label"`
	Required    bool                 `json:"required"`
	Placeholder *string              `json:"placeholder,omitempty"`
	Options     []string             `json:"options,omitempty"`
}

// ReorderFormFieldsRequest новый порядок полей формы
type ReorderFormFieldsRequest struct {
	FieldIDs []string `json:"fieldIds"`
}

// CreateBlockedDateRequest создание исключения из расписания
type CreateBlockedDateRequest struct {
	Date       string           `json:"date"` // YYYY-MM-DD
	Kind       string           `json:"kind"` // full_day | vacation | time_range
	RangeStart types.TimeString `json:"rangeStart"`
	RangeEnd   types.TimeString `json:"rangeEnd"`
	Reason     *string          `json:"reason,omitempty"`
}

// Response модели

// SettingsResponse настройки онлайн-записи проекта
type SettingsResponse struct {
	ProjectID           uuid.UUID             `json:"projectId"`
	IsEnabled           bool                  `json:"isEnabled"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	BufferMinutes       int                   `json:"bufferMinutes"`
	MaxAdvanceDays      int                   `json:"maxAdvanceDays"`
	Timezone            string                `json:"timezone"`
	WeeklySchedule      domain.WeeklySchedule `json:"weeklySchedule"`
	ConsentRequired     bool                  `json:"consentRequired"`
	ConsentText         *string               `json:"consentText"`
	FormFields          []domain.FormField    `json:"formFields"`
	UpdatedAt           *time.Time            `json:"updatedAt,omitempty"` // nil, если используются значения по умолчанию
}

// BlockedDateResponse исключение из расписания
type BlockedDateResponse struct {
	ID         int64            `json:"id"`
	Date       string           `json:"date"`
	Kind       string           `json:"kind"`
	RangeStart types.TimeString `json:"rangeStart"`
	RangeEnd   types.TimeString `json:"rangeEnd"`
	Reason     *string          `json:"reason"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Методы конвертации

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		ProjectID:           s.ProjectID,
		IsEnabled:           s.IsEnabled,
		SlotDurationMinutes: s.SlotDurationMinutes,
		BufferMinutes:       s.BufferMinutes,
		MaxAdvanceDays:      s.MaxAdvanceDays,
		Timezone:            s.Timezone,
		WeeklySchedule:      s.WeeklySchedule,
		ConsentRequired:     s.ConsentRequired,
		ConsentText:         s.ConsentText,
		FormFields:          s.FormFields,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	if resp.FormFields == nil {
		resp.FormFields = []domain.FormField{}
	}

	return resp
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(e *domain.DateException) BlockedDateResponse {
	return BlockedDateResponse{
		ID:         e.ID,
		Date:       e.Date.Format(domain.DateFormat),
		Kind:       string(e.Kind),
		RangeStart: e.RangeStart,
		RangeEnd:   e.RangeEnd,
		Reason:     e.Reason,
		CreatedAt:  e.CreatedAt,
	}
}

// FromDomainBlockedDates конвертирует список domain моделей в DTO
func FromDomainBlockedDates(exceptions []*domain.DateException) []BlockedDateResponse {
	result := make([]BlockedDateResponse, 0, len(exceptions))
	for _, e := range exceptions {
		result = append(result, FromDomainBlockedDate(e))
	}
	return result
}
