package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Request модели

// ListAppointmentsRequest запрос списка записей проекта
type ListAppointmentsRequest struct {
	ProjectID uuid.UUID
	From      *time.Time // Начало периода (включительно)
	To        *time.Time // Конец периода (включительно)
	Status    *string    // pending | confirmed | cancelled
	Search    string     // Поиск по имени, email и телефону
	Limit     int
	Offset    int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		ProjectID: r.ProjectID,
		From:      r.From,
		To:        r.To,
		Search:    r.Search,
		Limit:     r.Limit,
		Offset:    r.Offset,
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return filter, fmt.Errorf("from must not be after to")
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultListLimit
	case filter.Limit > MaxListLimit:
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return filter, nil
}

// ChangeStatusRequest действие над статусом записи
type ChangeStatusRequest struct {
	Action string `json:"action"` // confirm | cancel | reactivate
}

// UpdateNoteRequest изменение внутренней заметки (пустая строка или null очищает)
type UpdateNoteRequest struct {
	InternalNote *string `json:"internalNote"`
}

// Response модели

// AppointmentResponse запись клиента
type AppointmentResponse struct {
	ID           uuid.UUID         `json:"id"`
	ProjectID    uuid.UUID         `json:"projectId"`
	Date         string            `json:"date"`      // "2025-06-02"
	StartTime    string            `json:"startTime"` // "10:00"
	EndTime      string            `json:"endTime"`   // "10:30"
	Status       string            `json:"status"`
	ClientName   string            `json:"clientName"`
	ClientEmail  string            `json:"clientEmail"`
	ClientPhone  *string           `json:"clientPhone"`
	ClientNote   *string           `json:"clientNote"`
	InternalNote *string           `json:"internalNote"`
	FormData     map[string]string `json:"formData"`
	ConsentGiven bool              `json:"consentGiven"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	formData := a.FormData
	if formData == nil {
		formData = map[string]string{}
	}

	return &AppointmentResponse{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.String(),
		EndTime:      a.EndTime.String(),
		Status:       string(a.Status),
		ClientName:   a.ClientName,
		ClientEmail:  a.ClientEmail,
		ClientPhone:  a.ClientPhone,
		ClientNote:   a.ClientNote,
		InternalNote: a.InternalNote,
		FormData:     formData,
		ConsentGiven: a.ConsentGiven,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		if dto := FromDomainAppointment(a); dto != nil {
			result = append(result, *dto)
		}
	}

	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}
