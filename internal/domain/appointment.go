package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus разбирает строковый статус записи
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch status := AppointmentStatus(s); status {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// StatusAction действие сотрудника над статусом записи
type StatusAction string

const (
	ActionConfirm    StatusAction = "confirm"
	ActionCancel     StatusAction = "cancel"
	ActionReactivate StatusAction = "reactivate"
)

// ParseStatusAction разбирает строковое действие
func ParseStatusAction(s string) (StatusAction, error) {
	switch action := StatusAction(s); action {
	case ActionConfirm, ActionCancel, ActionReactivate:
		return action, nil
	default:
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, s)
	}
}

// Target возвращает статус, в который переводит действие
func (a StatusAction) Target() AppointmentStatus {
	switch a {
	case ActionConfirm:
		return StatusConfirmed
	case ActionCancel:
		return StatusCancelled
	default:
		return StatusPending
	}
}

// allowedSources допустимые исходные статусы для каждого действия
var allowedSources = map[StatusAction][]AppointmentStatus{
	ActionConfirm:    {StatusPending},
	ActionCancel:     {StatusPending, StatusConfirmed},
	ActionReactivate: {StatusCancelled},
}

// Appointment запись клиента на время
type Appointment struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString // StartTime + длительность слота на момент записи
	Status    AppointmentStatus

	ClientName   string
	ClientEmail  string
	ClientPhone  *string
	ClientNote   *string
	InternalNote *string
	FormData     map[string]string
	ConsentGiven bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Interval возвращает занимаемый интервал [StartTime, EndTime)
func (a *Appointment) Interval() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}

// Transition вычисляет новый статус для действия
// changed == false означает повторное применение того же перехода (no-op)
func (a *Appointment) Transition(action StatusAction) (next AppointmentStatus, changed bool, err error) {
	target := action.Target()
	if a.Status == target {
		return target, false, nil
	}

	for _, source := range allowedSources[action] {
		if a.Status == source {
			return target, true, nil
		}
	}

	return a.Status, false, fmt.Errorf("%w: cannot %s appointment in status %s", ErrInvalidTransition, action, a.Status)
}

// AppointmentsFilter фильтр списка записей для сотрудников
type AppointmentsFilter struct {
	ProjectID uuid.UUID          // Обязательный параметр
	From      *time.Time         // Начало периода (включительно)
	To        *time.Time         // Конец периода (включительно)
	Status    *AppointmentStatus // Фильтр по статусу
	Search    string             // Поиск по имени, email и телефону клиента
	Limit     int
	Offset    int
}
