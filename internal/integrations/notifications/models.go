package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
)

// EventType тип события для сервиса уведомлений
type EventType string

const (
	EventNewAppointment EventType = "new_appointment"
	EventConfirmed      EventType = "confirmed"
	EventCancelled      EventType = "cancelled"
)

// Event событие по записи, отправляемое во внешний сервис уведомлений
// Рендеринг шаблонов и доставка выполняются на стороне сервиса уведомлений
type Event struct {
	Type          EventType `json:"type"`
	ProjectID     uuid.UUID `json:"project_id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	ClientName    string    `json:"client_name"`
	ClientEmail   string    `json:"client_email"`
	ClientPhone   *string   `json:"client_phone,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent собирает событие из записи
func NewEvent(eventType EventType, appt *domain.Appointment, occurredAt time.Time) Event {
	return Event{
		Type:          eventType,
		ProjectID:     appt.ProjectID,
		AppointmentID: appt.ID,
		Date:          appt.Date.Format(domain.DateFormat),
		StartTime:     appt.StartTime.String(),
		EndTime:       appt.EndTime.String(),
		Status:        string(appt.Status),
		ClientName:    appt.ClientName,
		ClientEmail:   appt.ClientEmail,
		ClientPhone:   appt.ClientPhone,
		OccurredAt:    occurredAt.UTC(),
	}
}
