package submit_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// Request модель публичной заявки на запись
type Request struct {
	ProjectID    uuid.UUID         // ID проекта
	Date         time.Time         // Дата записи (без времени)
	StartTime    types.TimeString  // Время начала слота
	ClientName   string            // Имя клиента
	ClientEmail  string            // Email клиента
	ClientPhone  *string           // Телефон (опционально)
	ClientNote   *string           // Комментарий клиента (опционально)
	FormData     map[string]string // Значения пользовательских полей формы
	ConsentGiven bool              // Согласие на обработку данных
	Honeypot     string            // Скрытое поле, люди его не заполняют
	FormLoadedAt *time.Time        // Момент загрузки формы на клиенте
	ClientIP     string            // Адрес клиента для ограничения частоты
}

// StaffRequest модель записи, созданной сотрудником
type StaffRequest struct {
	ProjectID    uuid.UUID
	Date         time.Time
	StartTime    types.TimeString
	ClientName   string
	ClientEmail  string
	ClientPhone  *string
	ClientNote   *string
	FormData     map[string]string
	InternalNote *string
}

// Response модель созданной записи
type Response struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	ClientName   string
	ClientEmail  string
	ClientPhone  *string
	ClientNote   *string
	InternalNote *string
	FormData     map[string]string
	ConsentGiven bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:           a.ID,
		ProjectID:    a.ProjectID,
		Date:         a.Date,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Status:       string(a.Status),
		ClientName:   a.ClientName,
		ClientEmail:  a.ClientEmail,
		ClientPhone:  a.ClientPhone,
		ClientNote:   a.ClientNote,
		InternalNote: a.InternalNote,
		FormData:     a.FormData,
		ConsentGiven: a.ConsentGiven,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
