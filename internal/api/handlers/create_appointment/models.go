package create_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments/models"
	submitBooking "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model записи, созданной сотрудником
type CreateAppointmentRequest struct {
	Date         string            `json:"date"`      // "2025-06-02"
	StartTime    string            `json:"startTime"` // "10:00"
	ClientName   string            `json:"clientName"`
	ClientEmail  string            `json:"clientEmail"`
	ClientPhone  *string           `json:"clientPhone,omitempty"`
	ClientNote   *string           `json:"clientNote,omitempty"`
	FormData     map[string]string `json:"formData,omitempty"`
	InternalNote *string           `json:"internalNote,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(projectID uuid.UUID) (*submitBooking.StaffRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	return &submitBooking.StaffRequest{
		ProjectID:    projectID,
		Date:         date,
		StartTime:    startTime,
		ClientName:   r.ClientName,
		ClientEmail:  r.ClientEmail,
		ClientPhone:  r.ClientPhone,
		ClientNote:   r.ClientNote,
		FormData:     r.FormData,
		InternalNote: r.InternalNote,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в DTO записи для кабинета
func FromUseCaseResponse(resp *submitBooking.Response) *models.AppointmentResponse {
	formData := resp.FormData
	if formData == nil {
		formData = map[string]string{}
	}

	return &models.AppointmentResponse{
		ID:           resp.ID,
		ProjectID:    resp.ProjectID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
		ClientName:   resp.ClientName,
		ClientEmail:  resp.ClientEmail,
		ClientPhone:  resp.ClientPhone,
		ClientNote:   resp.ClientNote,
		InternalNote: resp.InternalNote,
		FormData:     formData,
		ConsentGiven: resp.ConsentGiven,
		CreatedAt:    resp.CreatedAt,
		UpdatedAt:    resp.UpdatedAt,
	}
}

func slotStrings(slots []types.TimeString) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.String())
	}
	return result
}
