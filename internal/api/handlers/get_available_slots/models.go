package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SiteBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model для виджета записи
type AvailableSlotsResponse struct {
	Date            string             `json:"date"`  // "2025-06-02"
	Slots           []string           `json:"slots"` // ["09:00", "09:30"]
	Duration        int                `json:"duration"`
	FormFields      []domain.FormField `json:"formFields"`
	ConsentRequired bool               `json:"consentRequired"`
	ConsentText     *string            `json:"consentText"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(projectID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProjectID: projectID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	formFields := resp.FormFields
	if formFields == nil {
		formFields = []domain.FormField{}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		Slots:           slots,
		Duration:        resp.DurationMinutes,
		FormFields:      formFields,
		ConsentRequired: resp.ConsentRequired,
		ConsentText:     resp.ConsentText,
	}
}
