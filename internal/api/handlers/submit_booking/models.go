package submit_booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	submitBooking "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

var (
	errInvalidDate         = errors.New("invalid date")
	errInvalidTime         = errors.New("invalid start time")
	errInvalidFormLoadedAt = errors.New("invalid formLoadedAt")
)

// SubmitBookingRequest HTTP request model публичной формы записи
type SubmitBookingRequest struct {
	Date         string            `json:"date"`      // "2025-06-02"
	StartTime    string            `json:"startTime"` // "10:00"
	ClientName   string            `json:"clientName"`
	ClientEmail  string            `json:"clientEmail"`
	ClientPhone  *string           `json:"clientPhone,omitempty"`
	ClientNote   *string           `json:"clientNote,omitempty"`
	FormData     map[string]string `json:"formData,omitempty"`
	ConsentGiven bool              `json:"consentGiven"`
	Honeypot     string            `json:"honeypot,omitempty"` // скрытое поле формы
	FormLoadedAt *FormLoadedAt     `json:"formLoadedAt,omitempty"`
}

// FormLoadedAt момент загрузки формы: RFC3339 строка или unix-время в миллисекундах
type FormLoadedAt struct {
	time.Time
}

func (f *FormLoadedAt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			f.Time = time.UnixMilli(ms).UTC()
			return nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("%w: %v", errInvalidFormLoadedAt, err)
		}
		f.Time = t
		return nil
	}

	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidFormLoadedAt, err)
	}
	f.Time = time.UnixMilli(ms).UTC()
	return nil
}

// AppointmentResponse HTTP response model созданной заявки
type AppointmentResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// SlotUnavailableResponse тело ответа 409 с актуальными слотами
type SlotUnavailableResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Slots   []string `json:"slots"`
}

// MissingFieldResponse тело ответа 400 с незаполненным полем
type MissingFieldResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest(projectID uuid.UUID, clientIP string) (*submitBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	var formLoadedAt *time.Time
	if r.FormLoadedAt != nil && !r.FormLoadedAt.IsZero() {
		t := r.FormLoadedAt.Time
		formLoadedAt = &t
	}

	return &submitBooking.Request{
		ProjectID:    projectID,
		Date:         date,
		StartTime:    startTime,
		ClientName:   r.ClientName,
		ClientEmail:  r.ClientEmail,
		ClientPhone:  r.ClientPhone,
		ClientNote:   r.ClientNote,
		FormData:     r.FormData,
		ConsentGiven: r.ConsentGiven,
		Honeypot:     r.Honeypot,
		FormLoadedAt: formLoadedAt,
		ClientIP:     clientIP,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Клиенту не отдаются контактные данные и заметки
func FromUseCaseResponse(resp *submitBooking.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID.String(),
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Status:    resp.Status,
	}
}

func slotStrings(slots []types.TimeString) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.String())
	}
	return result
}

// clientIP адрес клиента: первый адрес X-Forwarded-For, иначе RemoteAddr
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
