package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments/models"
	submitBooking "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

type stubUseCase struct {
	lastReq *submitBooking.StaffRequest
	err     error
}

func (s *stubUseCase) CreateByStaff(_ context.Context, req *submitBooking.StaffRequest) (*submitBooking.Response, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	end, _ := req.StartTime.AddMinutes(30)
	return &submitBooking.Response{
		ID:           uuid.New(),
		ProjectID:    req.ProjectID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      end,
		Status:       "confirmed",
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		InternalNote: req.InternalNote,
	}, nil
}

const body = `{"date":"2025-06-02","startTime":"10:00","clientName":"Анна","clientEmail":"anna@example.com","internalNote":"по телефону"}`

func serve(uc CreateAppointmentUseCase, path, payload string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/projects/{projectId}/appointments", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	projectID := uuid.New()
	uc := &stubUseCase{}

	rec := serve(uc, fmt.Sprintf("/projects/%s/appointments", projectID), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "10:30", resp.EndTime)
	require.NotNil(t, resp.InternalNote)
	assert.Equal(t, "по телефону", *resp.InternalNote)
	assert.Equal(t, map[string]string{}, resp.FormData)
	assert.Equal(t, projectID, uc.lastReq.ProjectID)
}

func TestHandle_Errors(t *testing.T) {
	path := fmt.Sprintf("/projects/%s/appointments", uuid.New())

	tests := []struct {
		name       string
		payload    string
		err        error
		wantStatus int
	}{
		{name: "slot taken", payload: body, err: &submitBooking.SlotUnavailableError{Slots: []types.TimeString{types.MustTimeString("11:00")}}, wantStatus: http.StatusConflict},
		{name: "missing field", payload: body, err: &submitBooking.MissingFieldError{Field: "email"}, wantStatus: http.StatusBadRequest},
		{name: "invalid input", payload: body, err: submitBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", payload: body, err: submitBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
		{name: "bad time", payload: `{"date":"2025-06-02","startTime":"10:0"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, path, tt.payload)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
