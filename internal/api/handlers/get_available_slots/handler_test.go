package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SiteBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

type stubUseCase struct {
	lastReq *getAvailableSlots.Request
	resp    *getAvailableSlots.Response
	err     error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.lastReq = req
	return s.resp, s.err
}

var projectID = uuid.MustParse("9c3e1f7a-2b4d-4e8f-a1c2-5d6e7f8a9b0c")

func serve(uc GetAvailableSlotsUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/projects/{projectId}/available-slots", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	consent := "Я согласен на обработку персональных данных"
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Slots:           []types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("09:30")},
		DurationMinutes: 30,
		FormFields:      domain.DefaultFormFields(),
		ConsentRequired: true,
		ConsentText:     &consent,
	}}

	rec := serve(uc, fmt.Sprintf("/api/v1/projects/%s/available-slots?date=2025-06-02", projectID))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []interface{}{"09:00", "09:30"}, body["slots"])
	assert.Equal(t, float64(30), body["duration"])
	assert.Equal(t, true, body["consentRequired"])
	assert.Equal(t, consent, body["consentText"])
	assert.Len(t, body["formFields"], len(domain.DefaultFormFields()))

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, projectID, uc.lastReq.ProjectID)
	assert.True(t, domain.SameDate(uc.lastReq.Date, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestHandle_EmptySlotsAreArray(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:            time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
	}}

	rec := serve(uc, fmt.Sprintf("/api/v1/projects/%s/available-slots?date=2025-06-07", projectID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
	assert.Contains(t, rec.Body.String(), `"formFields":[]`)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "bad project id", target: "/api/v1/projects/42/available-slots?date=2025-06-02"},
		{name: "missing date", target: fmt.Sprintf("/api/v1/projects/%s/available-slots", projectID)},
		{name: "bad date", target: fmt.Sprintf("/api/v1/projects/%s/available-slots?date=2025-13-40", projectID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			rec := serve(uc, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.lastReq)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	uc := &stubUseCase{err: fmt.Errorf("%w: db down", getAvailableSlots.ErrInternal)}

	rec := serve(uc, fmt.Sprintf("/api/v1/projects/%s/available-slots?date=2025-06-02", projectID))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	uc = &stubUseCase{err: fmt.Errorf("%w: date is required", getAvailableSlots.ErrInvalidInput)}
	rec = serve(uc, fmt.Sprintf("/api/v1/projects/%s/available-slots?date=2025-06-02", projectID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
