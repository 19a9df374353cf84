package update_settings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/service/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
)

type stubService struct {
	lastReq *models.UpdateSettingsRequest
	err     error
}

func (s *stubService) UpdateSettings(_ context.Context, projectID uuid.UUID, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	resp := &models.SettingsResponse{ProjectID: projectID, SlotDurationMinutes: 30}
	if req.BufferMinutes != nil {
		resp.BufferMinutes = *req.BufferMinutes
	}
	return resp, nil
}

func TestHandle(t *testing.T) {
	projectID := uuid.New()
	path := fmt.Sprintf("/api/v1/projects/%s/settings", projectID)

	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantCalled bool
	}{
		{name: "ok", path: path, body: `{"bufferMinutes":15}`, wantStatus: http.StatusOK, wantCalled: true},
		{name: "validation error", path: path, body: `{"slotDurationMinutes":7}`, err: fmt.Errorf("%w: slot duration must be one of 15, 30, 45, 60, 90, 120", settings.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantCalled: true},
		{name: "repository error", path: path, body: `{"bufferMinutes":15}`, err: fmt.Errorf("%w: connection reset", settings.ErrInternal), wantStatus: http.StatusInternalServerError, wantCalled: true},
		{name: "unknown field", path: path, body: `{"buffer":15}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", path: path, body: `{"bufferMinutes":`, wantStatus: http.StatusBadRequest},
		{name: "bad project id", path: "/api/v1/projects/42/settings", body: `{"bufferMinutes":15}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			router := mux.NewRouter()
			router.HandleFunc("/api/v1/projects/{projectId}/settings",
				NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPut)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, svc.lastReq != nil)

			switch tt.wantStatus {
			case http.StatusOK:
				assert.Contains(t, rec.Body.String(), `"bufferMinutes":15`)
			case http.StatusBadRequest:
				if tt.wantCalled {
					assert.Contains(t, rec.Body.String(), "invalid_settings")
				}
			}
		})
	}
}
