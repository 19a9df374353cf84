package blocked_dates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SiteBooking/internal/service/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SiteBooking/pkg/logger"
)

type stubService struct {
	from, to  *time.Time
	deletedID int64
	err       error
}

func (s *stubService) ListBlockedDates(_ context.Context, _ uuid.UUID, from, to *time.Time) ([]models.BlockedDateResponse, error) {
	s.from, s.to = from, to
	return []models.BlockedDateResponse{{ID: 1, Date: "2025-06-10", Kind: "full_day"}}, s.err
}

func (s *stubService) CreateBlockedDate(_ context.Context, _ uuid.UUID, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BlockedDateResponse{ID: 7, Date: req.Date, Kind: req.Kind}, nil
}

func (s *stubService) DeleteBlockedDate(_ context.Context, _ uuid.UUID, id int64) error {
	s.deletedID = id
	return s.err
}

func newRouter(svc BlockedDateService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	router := mux.NewRouter()
	router.HandleFunc("/projects/{projectId}/blocked-dates", h.List).Methods(http.MethodGet)
	router.HandleFunc("/projects/{projectId}/blocked-dates", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/projects/{projectId}/blocked-dates/{exceptionId}", h.Delete).Methods(http.MethodDelete)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestBlockedDates(t *testing.T) {
	base := fmt.Sprintf("/projects/%s/blocked-dates", uuid.New())
	svc := &stubService{}
	router := newRouter(svc)

	rec := do(router, http.MethodGet, base+"?from=2025-06-01&to=2025-06-30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.from)
	require.NotNil(t, svc.to)
	assert.Equal(t, 30, svc.to.Day())

	rec = do(router, http.MethodPost, base, `{"date":"2025-06-10","kind":"full_day"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)

	rec = do(router, http.MethodDelete, base+"/7", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(7), svc.deletedID)
}

func TestBlockedDates_Errors(t *testing.T) {
	base := fmt.Sprintf("/projects/%s/blocked-dates", uuid.New())

	rec := do(newRouter(&stubService{}), http.MethodGet, base+"?from=June", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRouter(&stubService{err: settings.ErrInvalidInput}), http.MethodGet, base+"?from=2025-06-30&to=2025-06-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRouter(&stubService{err: settings.ErrInvalidInput}), http.MethodPost, base, `{"date":"2025-06-10","kind":"holiday"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRouter(&stubService{}), http.MethodDelete, base+"/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newRouter(&stubService{err: settings.ErrBlockedDateNotFound}), http.MethodDelete, base+"/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
