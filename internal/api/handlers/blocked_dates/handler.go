package blocked_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidExceptionID = "некорректный ID исключения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPeriod      = "некорректный период, ожидается YYYY-MM-DD"
	msgNotFound           = "исключение из расписания не найдено"
)

// Handler обработчики исключений из расписания (выходные, отпуск, перерывы)
type Handler struct {
	service BlockedDateService
	logger  Logger
}

func NewHandler(service BlockedDateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/projects/{projectId}/blocked-dates
// Query params: from, to (опционально, YYYY-MM-DD)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	from, err := parseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := parseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListBlockedDates(r.Context(), projectID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("GET /blocked-dates - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /blocked-dates - Failed to list: project_id=%s, error=%v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /blocked-dates - Retrieved: project_id=%s, count=%d", projectID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/projects/{projectId}/blocked-dates
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("POST /blocked-dates - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	var req models.CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlockedDate(r.Context(), projectID, &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("POST /blocked-dates - Invalid data: %v", err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, "invalid_blocked_date", err.Error())

		default:
			h.logger.Error("POST /blocked-dates - Failed to create: project_id=%s, error=%v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /blocked-dates - Created: project_id=%s, id=%d, date=%s", projectID, result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Delete DELETE /api/v1/projects/{projectId}/blocked-dates/{exceptionId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("DELETE /blocked-dates/{id} - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	exceptionID, err := strconv.ParseInt(mux.Vars(r)["exceptionId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocked-dates/{id} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), projectID, exceptionID); err != nil {
		switch {
		case errors.Is(err, settings.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /blocked-dates/{id} - Not found: id=%d", exceptionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /blocked-dates/{id} - Failed to delete: id=%d, error=%v", exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocked-dates/{id} - Deleted: project_id=%s, id=%d", projectID, exceptionID)
	handlers.RespondNoContent(w)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
