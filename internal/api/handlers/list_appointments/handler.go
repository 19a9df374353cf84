package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SiteBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments"
)

const (
	msgInvalidProjectID = "некорректный ID проекта"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/projects/{projectId}/appointments
// Query params: from, to, date, status, search, limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("GET /projects/{id}/appointments - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	serviceReq, err := ToServiceRequest(projectID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /projects/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /projects/{id}/appointments - Invalid filter: project_id=%s, error=%v", projectID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /projects/{id}/appointments - Failed to list appointments: project_id=%s, error=%v",
				projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("GET /projects/{id}/appointments - Appointments retrieved: project_id=%s, user_id=%s, count=%d",
		projectID, userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
