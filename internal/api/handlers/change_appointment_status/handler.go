package change_appointment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SiteBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments"
	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments/models"
)

const (
	msgInvalidProjectID     = "некорректный ID проекта"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "недопустимое изменение статуса"
	msgSlotUnavailable      = "время записи уже занято другой записью"
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

// Handle PATCH /api/v1/projects/{projectId}/appointments/{appointmentId}/status
// Body: {"action": "confirm" | "cancel" | "reactivate"}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.ChangeStatus(r.Context(), projectID, appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: id=%s, action=%s", appointmentID, req.Action)
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, "invalid_transition", msgInvalidTransition)

		case errors.Is(err, appointments.ErrSlotUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/status - Slot taken: id=%s", appointmentID)
			handlers.RespondErrorCode(w, http.StatusConflict, "slot_unavailable", msgSlotUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to change status: id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status changed: id=%s, status=%s, user_id=%s",
		appointmentID, result.Status, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
