package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SiteBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/projects/{projectId}/settings
// Частичное обновление: меняются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("PUT /projects/{id}/settings - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /projects/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.UpdateSettings(r.Context(), projectID, &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /projects/{id}/settings - Invalid data: project_id=%s, error=%v", projectID, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, "invalid_settings", err.Error())

		default:
			h.logger.Error("PUT /projects/{id}/settings - Failed to update settings: project_id=%s, error=%v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /projects/{id}/settings - Settings updated: project_id=%s, user_id=%s", projectID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
