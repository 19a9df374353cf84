package get_settings

import (
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
)

const msgInvalidProjectID = "некорректный ID проекта"

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

// Handle GET /api/v1/projects/{projectId}/settings
// Для проекта без сохраненных настроек возвращаются значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("GET /projects/{id}/settings - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	result, err := h.service.GetSettings(r.Context(), projectID)
	if err != nil {
		h.logger.Error("GET /projects/{id}/settings - Failed to get settings: project_id=%s, error=%v", projectID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /projects/{id}/settings - Settings retrieved: project_id=%s", projectID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
