package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SiteBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidProjectID = "некорректный ID проекта"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/projects/{projectId}/available-slots
// Query params: date (required, YYYY-MM-DD)
// Неизвестный проект, выключенная запись и закрытый день отдают 200 с пустым списком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("GET /projects/{id}/available-slots - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /projects/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(projectID, dateStr)
	if err != nil {
		h.logger.Warn("GET /projects/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /projects/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /projects/{id}/available-slots - Failed to get slots: project_id=%s, error=%v", projectID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /projects/{id}/available-slots - %d slots: project_id=%s, date=%s",
		len(result.Slots), projectID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
