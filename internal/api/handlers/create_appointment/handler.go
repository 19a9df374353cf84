package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SiteBooking/internal/api/middleware"
	submitBooking "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotUnavailable    = "выбранное время недоступно"
	msgMissingField       = "не заполнено обязательное поле"
	msgInvalidInput       = "некорректные данные записи"
)

type slotUnavailableResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Slots   []string `json:"slots"`
}

type missingFieldResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/projects/{projectId}/appointments
// Запись от сотрудника сразу подтверждена и не проверяет согласие и антиспам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("POST /projects/{id}/appointments - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /projects/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(projectID)
	if err != nil {
		h.logger.Warn("POST /projects/{id}/appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.CreateByStaff(r.Context(), useCaseReq)
	if err != nil {
		var (
			slotErr  *submitBooking.SlotUnavailableError
			fieldErr *submitBooking.MissingFieldError
		)

		switch {
		case errors.As(err, &slotErr):
			h.logger.Warn("POST /projects/{id}/appointments - Slot unavailable: project_id=%s, date=%s, start=%s",
				projectID, req.Date, req.StartTime)
			handlers.RespondJSON(w, http.StatusConflict, slotUnavailableResponse{
				Code:    "slot_unavailable",
				Message: msgSlotUnavailable,
				Slots:   slotStrings(slotErr.Slots),
			})

		case errors.As(err, &fieldErr):
			h.logger.Warn("POST /projects/{id}/appointments - Missing field: field=%s", fieldErr.Field)
			handlers.RespondJSON(w, http.StatusBadRequest, missingFieldResponse{
				Code:    "missing_field",
				Message: msgMissingField,
				Field:   fieldErr.Field,
			})

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /projects/{id}/appointments - Invalid input: %v", err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, "invalid_input", msgInvalidInput)

		default:
			h.logger.Error("POST /projects/{id}/appointments - Failed to create appointment: project_id=%s, error=%v",
				projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /projects/{id}/appointments - Appointment created by staff: id=%s, project_id=%s, user_id=%s",
		result.ID, projectID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
