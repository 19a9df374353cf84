package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	submitBooking "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotUnavailable    = "выбранное время больше недоступно, выберите другое"
	msgMissingField       = "не заполнено обязательное поле"
	msgConsentRequired    = "необходимо согласие на обработку персональных данных"
	msgSystemDisabled     = "онлайн-запись временно недоступна"
	msgInvalidInput       = "некорректные данные формы"
)

const (
	codeSlotUnavailable = "slot_unavailable"
	codeMissingField    = "missing_field"
	codeConsentRequired = "consent_required"
	codeSystemDisabled  = "system_disabled"
	codeInvalidInput    = "invalid_input"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/projects/{projectId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("POST /projects/{id}/bookings - Invalid project ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return
	}

	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /projects/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(projectID, clientIP(r))
	if err != nil {
		h.logger.Warn("POST /projects/{id}/bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var (
			slotErr  *submitBooking.SlotUnavailableError
			fieldErr *submitBooking.MissingFieldError
		)

		switch {
		case errors.As(err, &slotErr):
			// Спам и конфликт хранилища отдаются клиенту так же, как занятый слот
			h.logger.Warn("POST /projects/{id}/bookings - Slot unavailable: project_id=%s, date=%s, start=%s, reason=%v",
				projectID, req.Date, req.StartTime, slotErr.Reason)
			handlers.RespondJSON(w, http.StatusConflict, SlotUnavailableResponse{
				Code:    codeSlotUnavailable,
				Message: msgSlotUnavailable,
				Slots:   slotStrings(slotErr.Slots),
			})

		case errors.As(err, &fieldErr):
			h.logger.Warn("POST /projects/{id}/bookings - Missing field: project_id=%s, field=%s", projectID, fieldErr.Field)
			handlers.RespondJSON(w, http.StatusBadRequest, MissingFieldResponse{
				Code:    codeMissingField,
				Message: msgMissingField,
				Field:   fieldErr.Field,
			})

		case errors.Is(err, submitBooking.ErrConsentRequired):
			h.logger.Warn("POST /projects/{id}/bookings - Consent required: project_id=%s", projectID)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeConsentRequired, msgConsentRequired)

		case errors.Is(err, submitBooking.ErrSystemDisabled):
			h.logger.Warn("POST /projects/{id}/bookings - Booking disabled: project_id=%s", projectID)
			handlers.RespondErrorCode(w, http.StatusForbidden, codeSystemDisabled, msgSystemDisabled)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /projects/{id}/bookings - Invalid input: project_id=%s, error=%v", projectID, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, codeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /projects/{id}/bookings - Failed to submit booking: project_id=%s, error=%v", projectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /projects/{id}/bookings - Appointment created: id=%s, project_id=%s, date=%s, start=%s",
		result.ID, projectID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
