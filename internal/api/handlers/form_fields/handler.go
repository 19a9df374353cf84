package form_fields

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SiteBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

const (
	msgInvalidProjectID   = "некорректный ID проекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "поле формы не найдено"
	msgFieldExists        = "поле с таким идентификатором уже существует"
	msgSystemFieldLocked  = "системное поле нельзя удалить или изменить его тип"
)

// FormFieldsResponse актуальный список полей формы
type FormFieldsResponse struct {
	FormFields []domain.FormField `json:"formFields"`
}

// Handler обработчики конструктора формы записи
type Handler struct {
	service FormFieldService
	logger  Logger
}

func NewHandler(service FormFieldService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/projects/{projectId}/form-fields
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r, "GET /form-fields")
	if !ok {
		return
	}

	fields, err := h.service.ListFormFields(r.Context(), projectID)
	h.respond(w, "GET /form-fields", http.StatusOK, fields, err)
}

// Create POST /api/v1/projects/{projectId}/form-fields
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r, "POST /form-fields")
	if !ok {
		return
	}

	var req models.FormFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /form-fields - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fields, err := h.service.CreateFormField(r.Context(), projectID, &req)
	h.respond(w, "POST /form-fields", http.StatusCreated, fields, err)
}

// Update PUT /api/v1/projects/{projectId}/form-fields/{fieldId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r, "PUT /form-fields/{id}")
	if !ok {
		return
	}

	var req models.FormFieldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /form-fields/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fields, err := h.service.UpdateFormField(r.Context(), projectID, mux.Vars(r)["fieldId"], &req)
	h.respond(w, "PUT /form-fields/{id}", http.StatusOK, fields, err)
}

// Delete DELETE /api/v1/projects/{projectId}/form-fields/{fieldId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r, "DELETE /form-fields/{id}")
	if !ok {
		return
	}

	fields, err := h.service.DeleteFormField(r.Context(), projectID, mux.Vars(r)["fieldId"])
	h.respond(w, "DELETE /form-fields/{id}", http.StatusOK, fields, err)
}

// Reorder PUT /api/v1/projects/{projectId}/form-fields/order
// Body: {"fieldIds": ["name", "email", ...]}
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	projectID, ok := h.projectID(w, r, "PUT /form-fields/order")
	if !ok {
		return
	}

	var req models.ReorderFormFieldsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /form-fields/order - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fields, err := h.service.ReorderFormFields(r.Context(), projectID, &req)
	h.respond(w, "PUT /form-fields/order", http.StatusOK, fields, err)
}

func (h *Handler) projectID(w http.ResponseWriter, r *http.Request, route string) (uuid.UUID, bool) {
	projectID, err := handlers.PathUUID(r, "projectId")
	if err != nil {
		h.logger.Warn("%s - Invalid project ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidProjectID)
		return projectID, false
	}
	return projectID, true
}

func (h *Handler) respond(w http.ResponseWriter, route string, status int, fields []domain.FormField, err error) {
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrFormFieldNotFound):
			h.logger.Warn("%s - Field not found: %v", route, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrFormFieldExists):
			h.logger.Warn("%s - Field exists: %v", route, err)
			handlers.RespondConflict(w, msgFieldExists)

		case errors.Is(err, settings.ErrSystemFieldLocked):
			h.logger.Warn("%s - System field locked: %v", route, err)
			handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, "system_field_locked", msgSystemFieldLocked)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid field: %v", route, err)
			handlers.RespondErrorCode(w, http.StatusBadRequest, "invalid_form_field", err.Error())

		default:
			h.logger.Error("%s - Failed: %v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if fields == nil {
		fields = []domain.FormField{}
	}

	h.logger.Info("%s - OK: %d fields", route, len(fields))
	handlers.RespondJSON(w, status, FormFieldsResponse{FormFields: fields})
}
