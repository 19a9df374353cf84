package form_fields

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

type FormFieldService interface {
	ListFormFields(ctx context.Context, projectID uuid.UUID) ([]domain.FormField, error)
	CreateFormField(ctx context.Context, projectID uuid.UUID, req *models.FormFieldRequest) ([]domain.FormField, error)
	UpdateFormField(ctx context.Context, projectID uuid.UUID, fieldID string, req *models.FormFieldRequest) ([]domain.FormField, error)
	DeleteFormField(ctx context.Context, projectID uuid.UUID, fieldID string) ([]domain.FormField, error)
	ReorderFormFields(ctx context.Context, projectID uuid.UUID, req *models.ReorderFormFieldsRequest) ([]domain.FormField, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
