package get_settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

type SettingsService interface {
	GetSettings(ctx context.Context, projectID uuid.UUID) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
