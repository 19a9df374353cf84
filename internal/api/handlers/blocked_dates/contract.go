package blocked_dates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/service/settings/models"
)

type BlockedDateService interface {
	ListBlockedDates(ctx context.Context, projectID uuid.UUID, from, to *time.Time) ([]models.BlockedDateResponse, error)
	CreateBlockedDate(ctx context.Context, projectID uuid.UUID, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
	DeleteBlockedDate(ctx context.Context, projectID uuid.UUID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
