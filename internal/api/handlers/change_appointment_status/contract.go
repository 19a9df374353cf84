package change_appointment_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SiteBooking/internal/service/appointments/models"
)

type AppointmentService interface {
	ChangeStatus(ctx context.Context, projectID, id uuid.UUID, req *models.ChangeStatusRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
