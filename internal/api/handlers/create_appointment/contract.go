package create_appointment

import (
	"context"

	submitBooking "github.com/m04kA/SMC-SiteBooking/internal/usecase/submit_booking"
)

type CreateAppointmentUseCase interface {
	CreateByStaff(ctx context.Context, req *submitBooking.StaffRequest) (*submitBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
