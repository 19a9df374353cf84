package availability

import (
	"time"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// Compute вычисляет доступные слоты на дату по настройкам проекта
// now переводится в часовой пояс проекта. Флаг IsEnabled здесь не учитывается
func Compute(
	settings *domain.BookingSettings,
	date time.Time,
	exceptions []*domain.DateException,
	appointments []*domain.Appointment,
	now time.Time,
) ([]types.TimeString, error) {
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}

	candidates := GenerateSlots(
		date,
		NewSchedule(settings.WeeklySchedule),
		NewCalendar(exceptions),
		settings.SlotDurationMinutes,
		settings.BufferMinutes,
	)

	return FilterAvailable(
		candidates,
		date,
		appointments,
		settings.SlotDurationMinutes,
		settings.BufferMinutes,
		settings.MaxAdvanceDays,
		now.In(loc),
	), nil
}
