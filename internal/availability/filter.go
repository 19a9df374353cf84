package availability

import (
	"time"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// FilterAvailable оставляет только слоты, доступные для записи
//
// Слот удаляется, если:
//   - [start-buffer, start+duration+buffer) пересекается с интервалом активной записи на эту дату
//   - начало слота не строго позже now
//   - дата позже чем сегодня + maxAdvanceDays (maxAdvanceDays <= 0 снимает ограничение)
//
// now должен быть выражен в часовом поясе проекта. Порядок кандидатов сохраняется.
func FilterAvailable(
	candidates []types.TimeString,
	date time.Time,
	appointments []*domain.Appointment,
	durationMinutes int,
	bufferMinutes int,
	maxAdvanceDays int,
	now time.Time,
) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))

	if maxAdvanceDays > 0 && beyondAdvanceWindow(date, now, maxAdvanceDays) {
		return result
	}

	if bufferMinutes < 0 {
		bufferMinutes = 0
	}

	occupied := make([]interval, 0, len(appointments))
	for _, appt := range appointments {
		if appt == nil || !appt.IsActive() || !domain.SameDate(appt.Date, date) {
			continue
		}
		occupied = append(occupied, fromRange(appt.Interval()))
	}

	for _, slot := range candidates {
		if !slotInstant(date, slot, now.Location()).After(now) {
			continue
		}

		expanded := interval{
			start: slot.Minutes() - bufferMinutes,
			end:   slot.Minutes() + durationMinutes + bufferMinutes,
		}
		if intersectsAny(expanded, occupied) {
			continue
		}

		result = append(result, slot)
	}

	return result
}

// IsAvailable проверяет, что слот присутствует в списке доступных
func IsAvailable(available []types.TimeString, slot types.TimeString) bool {
	for _, s := range available {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// Today возвращает сегодняшнюю дату (полночь UTC) с точки зрения now
func Today(now time.Time) time.Time {
	return domain.DateOnly(now)
}

func slotInstant(date time.Time, slot types.TimeString, loc *time.Location) time.Time {
	y, m, d := date.Date()
	minutes := slot.Minutes()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}

func beyondAdvanceWindow(date, now time.Time, maxAdvanceDays int) bool {
	lastDate := Today(now).AddDate(0, 0, maxAdvanceDays)
	return domain.DateOnly(date).After(lastDate)
}
