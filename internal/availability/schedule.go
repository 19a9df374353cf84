// Package availability вычисляет доступные для записи слоты на дату.
// Все функции пакета чистые: состояние передается явно (расписание, исключения, записи, now).
package availability

import (
	"time"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
)

// Schedule недельное расписание проекта
type Schedule struct {
	weekly domain.WeeklySchedule
}

// NewSchedule создает модель расписания
func NewSchedule(weekly domain.WeeklySchedule) Schedule {
	return Schedule{weekly: weekly}
}

func (s Schedule) day(date time.Time) (domain.DaySchedule, bool) {
	day, ok := s.weekly[date.Weekday()]
	if !ok || !day.Enabled {
		return domain.DaySchedule{}, false
	}
	return day, true
}

// IsWorkingDay возвращает true, если день недели даты включен в расписании
func (s Schedule) IsWorkingDay(date time.Time) bool {
	day, ok := s.day(date)
	return ok && day.Window().IsValid()
}

// WorkingWindow возвращает рабочее окно [start, end) на дату
// ok == false, если день нерабочий
func (s Schedule) WorkingWindow(date time.Time) (window domain.TimeRange, ok bool) {
	if !s.IsWorkingDay(date) {
		return domain.TimeRange{}, false
	}
	day, _ := s.day(date)
	return day.Window(), true
}

// BreaksFor возвращает перерывы дня недели даты
func (s Schedule) BreaksFor(date time.Time) []domain.TimeRange {
	day, ok := s.day(date)
	if !ok {
		return nil
	}
	return day.Breaks
}
