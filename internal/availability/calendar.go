package availability

import (
	"time"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
)

// Calendar разовые исключения из расписания ("заблокированные даты")
type Calendar struct {
	exceptions []*domain.DateException
}

// NewCalendar создает календарь исключений
// Исключения могут относиться к разным датам, фильтрация по дате выполняется в BlockedIntervals
func NewCalendar(exceptions []*domain.DateException) Calendar {
	return Calendar{exceptions: exceptions}
}

// BlockedIntervals возвращает интервалы исключений time_range на дату
// fullyBlocked == true, если на дату есть исключение full_day или vacation
// Пересекающиеся интервалы не объединяются
func (c Calendar) BlockedIntervals(date time.Time) (intervals []domain.TimeRange, fullyBlocked bool) {
	intervals = make([]domain.TimeRange, 0)

	for _, exc := range c.exceptions {
		if exc == nil || !domain.SameDate(exc.Date, date) {
			continue
		}

		switch exc.Kind {
		case domain.ExceptionFullDay, domain.ExceptionVacation:
			return nil, true
		case domain.ExceptionTimeRange:
			if r := exc.Range(); r.IsValid() {
				intervals = append(intervals, r)
			}
		}
	}

	return intervals, false
}
