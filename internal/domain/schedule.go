package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// TimeRange полуоткрытый интервал времени суток [Start, End)
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// NewTimeRange создает интервал из минут от полуночи
func NewTimeRange(startMinutes, endMinutes int) (TimeRange, error) {
	start, err := types.NewTimeStringFromMinutes(startMinutes)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := types.NewTimeStringFromMinutes(endMinutes)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// IsValid возвращает true, если оба конца заданы и Start < End
func (r TimeRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.IsBefore(r.End)
}

// Overlaps проверяет пересечение полуоткрытых интервалов
// Интервалы, которые только соприкасаются (10:00-11:00 и 11:00-12:00), не пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.IsBefore(other.End) && other.Start.IsBefore(r.End)
}

// ContainsRange возвращает true, если other целиком лежит внутри r
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return !other.Start.IsBefore(r.Start) && !other.End.IsAfter(r.End)
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	Enabled bool             `json:"enabled"`
	Start   types.TimeString `json:"start"`
	End     types.TimeString `json:"end"`
	Breaks  []TimeRange      `json:"breaks"`
}

// Window возвращает рабочее окно дня
func (d DaySchedule) Window() TimeRange {
	return TimeRange{Start: d.Start, End: d.End}
}

// Validate проверяет инварианты дня: start < end, перерывы внутри окна и не пересекаются
func (d DaySchedule) Validate() error {
	if !d.Enabled {
		return nil
	}

	window := d.Window()
	if !window.IsValid() {
		return fmt.Errorf("%w: start %q must be before end %q", ErrInvalidSchedule, d.Start, d.End)
	}

	breaks := make([]TimeRange, len(d.Breaks))
	copy(breaks, d.Breaks)
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Start.IsBefore(breaks[j].Start) })

	for i, br := range breaks {
		if !br.IsValid() {
			return fmt.Errorf("%w: break %s is empty or reversed", ErrInvalidSchedule, br)
		}
		if !window.ContainsRange(br) {
			return fmt.Errorf("%w: break %s is outside working hours %s", ErrInvalidSchedule, br, window)
		}
		if i > 0 && breaks[i-1].Overlaps(br) {
			return fmt.Errorf("%w: breaks %s and %s overlap", ErrInvalidSchedule, breaks[i-1], br)
		}
	}

	return nil
}

// WeeklySchedule недельное расписание проекта (0 = воскресенье .. 6 = суббота)
// В БД хранится как JSON объект с ключами "0".."6"
type WeeklySchedule map[time.Weekday]DaySchedule

// DefaultWeeklySchedule возвращает расписание Пн-Пт 09:00-18:00 без перерывов
func DefaultWeeklySchedule() WeeklySchedule {
	start := types.MustTimeString(DefaultWorkdayStart)
	end := types.MustTimeString(DefaultWorkdayEnd)

	schedule := make(WeeklySchedule, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		enabled := day != time.Saturday && day != time.Sunday
		schedule[day] = DaySchedule{Enabled: enabled, Start: start, End: end, Breaks: []TimeRange{}}
	}
	return schedule
}

// Validate проверяет все дни расписания
func (w WeeklySchedule) Validate() error {
	for day, schedule := range w {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidSchedule, day)
		}
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}

// MarshalJSON сериализует расписание в объект с ключами "0".."6"
func (w WeeklySchedule) MarshalJSON() ([]byte, error) {
	out := make(map[string]DaySchedule, len(w))
	for day, schedule := range w {
		if schedule.Breaks == nil {
			schedule.Breaks = []TimeRange{}
		}
		out[strconv.Itoa(int(day))] = schedule
	}
	return json.Marshal(out)
}

// UnmarshalJSON разбирает объект с ключами "0".."6"
func (w *WeeklySchedule) UnmarshalJSON(data []byte) error {
	var raw map[string]DaySchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	result := make(WeeklySchedule, len(raw))
	for key, schedule := range raw {
		day, err := strconv.Atoi(key)
		if err != nil || day < 0 || day > 6 {
			return fmt.Errorf("%w: weekday key %q must be in \"0\"..\"6\"", ErrInvalidSchedule, key)
		}
		result[time.Weekday(day)] = schedule
	}

	*w = result
	return nil
}

// Value реализует driver.Valuer (колонка JSONB)
func (w WeeklySchedule) Value() (driver.Value, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Scan реализует sql.Scanner (колонка JSONB)
func (w *WeeklySchedule) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*w = WeeklySchedule{}
		return nil
	case []byte:
		return w.UnmarshalJSON(v)
	case string:
		return w.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidSchedule, src)
	}
}
