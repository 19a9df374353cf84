package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SiteBooking/internal/domain"
	"github.com/m04kA/SMC-SiteBooking/pkg/types"
)

// interval полуоткрытый интервал в минутах от полуночи
// Может выходить за пределы суток после расширения буфером
type interval struct {
	start int
	end   int
}

func (i interval) overlaps(other interval) bool {
	return i.start < other.end && other.start < i.end
}

func fromRange(r domain.TimeRange) interval {
	return interval{start: r.Start.Minutes(), end: r.End.Minutes()}
}

// mergeIntervals объединяет пересекающиеся и соприкасающиеся интервалы
func mergeIntervals(ranges []domain.TimeRange) []interval {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]interval, 0, len(ranges))
	for _, r := range ranges {
		sorted = append(sorted, fromRange(r))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	merged := []interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.start <= last.end {
			if cur.end > last.end {
				last.end = cur.end
			}
			continue
		}
		merged = append(merged, cur)
	}

	return merged
}

// GenerateSlots возвращает кандидатов на запись для даты в порядке возрастания
//
// Слоты идут от начала рабочего окна с шагом durationMinutes, пока слот целиком помещается в окно.
// Слот пропускается, если [start, start+duration) пересекается с перерывом или интервалом исключения.
// Буфер здесь не применяется, его учитывает FilterAvailable.
func GenerateSlots(date time.Time, schedule Schedule, calendar Calendar, durationMinutes, bufferMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if durationMinutes <= 0 {
		return slots
	}

	window, ok := schedule.WorkingWindow(date)
	if !ok {
		return slots
	}

	blocked, fullyBlocked := calendar.BlockedIntervals(date)
	if fullyBlocked {
		return slots
	}

	breaks := make([]interval, 0, len(schedule.BreaksFor(date)))
	for _, br := range schedule.BreaksFor(date) {
		breaks = append(breaks, fromRange(br))
	}
	exceptions := mergeIntervals(blocked)

	windowEnd := window.End.Minutes()
	for start := window.Start.Minutes(); start+durationMinutes <= windowEnd; start += durationMinutes {
		slot := interval{start: start, end: start + durationMinutes}
		if intersectsAny(slot, breaks) || intersectsAny(slot, exceptions) {
			continue
		}

		ts, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, ts)
	}

	return slots
}

func intersectsAny(slot interval, blocked []interval) bool {
	for _, b := range blocked {
		if slot.overlaps(b) {
			return true
		}
	}
	return false
}
