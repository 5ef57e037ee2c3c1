package domain

import (
	"errors"
	"time"
)

// ErrInvalidTimeRange конец интервала должен быть строго позже начала
var ErrInvalidTimeRange = errors.New("domain: end time must be after start time")

// TimeRange полуоткрытый интервал [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создает интервал, проверяя что end > start
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps сообщает, пересекаются ли интервалы. Соприкасающиеся границы пересечением не считаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Contains сообщает, выполняется ли Start <= t < End
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// NormalizeDate приводит время к полуночи UTC того же календарного дня (в UTC)
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds возвращает интервал [00:00, 00:00 следующего дня) для даты в UTC
func DayBounds(t time.Time) TimeRange {
	start := NormalizeDate(t)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}
