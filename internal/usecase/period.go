package usecase

import (
	"time"

	"cups-server/pkg/errors"
)

// PeriodFilter selects the date window a task listing is matched against.
// Either a named period or an explicit [Start, Finish] range; empty means no
// window. Tasks match when their [start_date, finish_date] range overlaps
// the window.
type PeriodFilter struct {
	Period string // "", "yesterday", "today", "week"
	Start  *time.Time
	Finish *time.Time
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Window resolves the filter into concrete bounds relative to now. Nil bounds
// leave that side open.
func (f PeriodFilter) Window(now time.Time) (from, to *time.Time, err error) {
	if f.Start != nil || f.Finish != nil {
		if f.Start == nil || f.Finish == nil {
			return nil, nil, errors.Validation("both start and finish dates are required for an explicit range")
		}
		if f.Finish.Before(*f.Start) {
			return nil, nil, errors.Validation("finish date must not precede start date")
		}
		start, finish := startOfDay(*f.Start), endOfDay(*f.Finish)
		return &start, &finish, nil
	}

	switch f.Period {
	case "":
		return nil, nil, nil
	case "yesterday":
		day := now.AddDate(0, 0, -1)
		start, finish := startOfDay(day), endOfDay(day)
		return &start, &finish, nil
	case "today":
		start, finish := startOfDay(now), endOfDay(now)
		return &start, &finish, nil
	case "week":
		start := startOfDay(now.AddDate(0, 0, -7))
		finish := endOfDay(now.AddDate(0, 0, 7))
		return &start, &finish, nil
	default:
		return nil, nil, errors.Validation("period must be 'yesterday', 'today' or 'week'")
	}
}
