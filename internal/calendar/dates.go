package calendar

import (
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// AddMonths adds n calendar months to t. When the target month is shorter
// than t's day of month, the result is clamped to that month's last day
// (Jan 31 + 1 month = Feb 28).
func AddMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + total/12
	idx := total % 12
	if idx < 0 {
		idx += 12
		year--
	}
	month := time.Month(idx + 1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return domain.Date(year, month, day)
}

// AddWeeks adds n weeks to t.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// Advance moves t forward by step units of granularity g.
func Advance(t time.Time, g domain.Granularity, step int) time.Time {
	switch g {
	case domain.GranularityWeek:
		return AddWeeks(t, step)
	case domain.GranularityMonth:
		return AddMonths(t, step)
	case domain.GranularityQuarter:
		return AddMonths(t, 3*step)
	case domain.GranularityHalfYear:
		return AddMonths(t, 6*step)
	case domain.GranularityYear:
		return AddMonths(t, 12*step)
	default:
		return AddMonths(t, step)
	}
}

func daysIn(year int, month time.Month) int {
	return domain.Date(year, month+1, 0).Day()
}

func quarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// isoWeekOneStart returns the Monday of ISO week 1 of year, i.e. the Monday
// of the week containing January 4th.
func isoWeekOneStart(year int) time.Time {
	jan4 := domain.Date(year, time.January, 4)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset)
}

// isoWeeksIn returns the number of ISO weeks (52 or 53) in year.
func isoWeeksIn(year int) int {
	_, w := domain.Date(year, time.December, 28).ISOWeek()
	return w
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
