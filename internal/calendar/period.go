package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// Period identifies one calendar period of a granularity. Only the field
// matching the granularity is set besides Year.
//
// For week granularity Year is the ISO week-year, which differs from the
// calendar year for a few days around January 1st.
type Period struct {
	Year     int
	Quarter  int // 1-4
	Semester int // 1-2
	Month    int // 1-12
	Week     int // ISO week, 1-53
}

// ToPeriod returns the period of granularity g that contains date.
func ToPeriod(date time.Time, g domain.Granularity) Period {
	year := date.Year()
	switch g {
	case domain.GranularityHalfYear:
		semester := 1
		if date.Month() > time.June {
			semester = 2
		}
		return Period{Year: year, Semester: semester}
	case domain.GranularityQuarter:
		return Period{Year: year, Quarter: quarterOf(date)}
	case domain.GranularityMonth:
		return Period{Year: year, Month: int(date.Month())}
	case domain.GranularityWeek:
		isoYear, week := date.ISOWeek()
		return Period{Year: isoYear, Week: week}
	default:
		return Period{Year: year}
	}
}

// PeriodStart returns the first day of p. Missing sub-period numbers count as 1.
func PeriodStart(p Period, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityHalfYear:
		if p.Semester == 2 {
			return domain.Date(p.Year, time.July, 1)
		}
		return domain.Date(p.Year, time.January, 1)
	case domain.GranularityQuarter:
		q := orOne(p.Quarter)
		return domain.Date(p.Year, time.Month((q-1)*3+1), 1)
	case domain.GranularityMonth:
		return domain.Date(p.Year, time.Month(orOne(p.Month)), 1)
	case domain.GranularityWeek:
		return AddWeeks(isoWeekOneStart(p.Year), orOne(p.Week)-1)
	default:
		return domain.Date(p.Year, time.January, 1)
	}
}

// PeriodEnd returns the last day of p (inclusive).
func PeriodEnd(p Period, g domain.Granularity) time.Time {
	switch g {
	case domain.GranularityHalfYear:
		if p.Semester == 2 {
			return domain.Date(p.Year, time.December, 31)
		}
		return domain.Date(p.Year, time.June, 30)
	case domain.GranularityQuarter:
		last := time.Month(orOne(p.Quarter) * 3)
		return domain.Date(p.Year, last, daysIn(p.Year, last))
	case domain.GranularityMonth:
		m := time.Month(orOne(p.Month))
		return domain.Date(p.Year, m, daysIn(p.Year, m))
	case domain.GranularityWeek:
		return PeriodStart(p, g).AddDate(0, 0, 6)
	default:
		return domain.Date(p.Year, time.December, 31)
	}
}

// FormatPeriod renders p for display, e.g. "2026 - T3".
func FormatPeriod(p Period, g domain.Granularity) string {
	switch g {
	case domain.GranularityHalfYear:
		return fmt.Sprintf("%d - S%d", p.Year, orOne(p.Semester))
	case domain.GranularityQuarter:
		return fmt.Sprintf("%d - T%d", p.Year, orOne(p.Quarter))
	case domain.GranularityMonth:
		return fmt.Sprintf("%d - %s", p.Year, time.Month(orOne(p.Month)).String()[:3])
	case domain.GranularityWeek:
		return fmt.Sprintf("%d - S%d", p.Year, orOne(p.Week))
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}

// PeriodChoices lists the selectable values for a granularity over a year range.
type PeriodChoices struct {
	Years      []int
	Subperiods []int // nil for year granularity
}

// PeriodOptions returns the years in [startYear, endYear] and the sub-period
// numbers valid for g. Week numbers run to 53 when any year in range has an
// ISO week 53.
func PeriodOptions(g domain.Granularity, startYear, endYear int) PeriodChoices {
	var choices PeriodChoices
	for y := startYear; y <= endYear; y++ {
		choices.Years = append(choices.Years, y)
	}

	switch g {
	case domain.GranularityHalfYear:
		choices.Subperiods = seq(2)
	case domain.GranularityQuarter:
		choices.Subperiods = seq(4)
	case domain.GranularityMonth:
		choices.Subperiods = seq(12)
	case domain.GranularityWeek:
		weeks := 52
		for y := startYear; y <= endYear; y++ {
			if isoWeeksIn(y) == 53 {
				weeks = 53
				break
			}
		}
		choices.Subperiods = seq(weeks)
	}
	return choices
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func orOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
