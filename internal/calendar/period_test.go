package calendar

import (
	"testing"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/assert"
)

var allGranularities = []domain.Granularity{
	domain.GranularityWeek,
	domain.GranularityMonth,
	domain.GranularityQuarter,
	domain.GranularityHalfYear,
	domain.GranularityYear,
}

func TestToPeriod_Quarter(t *testing.T) {
	p := ToPeriod(day(t, "2026-07-15"), domain.GranularityQuarter)

	assert.Equal(t, Period{Year: 2026, Quarter: 3}, p)
	assert.Equal(t, day(t, "2026-07-01"), PeriodStart(p, domain.GranularityQuarter))
	assert.Equal(t, day(t, "2026-09-30"), PeriodEnd(p, domain.GranularityQuarter))
}

func TestToPeriod_ByGranularity(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		g     domain.Granularity
		want  Period
		start string
		end   string
	}{
		{"year", "2026-05-05", domain.GranularityYear, Period{Year: 2026}, "2026-01-01", "2026-12-31"},
		{"first semester ends in june", "2026-06-30", domain.GranularityHalfYear, Period{Year: 2026, Semester: 1}, "2026-01-01", "2026-06-30"},
		{"second semester starts in july", "2026-07-01", domain.GranularityHalfYear, Period{Year: 2026, Semester: 2}, "2026-07-01", "2026-12-31"},
		{"leap february", "2028-02-10", domain.GranularityMonth, Period{Year: 2028, Month: 2}, "2028-02-01", "2028-02-29"},
		{"fourth quarter", "2026-12-31", domain.GranularityQuarter, Period{Year: 2026, Quarter: 4}, "2026-10-01", "2026-12-31"},
		{"iso week one starts in previous year", "2026-01-01", domain.GranularityWeek, Period{Year: 2026, Week: 1}, "2025-12-29", "2026-01-04"},
		{"iso week 53", "2027-01-01", domain.GranularityWeek, Period{Year: 2026, Week: 53}, "2026-12-28", "2027-01-03"},
		{"mid-year week", "2026-03-18", domain.GranularityWeek, Period{Year: 2026, Week: 12}, "2026-03-16", "2026-03-22"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToPeriod(day(t, tc.date), tc.g)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, day(t, tc.start), PeriodStart(got, tc.g))
			assert.Equal(t, day(t, tc.end), PeriodEnd(got, tc.g))
		})
	}
}

func TestPeriodBoundsContainDate(t *testing.T) {
	from := day(t, "2024-12-01")
	to := day(t, "2028-01-31")

	for _, g := range allGranularities {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			p := ToPeriod(d, g)
			start, end := PeriodStart(p, g), PeriodEnd(p, g)
			if start.After(d) || end.Before(d) {
				t.Fatalf("%s: %s not within [%s, %s]", g, domain.FormatDate(d), domain.FormatDate(start), domain.FormatDate(end))
			}
			// Every period start maps back to the same period.
			assert.Equal(t, p, ToPeriod(start, g))
		}
	}
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "2026", FormatPeriod(Period{Year: 2026}, domain.GranularityYear))
	assert.Equal(t, "2026 - S2", FormatPeriod(Period{Year: 2026, Semester: 2}, domain.GranularityHalfYear))
	assert.Equal(t, "2026 - T3", FormatPeriod(Period{Year: 2026, Quarter: 3}, domain.GranularityQuarter))
	assert.Equal(t, "2026 - Mar", FormatPeriod(Period{Year: 2026, Month: 3}, domain.GranularityMonth))
	assert.Equal(t, "2026 - S12", FormatPeriod(Period{Year: 2026, Week: 12}, domain.GranularityWeek))
}

func TestPeriodOptions(t *testing.T) {
	opts := PeriodOptions(domain.GranularityQuarter, 2026, 2028)
	assert.Equal(t, []int{2026, 2027, 2028}, opts.Years)
	assert.Equal(t, []int{1, 2, 3, 4}, opts.Subperiods)

	assert.Nil(t, PeriodOptions(domain.GranularityYear, 2026, 2026).Subperiods)
	assert.Len(t, PeriodOptions(domain.GranularityMonth, 2026, 2026).Subperiods, 12)
	assert.Len(t, PeriodOptions(domain.GranularityWeek, 2027, 2027).Subperiods, 52)
	assert.Len(t, PeriodOptions(domain.GranularityWeek, 2026, 2027).Subperiods, 53)
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	assert.Equal(t, day(t, "2026-02-28"), AddMonths(day(t, "2026-01-31"), 1))
	assert.Equal(t, day(t, "2028-02-29"), AddMonths(day(t, "2028-01-31"), 1))
	assert.Equal(t, day(t, "2025-12-15"), AddMonths(day(t, "2026-01-15"), -1))
	assert.Equal(t, day(t, "2024-12-31"), AddMonths(day(t, "2026-01-31"), -13))
	assert.Equal(t, day(t, "2027-01-01"), AddMonths(day(t, "2026-10-01"), 3))
}
