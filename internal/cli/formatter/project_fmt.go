package formatter

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
)

// ProjectRow is a project with the display data resolved by the caller.
type ProjectRow struct {
	Project   domain.Project
	GroupName string
	Color     string
	Span      calendar.Span
	Selected  bool
}

// FormatProjectList renders projects in a bordered table. Periods are shown
// in the granularity g of the active grid.
func FormatProjectList(rows []ProjectRow, g domain.Granularity) string {
	headers := []string{"ID", "CODE", "NAME", "GROUP", "START", "END", "PERIODS", "CELLS", "ROW", "COLOR"}
	out := make([][]string, 0, len(rows))

	for _, r := range rows {
		p := r.Project
		name := Bold(p.Name)
		if r.Selected {
			name = StyleHeader.Render("▸ ") + name
		}
		out = append(out, []string{
			Dim(p.ID),
			orDash(p.Code),
			name,
			orDash(r.GroupName),
			domain.FormatDate(p.StartDate),
			domain.FormatDate(p.EndDate),
			PeriodRange(p, g),
			fmt.Sprintf("%d-%d", r.Span.StartIndex, r.Span.EndIndex),
			strconv.Itoa(p.Row),
			Swatch(r.Color),
		})
	}

	return RenderBox("Projects", RenderTable(headers, out, 8))
}

// PeriodRange renders the first and last period a project covers, e.g.
// "2026 - T1 → 2026 - T2". The end date is exclusive.
func PeriodRange(p domain.Project, g domain.Granularity) string {
	first := calendar.FormatPeriod(calendar.ToPeriod(p.StartDate, g), g)
	lastDay := p.EndDate.AddDate(0, 0, -1)
	if lastDay.Before(p.StartDate) {
		lastDay = p.StartDate
	}
	last := calendar.FormatPeriod(calendar.ToPeriod(lastDay, g), g)
	if first == last {
		return first
	}
	return first + " → " + last
}

func orDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
