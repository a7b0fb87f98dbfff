package formatter

import (
	"strconv"
	"time"

	"github.com/alexanderramin/plangrid/internal/store"
)

// FormatPlanningList renders plannings in the order given, marking the active one.
func FormatPlanningList(plannings []store.PlanningSummary) string {
	headers := []string{"", "ID", "NAME", "PROJECTS", "GROUPS", "UPDATED"}
	rows := make([][]string, 0, len(plannings))
	for _, p := range plannings {
		rows = append(rows, []string{
			Flag(p.Active),
			Dim(p.ID),
			Bold(p.Name),
			strconv.Itoa(p.ProjectCount),
			strconv.Itoa(p.GroupCount),
			p.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	return RenderBox("Plannings", RenderTable(headers, rows, 3, 4))
}
