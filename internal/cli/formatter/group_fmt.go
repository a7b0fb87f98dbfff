package formatter

import (
	"strconv"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// FormatGroupList renders groups with their colors and project counts.
func FormatGroupList(groups []domain.Group, projectCounts map[string]int) string {
	headers := []string{"ID", "NAME", "COLOR", "PROJECTS"}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			Dim(g.ID),
			Bold(g.Name),
			Swatch(g.Color),
			strconv.Itoa(projectCounts[g.ID]),
		})
	}
	return RenderBox("Groups", RenderTable(headers, rows, 3))
}
