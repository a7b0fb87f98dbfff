package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
)

// FormatTimelineConfig renders the settings of a timeline config.
func FormatTimelineConfig(cfg domain.TimelineConfig, cellCount, cardCount int) string {
	split := string(cfg.CardSplitUnit)
	if cfg.CardSplitUnit != domain.SplitNone {
		split = fmt.Sprintf("%d %s", cfg.CardSplitSize, cfg.CardSplitUnit)
	}

	fields := [][2]string{
		{"RANGE", domain.FormatDate(cfg.StartDate) + " → " + domain.FormatDate(cfg.EndDate)},
		{"GRANULARITY", fmt.Sprintf("%s (step %d)", cfg.Granularity, cfg.Step)},
		{"CARDS", split},
		{"SNAP", string(cfg.EffectiveSnapMode())},
		{"LABELS", orDash(cfg.LabelFormat)},
		{"GRID", fmt.Sprintf("%d cells, %d cards", cellCount, cardCount)},
	}

	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render(fmt.Sprintf("%-11s", f[0])), StyleFg.Render(f[1]))
	}
	return RenderBox("Timeline", b.String())
}

// FormatCells renders grid cells, one per row.
func FormatCells(cells []calendar.Cell) string {
	headers := []string{"#", "LABEL", "START", "END", "DAYS"}
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			Bold(c.Label),
			domain.FormatDate(c.Start),
			domain.FormatDate(c.End),
			strconv.Itoa(int(c.Duration().Hours() / 24)),
		})
	}
	return RenderTable(headers, rows, 0, 4)
}

// FormatCards renders cards with their cell range and project count.
func FormatCards(cards []calendar.Card, projectCounts []int) string {
	headers := []string{"#", "TITLE", "CELLS", "LABELS", "PROJECTS"}
	rows := make([][]string, 0, len(cards))
	for i, c := range cards {
		labels := make([]string, 0, len(c.Cells))
		for _, cell := range c.Cells {
			labels = append(labels, cell.Label)
		}
		count := 0
		if i < len(projectCounts) {
			count = projectCounts[i]
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			Bold(c.Title),
			fmt.Sprintf("%d-%d", c.StartIndex, c.EndIndex),
			Dim(strings.Join(labels, " ")),
			strconv.Itoa(count),
		})
	}
	return RenderTable(headers, rows, 0, 4)
}

// FormatPeriodChoices renders the selectable years and sub-periods of g.
func FormatPeriodChoices(choices calendar.PeriodChoices, g domain.Granularity) string {
	var b strings.Builder
	b.WriteString(Header(string(g) + " periods"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("YEARS     "), joinInts(choices.Years))
	if len(choices.Subperiods) > 0 {
		fmt.Fprintf(&b, "%s  %s\n", StyleDim.Render("SUBPERIODS"), joinInts(choices.Subperiods))
	}
	return b.String()
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
