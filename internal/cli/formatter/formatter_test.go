package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "N"},
		[][]string{{"a", "1"}, {Bold("longer"), "10"}},
		1,
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "NAME     N", lines[0])
	assert.Equal(t, "──────  ──", lines[1])
	assert.Equal(t, "a        1", lines[2])
	assert.Equal(t, "longer  10", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestPeriodRange(t *testing.T) {
	p := domain.Project{
		StartDate: domain.Date(2026, time.January, 1),
		EndDate:   domain.Date(2026, time.July, 1),
	}

	assert.Equal(t, "2026 - T1 → 2026 - T2", PeriodRange(p, domain.GranularityQuarter))
	assert.Equal(t, "2026 - S1", PeriodRange(p, domain.GranularityHalfYear))
	assert.Equal(t, "2026", PeriodRange(p, domain.GranularityYear))
}

func TestFormatProjectList(t *testing.T) {
	rows := []ProjectRow{{
		Project: domain.Project{
			ID:        "project-1",
			Code:      "FIN01",
			Name:      "Audit",
			GroupID:   "group-1",
			StartDate: domain.Date(2026, time.January, 1),
			EndDate:   domain.Date(2026, time.April, 1),
			Row:       2,
		},
		GroupName: "Data quality",
		Color:     "#d9c890",
		Span:      calendar.Span{StartIndex: 0, EndIndex: 1},
		Selected:  true,
	}}

	out := stripANSI(FormatProjectList(rows, domain.GranularityQuarter))

	for _, want := range []string{"PROJECTS", "project-1", "FIN01", "▸ Audit", "Data quality", "2026-01-01", "2026-04-01", "2026 - T1", "0-1", "■ #d9c890"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatGroupList(t *testing.T) {
	out := stripANSI(FormatGroupList(domain.DefaultGroups(), map[string]int{"group-2": 3}))

	assert.Contains(t, out, "Tenant relations")
	assert.Contains(t, out, "#bcd7f2")
	assert.Regexp(t, `group-2\s+Tenant relations\s+■ #bcd7f2\s+3`, out)
}

func TestFormatPlanningList(t *testing.T) {
	out := stripANSI(FormatPlanningList([]store.PlanningSummary{
		{ID: "planning-a", Name: "Roadmap", ProjectCount: 4, GroupCount: 2, Active: true},
		{ID: "planning-b", Name: "Draft"},
	}))

	assert.Contains(t, out, "● ")
	assert.Contains(t, out, "Roadmap")
	assert.Contains(t, out, "planning-b")
}

func TestFormatTimeline(t *testing.T) {
	cfg := domain.DefaultTimelineConfig()
	grid := calendar.BuildCells(cfg)
	cards := calendar.SplitIntoCards(grid.Cells, cfg)

	out := stripANSI(FormatTimelineConfig(cfg, len(grid.Cells), len(cards)))
	assert.Contains(t, out, "2026-01-01 → 2029-12-31")
	assert.Contains(t, out, "quarter (step 1)")
	assert.Contains(t, out, "1 year")
	assert.Contains(t, out, "16 cells, 4 cards")

	cellsOut := stripANSI(FormatCells(grid.Cells[:2]))
	assert.Contains(t, cellsOut, "T1")
	assert.Regexp(t, `1\s+T2\s+2026-04-01\s+2026-07-01\s+91`, cellsOut)

	cardsOut := stripANSI(FormatCards(cards, []int{2}))
	assert.Contains(t, cardsOut, "T1 T2 T3 T4")
	assert.Regexp(t, `0\s+\S.*0-4.*\s2\n`, cardsOut)
}

func TestFormatPeriodChoices(t *testing.T) {
	out := stripANSI(FormatPeriodChoices(calendar.PeriodOptions(domain.GranularityQuarter, 2026, 2027), domain.GranularityQuarter))

	assert.Contains(t, out, "QUARTER PERIODS")
	assert.Contains(t, out, "2026 2027")
	assert.Contains(t, out, "1 2 3 4")
}
