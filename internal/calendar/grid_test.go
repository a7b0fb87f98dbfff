package calendar

import (
	"testing"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(cells []Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Label
	}
	return out
}

func TestBuildCells_QuarterYear(t *testing.T) {
	grid := BuildCells(gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityQuarter, 1))

	require.Len(t, grid.Cells, 4)
	assert.False(t, grid.Truncated)
	assert.Equal(t, []string{"T1", "T2", "T3", "T4"}, labels(grid.Cells))
	assert.Equal(t, day(t, "2026-01-01"), grid.Cells[0].Start)
	assert.Equal(t, day(t, "2026-04-01"), grid.Cells[0].End)
	assert.Equal(t, day(t, "2026-10-01"), grid.Cells[3].Start)
	assert.Equal(t, day(t, "2026-12-31"), grid.Cells[3].End)
}

func TestBuildCells_Granularities(t *testing.T) {
	tests := []struct {
		name   string
		cfg    domain.TimelineConfig
		labels []string
	}{
		{
			name:   "months",
			cfg:    gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityMonth, 1),
			labels: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		},
		{
			name:   "two-month step",
			cfg:    gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityMonth, 2),
			labels: []string{"Jan", "Mar", "May", "Jul", "Sep", "Nov"},
		},
		{
			name:   "iso weeks",
			cfg:    gridConfig(t, "2026-01-05", "2026-02-01", domain.GranularityWeek, 1),
			labels: []string{"S2", "S3", "S4", "S5"},
		},
		{
			name:   "semesters",
			cfg:    gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityHalfYear, 1),
			labels: []string{"S1", "S2"},
		},
		{
			name:   "years",
			cfg:    gridConfig(t, "2026-01-01", "2029-12-31", domain.GranularityYear, 1),
			labels: []string{"2026", "2027", "2028", "2029"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := BuildCells(tc.cfg)
			assert.Equal(t, tc.labels, labels(grid.Cells))
		})
	}
}

func TestBuildCells_CustomLabelFormat(t *testing.T) {
	cfg := gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityQuarter, 1)
	cfg.LabelFormat = "Jan 2006"

	grid := BuildCells(cfg)

	assert.Equal(t, []string{"Jan 2026", "Apr 2026", "Jul 2026", "Oct 2026"}, labels(grid.Cells))
}

func TestBuildCells_EmptyRange(t *testing.T) {
	grid := BuildCells(gridConfig(t, "2026-01-01", "2026-01-01", domain.GranularityMonth, 1))
	assert.Empty(t, grid.Cells)
	assert.False(t, grid.Truncated)
}

func TestBuildCells_MonthEndClamping(t *testing.T) {
	grid := BuildCells(gridConfig(t, "2026-01-31", "2026-06-30", domain.GranularityMonth, 1))

	require.Len(t, grid.Cells, 6)
	assert.Equal(t, day(t, "2026-02-28"), grid.Cells[0].End)
	assert.Equal(t, day(t, "2026-03-28"), grid.Cells[1].End)
	assert.Equal(t, day(t, "2026-06-28"), grid.Cells[5].Start)
	assert.Equal(t, day(t, "2026-06-30"), grid.Cells[5].End)
}

func TestBuildCells_Cap(t *testing.T) {
	grid := BuildCells(gridConfig(t, "2000-01-01", "2300-01-01", domain.GranularityWeek, 1))

	assert.Len(t, grid.Cells, MaxCells)
	assert.True(t, grid.Truncated)
}

func TestBuildCells_ContiguousCoverage(t *testing.T) {
	configs := []domain.TimelineConfig{
		domain.DefaultTimelineConfig(),
		gridConfig(t, "2026-01-05", "2026-12-20", domain.GranularityWeek, 1),
		gridConfig(t, "2026-01-05", "2027-03-01", domain.GranularityWeek, 3),
		gridConfig(t, "2025-11-15", "2027-02-10", domain.GranularityMonth, 1),
		gridConfig(t, "2026-02-01", "2030-02-01", domain.GranularityQuarter, 2),
		gridConfig(t, "2026-03-01", "2031-01-01", domain.GranularityHalfYear, 1),
		gridConfig(t, "2026-06-01", "2040-01-01", domain.GranularityYear, 3),
	}

	for _, cfg := range configs {
		name := string(cfg.Granularity) + " " + domain.FormatDate(cfg.StartDate)
		t.Run(name, func(t *testing.T) {
			cells := BuildCells(cfg).Cells
			require.NotEmpty(t, cells)
			assert.Equal(t, cfg.StartDate, cells[0].Start)
			assert.Equal(t, cfg.EndDate, cells[len(cells)-1].End)
			for i, c := range cells {
				assert.Equal(t, i, c.Index)
				assert.True(t, c.Start.Before(c.End), "cell %d is empty", i)
				if i > 0 {
					assert.Equal(t, cells[i-1].End, c.Start, "gap before cell %d", i)
				}
			}
		})
	}
}
