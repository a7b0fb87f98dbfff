package calendar

import (
	"testing"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func gridConfig(t *testing.T, start, end string, g domain.Granularity, step int) domain.TimelineConfig {
	t.Helper()
	cfg := domain.DefaultTimelineConfig()
	cfg.StartDate = day(t, start)
	cfg.EndDate = day(t, end)
	cfg.Granularity = g
	cfg.Step = step
	return cfg
}

func quarterCells2026(t *testing.T) []Cell {
	t.Helper()
	return BuildCells(gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityQuarter, 1)).Cells
}

func yearCells(t *testing.T) []Cell {
	t.Helper()
	return BuildCells(gridConfig(t, "2026-01-01", "2029-12-31", domain.GranularityYear, 1)).Cells
}
