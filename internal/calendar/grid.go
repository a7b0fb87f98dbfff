package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// MaxCells caps grid construction for pathological configurations.
const MaxCells = 10000

// Cell is one discrete time slot of the grid. End is the next cell's Start,
// except for the final cell which may be truncated to the config end date.
type Cell struct {
	Start time.Time
	End   time.Time
	Label string
	Index int
}

// Duration returns the length of the cell.
func (c Cell) Duration() time.Duration {
	return c.End.Sub(c.Start)
}

// Grid is the output of BuildCells. Truncated is set when MaxCells was
// reached before the config end date.
type Grid struct {
	Cells     []Cell
	Truncated bool
}

// BuildCells turns cfg into an ordered, contiguous sequence of cells covering
// [cfg.StartDate, cfg.EndDate].
func BuildCells(cfg domain.TimelineConfig) Grid {
	step := cfg.Step
	if step < 1 {
		step = 1
	}
	end := cfg.EndDate

	var grid Grid
	current := cfg.StartDate
	for !current.After(end) {
		if len(grid.Cells) == MaxCells {
			grid.Truncated = current.Before(end)
			break
		}

		cellEnd := Advance(current, cfg.Granularity, step)
		if cellEnd.After(end) {
			if current.Before(end) {
				grid.Cells = append(grid.Cells, newCell(current, end, len(grid.Cells), cfg))
			}
			break
		}

		grid.Cells = append(grid.Cells, newCell(current, cellEnd, len(grid.Cells), cfg))
		current = cellEnd
	}
	return grid
}

func newCell(start, end time.Time, index int, cfg domain.TimelineConfig) Cell {
	return Cell{
		Start: start,
		End:   end,
		Label: CellLabel(start, cfg.Granularity, cfg.LabelFormat),
		Index: index,
	}
}

// CellLabel returns the display label of a cell starting at d. A non-empty
// layout (Go time layout) overrides the granularity's built-in label.
func CellLabel(d time.Time, g domain.Granularity, layout string) string {
	if layout != "" {
		return d.Format(layout)
	}

	switch g {
	case domain.GranularityWeek:
		_, week := d.ISOWeek()
		return fmt.Sprintf("S%d", week)
	case domain.GranularityMonth:
		return d.Format("Jan")
	case domain.GranularityQuarter:
		return fmt.Sprintf("T%d", quarterOf(d))
	case domain.GranularityHalfYear:
		if d.Month() <= time.June {
			return "S1"
		}
		return "S2"
	case domain.GranularityYear:
		return d.Format("2006")
	default:
		return d.Format("Jan 2006")
	}
}
