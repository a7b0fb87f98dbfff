package calendar

import (
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// Span is a half-open [StartIndex, EndIndex) range of cell indices.
type Span struct {
	StartIndex int
	EndIndex   int
}

// Len returns the number of cells in the span.
func (s Span) Len() int {
	return s.EndIndex - s.StartIndex
}

// ToSpan maps [rangeStart, rangeEnd) onto cell indices.
//
// StartIndex is the first cell that ends after rangeStart or starts exactly on
// it. EndIndex is i+1 for the cell i with rangeEnd after its start and not
// after the next cell's start; a range ending exactly on a boundary therefore
// ends in the cell before that boundary. Degenerate ranges occupy one cell and
// ranges starting past the grid clamp to the last cell. Whenever cells is
// non-empty, StartIndex < EndIndex.
func ToSpan(rangeStart, rangeEnd time.Time, cells []Cell) Span {
	n := len(cells)
	if n == 0 {
		return Span{}
	}

	start := -1
	for i := range cells {
		if rangeStart.Before(cells[i].End) || rangeStart.Equal(cells[i].Start) {
			start = i
			break
		}
	}
	if start < 0 {
		return Span{StartIndex: n - 1, EndIndex: n}
	}

	for i := start; i < n; i++ {
		if rangeEnd.After(cells[i].Start) && (i == n-1 || !rangeEnd.After(cells[i+1].Start)) {
			return Span{StartIndex: start, EndIndex: i + 1}
		}
	}
	return Span{StartIndex: start, EndIndex: start + 1}
}

// MinCellDuration is the minimum project duration on a grid: the length of
// its first cell, or one day when the grid is empty.
func MinCellDuration(cells []Cell) time.Duration {
	if len(cells) == 0 || cells[0].Duration() <= 0 {
		return 24 * time.Hour
	}
	return cells[0].Duration()
}

// NextBoundary returns the first cell boundary strictly after t. Boundaries
// are every cell start plus the end of the final cell.
func NextBoundary(t time.Time, cells []Cell) (time.Time, bool) {
	for _, c := range cells {
		if c.Start.After(t) {
			return c.Start, true
		}
	}
	if n := len(cells); n > 0 && cells[n-1].End.After(t) {
		return cells[n-1].End, true
	}
	return t, false
}

// PrevBoundary returns the last cell boundary strictly before t.
func PrevBoundary(t time.Time, cells []Cell) (time.Time, bool) {
	n := len(cells)
	if n > 0 && cells[n-1].End.Before(t) {
		return cells[n-1].End, true
	}
	for i := n - 1; i >= 0; i-- {
		if cells[i].Start.Before(t) {
			return cells[i].Start, true
		}
	}
	return t, false
}

// FitMinSpan stretches [start, end) to at least MinCellDuration while
// keeping both dates on cell boundaries. The end moves forward boundary by
// boundary; when the grid runs out the start moves back instead, so a short
// tail cell borrows from the cells before it. A grid shorter than the
// minimum as a whole falls back to start plus the minimum duration.
func FitMinSpan(start, end time.Time, cells []Cell) (time.Time, time.Time) {
	minDur := MinCellDuration(cells)
	for end.Sub(start) < minDur {
		if next, ok := NextBoundary(end, cells); ok {
			end = next
			continue
		}
		if prev, ok := PrevBoundary(start, cells); ok {
			start = prev
			continue
		}
		return start, start.Add(minDur)
	}
	return start, end
}

// ExtendOneCell returns the end of a one-cell range starting at start: the
// start of the cell after the one containing start, the grid end when that
// cell is the last one, or start plus MinCellDuration past the grid.
func ExtendOneCell(start time.Time, cells []Cell) time.Time {
	n := len(cells)
	if n == 0 {
		return start.Add(MinCellDuration(cells))
	}
	span := ToSpan(start, start, cells)
	switch {
	case span.EndIndex < n:
		return cells[span.EndIndex].Start
	case cells[n-1].End.After(start):
		return cells[n-1].End
	default:
		return start.Add(MinCellDuration(cells))
	}
}

// Adjustment is the result of re-aligning a date range to a new grid.
type Adjustment struct {
	Start    time.Time
	End      time.Time
	Adjusted bool
}

// Reconcile snaps a project's dates onto cells (cell mode). A collapsed range
// is first extended by one cell, then FitMinSpan restores the minimum
// duration.
func Reconcile(projectStart, projectEnd time.Time, cells []Cell) Adjustment {
	start := Snap(projectStart, cells, domain.SnapCell)
	end := Snap(projectEnd, cells, domain.SnapCell)

	if !end.After(start) {
		end = ExtendOneCell(start, cells)
	}
	start, end = FitMinSpan(start, end, cells)

	return Adjustment{
		Start:    start,
		End:      end,
		Adjusted: !start.Equal(projectStart) || !end.Equal(projectEnd),
	}
}
