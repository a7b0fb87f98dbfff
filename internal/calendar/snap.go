package calendar

import (
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// Snap maps date onto a cell boundary. The reference cell is the one whose
// Start is closest to date; on ties the first such cell in sequence order wins.
//
// In cell mode the reference cell's Start is returned. In subCell mode the
// reference cell's Start is returned when date falls before the cell's
// midpoint, and its End otherwise. An empty cell list returns date unchanged.
func Snap(date time.Time, cells []Cell, mode domain.SnapMode) time.Time {
	if len(cells) == 0 {
		return date
	}

	closest := 0
	minDiff := absDuration(date.Sub(cells[0].Start))
	for i := 1; i < len(cells); i++ {
		if diff := absDuration(date.Sub(cells[i].Start)); diff < minDiff {
			minDiff = diff
			closest = i
		}
	}

	cell := cells[closest]
	if mode != domain.SnapSubCell {
		return cell.Start
	}

	mid := cell.Start.Add(cell.Duration() / 2)
	if date.Before(mid) {
		return cell.Start
	}
	return cell.End
}
