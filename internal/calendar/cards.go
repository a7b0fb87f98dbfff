package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// Card is a contiguous run of cells shown together. Cells is
// cells[StartIndex:EndIndex] of the grid it was cut from.
type Card struct {
	Title      string
	StartIndex int
	EndIndex   int
	Cells      []Cell
}

// SplitIntoCards partitions cells into cards per cfg.CardSplitUnit and
// cfg.CardSplitSize. The cards cover every cell exactly once, in order.
func SplitIntoCards(cells []Cell, cfg domain.TimelineConfig) []Card {
	if cfg.CardSplitUnit == domain.SplitNone || !domain.ValidCardSplitUnits[string(cfg.CardSplitUnit)] || len(cells) == 0 {
		return []Card{{
			Title:      fmt.Sprintf("%d - %d", cfg.StartDate.Year(), cfg.EndDate.Year()),
			StartIndex: 0,
			EndIndex:   len(cells),
			Cells:      cells,
		}}
	}

	size := cfg.CardSplitSize
	if size < 1 {
		size = 1
	}

	var cards []Card
	current := 0
	for current < len(cells) {
		end := cardEndIndex(current, cells, cfg.CardSplitUnit, size)
		cards = append(cards, Card{
			Title:      cardTitle(cells[current].Start, lastDayOf(cells, end), cfg.CardSplitUnit, size),
			StartIndex: current,
			EndIndex:   end,
			Cells:      cells[current:end],
		})
		current = end
	}
	return cards
}

// cardEndIndex returns the first index whose cell starts at or after the
// card's target date, or len(cells). The result is always > start.
func cardEndIndex(start int, cells []Cell, unit domain.CardSplitUnit, size int) int {
	from := cells[start].Start
	var target time.Time
	switch unit {
	case domain.SplitYear:
		target = AddMonths(from, 12*size)
	case domain.SplitHalfYear:
		target = AddMonths(from, 6*size)
	case domain.SplitQuarter:
		target = AddMonths(from, 3*size)
	default:
		target = AddMonths(from, size)
	}

	for i := start + 1; i < len(cells); i++ {
		if !cells[i].Start.Before(target) {
			return i
		}
	}
	return len(cells)
}

// lastDayOf returns the last calendar day covered by cells[:end]. Inner cell
// ends are exclusive boundaries; the final cell end is the inclusive config end.
func lastDayOf(cells []Cell, end int) time.Time {
	if end < len(cells) {
		return cells[end].Start.AddDate(0, 0, -1)
	}
	return cells[len(cells)-1].End
}

func cardTitle(start, last time.Time, unit domain.CardSplitUnit, size int) string {
	if unit == domain.SplitYear {
		if size == 1 {
			return start.Format("2006")
		}
		return fmt.Sprintf("%s - %s", start.Format("2006"), last.Format("2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2006"), last.Format("Jan 2006"))
}
