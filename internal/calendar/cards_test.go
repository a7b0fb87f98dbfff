package calendar

import (
	"testing"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func TestSplitIntoCards_DefaultYearly(t *testing.T) {
	cfg := domain.DefaultTimelineConfig()
	cells := BuildCells(cfg).Cells
	require.Len(t, cells, 16)

	cards := SplitIntoCards(cells, cfg)

	assert.Equal(t, []string{"2026", "2027", "2028", "2029"}, titles(cards))
	for i, card := range cards {
		assert.Equal(t, i*4, card.StartIndex)
		assert.Equal(t, i*4+4, card.EndIndex)
		assert.Len(t, card.Cells, 4)
	}
}

func TestSplitIntoCards_Variants(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func() domain.TimelineConfig
		titles []string
		bounds [][2]int
	}{
		{
			name: "no split",
			cfg: func() domain.TimelineConfig {
				cfg := domain.DefaultTimelineConfig()
				cfg.CardSplitUnit = domain.SplitNone
				return cfg
			},
			titles: []string{"2026 - 2029"},
			bounds: [][2]int{{0, 16}},
		},
		{
			name: "two years per card",
			cfg: func() domain.TimelineConfig {
				cfg := domain.DefaultTimelineConfig()
				cfg.CardSplitSize = 2
				return cfg
			},
			titles: []string{"2026 - 2027", "2028 - 2029"},
			bounds: [][2]int{{0, 8}, {8, 16}},
		},
		{
			name: "six months of quarters",
			cfg: func() domain.TimelineConfig {
				cfg := gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityQuarter, 1)
				cfg.CardSplitUnit = domain.SplitMonth
				cfg.CardSplitSize = 6
				return cfg
			},
			titles: []string{"Jan 2026 - Jun 2026", "Jul 2026 - Dec 2026"},
			bounds: [][2]int{{0, 2}, {2, 4}},
		},
		{
			name: "quarters of months",
			cfg: func() domain.TimelineConfig {
				cfg := gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityMonth, 1)
				cfg.CardSplitUnit = domain.SplitQuarter
				return cfg
			},
			titles: []string{"Jan 2026 - Mar 2026", "Apr 2026 - Jun 2026", "Jul 2026 - Sep 2026", "Oct 2026 - Dec 2026"},
			bounds: [][2]int{{0, 3}, {3, 6}, {6, 9}, {9, 12}},
		},
		{
			name: "unknown unit behaves as none",
			cfg: func() domain.TimelineConfig {
				cfg := gridConfig(t, "2026-01-01", "2026-12-31", domain.GranularityQuarter, 1)
				cfg.CardSplitUnit = "decade"
				return cfg
			},
			titles: []string{"2026 - 2026"},
			bounds: [][2]int{{0, 4}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg()
			cards := SplitIntoCards(BuildCells(cfg).Cells, cfg)

			assert.Equal(t, tc.titles, titles(cards))
			require.Len(t, cards, len(tc.bounds))
			for i, b := range tc.bounds {
				assert.Equal(t, b[0], cards[i].StartIndex)
				assert.Equal(t, b[1], cards[i].EndIndex)
			}
		})
	}
}

func TestSplitIntoCards_EmptyCells(t *testing.T) {
	cfg := domain.DefaultTimelineConfig()
	cards := SplitIntoCards(nil, cfg)

	require.Len(t, cards, 1)
	assert.Equal(t, 0, cards[0].StartIndex)
	assert.Equal(t, 0, cards[0].EndIndex)
}

func TestSplitIntoCards_Partition(t *testing.T) {
	units := []domain.CardSplitUnit{domain.SplitMonth, domain.SplitQuarter, domain.SplitHalfYear, domain.SplitYear}
	grans := []domain.Granularity{domain.GranularityWeek, domain.GranularityMonth, domain.GranularityQuarter}

	for _, g := range grans {
		for _, unit := range units {
			for size := 1; size <= 3; size++ {
				cfg := gridConfig(t, "2026-01-05", "2028-11-20", g, 1)
				cfg.CardSplitUnit = unit
				cfg.CardSplitSize = size
				cells := BuildCells(cfg).Cells

				cards := SplitIntoCards(cells, cfg)

				require.NotEmpty(t, cards)
				assert.Equal(t, 0, cards[0].StartIndex)
				assert.Equal(t, len(cells), cards[len(cards)-1].EndIndex)
				for i, card := range cards {
					assert.Less(t, card.StartIndex, card.EndIndex, "%s/%s/%d card %d empty", g, unit, size, i)
					if i > 0 {
						assert.Equal(t, cards[i-1].EndIndex, card.StartIndex)
					}
				}
			}
		}
	}
}
