package store

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/rdleal/intervalst/interval"
)

// Reconciliation reports where a project landed after a grid change.
type Reconciliation struct {
	ProjectID string
	Start     time.Time
	End       time.Time
	Adjusted  bool
}

// UpdateTimelineConfig merges patch into the active config and re-aligns
// every project to the new grid. An invalid merged config changes nothing.
func (s *Store) UpdateTimelineConfig(ctx context.Context, patch domain.TimelineConfigPatch) (results []Reconciliation, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "update-timeline-config", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		var applyErr error
		results, applyErr = s.applyTimelineConfig(ctx, draft, patch)
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	adjusted := 0
	for _, r := range results {
		if r.Adjusted {
			adjusted++
		}
	}
	fields["projects"] = len(results)
	fields["adjusted"] = adjusted
	return results, nil
}

func (s *Store) applyTimelineConfig(ctx context.Context, draft *domain.Planning, patch domain.TimelineConfigPatch) ([]Reconciliation, error) {
	cfg := draft.TimelineConfig.Merge(patch)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	draft.TimelineConfig = cfg

	cells := s.cells(ctx, cfg)
	results := make([]Reconciliation, 0, len(draft.Projects))
	for i := range draft.Projects {
		p := &draft.Projects[i]
		adj := calendar.Reconcile(p.StartDate, p.EndDate, cells)
		p.StartDate, p.EndDate = adj.Start, adj.End
		results = append(results, Reconciliation{
			ProjectID: p.ID,
			Start:     adj.Start,
			End:       adj.End,
			Adjusted:  adj.Adjusted,
		})
	}
	return results, nil
}

// TimelineConfig returns the active config.
func (s *Store) TimelineConfig() domain.TimelineConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active().TimelineConfig
}

// Cells returns the grid of the active config.
func (s *Store) Cells() []calendar.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells(context.Background(), s.active().TimelineConfig)
}

// Cards returns the active grid split into cards.
func (s *Store) Cards() []calendar.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardsLocked()
}

func (s *Store) cardsLocked() []calendar.Card {
	cfg := s.active().TimelineConfig
	return calendar.SplitIntoCards(s.cells(context.Background(), cfg), cfg)
}

// ProjectsForCard returns the projects whose [start, end) range overlaps the
// card's cell range, in planning order. An unknown index yields none.
func (s *Store) ProjectsForCard(index int) []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.cardsLocked()
	if index < 0 || index >= len(cards) || len(cards[index].Cells) == 0 {
		return nil
	}
	cells := cards[index].Cells
	from, to := cells[0].Start, cells[len(cells)-1].End

	projects := s.active().Projects
	tree := interval.NewSearchTree[int](func(x, y time.Time) int { return x.Compare(y) })
	for i, p := range projects {
		if err := tree.Insert(p.StartDate, p.EndDate, i); err != nil {
			s.logger.Warn("skipping project with invalid range", "project_id", p.ID, "error", err)
		}
	}

	// The tree matches closed intervals; keep only half-open overlaps.
	hits, ok := tree.AllIntersections(from, to)
	if !ok {
		return nil
	}
	sort.Ints(hits)

	var out []domain.Project
	for _, i := range hits {
		p := projects[i]
		if p.StartDate.Before(to) && p.EndDate.After(from) {
			out = append(out, p)
		}
	}
	return out
}

// ProjectColor resolves the display color of p: its override, its group's
// color, the first group's color, or the neutral default.
func (s *Store) ProjectColor(p domain.Project) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ColorOverride != "" {
		return p.ColorOverride
	}
	groups := s.active().Groups
	if idx := s.active().GroupIndex(p.GroupID); idx >= 0 {
		return groups[idx].Color
	}
	if len(groups) > 0 {
		return groups[0].Color
	}
	return domain.DefaultProjectColor
}
