package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/exchange"
)

// NewPlanningName is used when a planning is created without a name.
const NewPlanningName = "New planning"

// PlanningSummary describes one planning for listings.
type PlanningSummary struct {
	ID           string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ProjectCount int
	GroupCount   int
	Active       bool
}

// CreatePlanning adds a planning with the default config and groups and no
// projects, makes it active and returns its id.
func (s *Store) CreatePlanning(ctx context.Context, name string) (id string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": name}
	defer func() { s.observe(ctx, "create-planning", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.newPlanning(domain.CoalesceStr(strings.TrimSpace(name), NewPlanningName))
	s.plannings = append(s.plannings, p)
	s.activate(p.ID)
	s.persist(ctx)
	return p.ID, nil
}

// LoadPlanning makes the planning with the given id active.
func (s *Store) LoadPlanning(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"target_id": id}
	defer func() { s.observe(ctx, "load-planning", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return s.notFound(ctx, domain.ErrPlanningNotFound, id)
	}
	s.activate(id)
	s.persist(ctx)
	return nil
}

// DeletePlanning removes a planning. When it was active the first remaining
// planning is activated, or a fresh default planning when none remain.
func (s *Store) DeletePlanning(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"target_id": id}
	defer func() { s.observe(ctx, "delete-planning", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return s.notFound(ctx, domain.ErrPlanningNotFound, id)
	}
	s.plannings = append(s.plannings[:idx:idx], s.plannings[idx+1:]...)

	if id == s.activeID {
		if len(s.plannings) == 0 {
			s.plannings = []*domain.Planning{s.newPlanning(exchange.DefaultPlanningName)}
		}
		s.activate(s.plannings[0].ID)
		fields["activated"] = s.activeID
	}
	s.persist(ctx)
	return nil
}

// RenamePlanning renames any planning, active or not.
func (s *Store) RenamePlanning(ctx context.Context, id, name string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"target_id": id, "name": name}
	defer func() { s.observe(ctx, "rename-planning", startedAt, fields, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("planning %w", domain.ErrNameRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return s.notFound(ctx, domain.ErrPlanningNotFound, id)
	}
	renamed := s.plannings[idx].Clone()
	renamed.Name = name
	renamed.UpdatedAt = s.now()
	s.plannings[idx] = renamed
	s.persist(ctx)
	return nil
}

// DuplicatePlanning copies a planning under fresh group and project ids,
// keeping every project in the copy of its group, and makes the copy active.
func (s *Store) DuplicatePlanning(ctx context.Context, id, name string) (newID string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"target_id": id}
	defer func() { s.observe(ctx, "duplicate-planning", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return "", s.notFound(ctx, domain.ErrPlanningNotFound, id)
	}
	src := s.plannings[idx]

	dup := s.newPlanning(domain.CoalesceStr(strings.TrimSpace(name), src.Name+" (copy)"))
	dup.TimelineConfig = src.TimelineConfig

	groupIDs := make(map[string]string, len(src.Groups))
	dup.Groups = make([]domain.Group, 0, len(src.Groups))
	for _, g := range src.Groups {
		copied := g
		copied.ID = s.id("group")
		groupIDs[g.ID] = copied.ID
		dup.Groups = append(dup.Groups, copied)
	}

	dup.Projects = make([]domain.Project, 0, len(src.Projects))
	for _, p := range src.Projects {
		copied := p
		copied.ID = s.id("project")
		if mapped, ok := groupIDs[p.GroupID]; ok {
			copied.GroupID = mapped
		} else if len(dup.Groups) > 0 {
			copied.GroupID = dup.Groups[0].ID
		}
		dup.Projects = append(dup.Projects, copied)
	}

	s.plannings = append(s.plannings, dup)
	s.activate(dup.ID)
	s.persist(ctx)

	fields["new_planning_id"] = dup.ID
	return dup.ID, nil
}

// Plannings lists every planning, most recently updated first.
func (s *Store) Plannings() []PlanningSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PlanningSummary, 0, len(s.plannings))
	for _, p := range s.plannings {
		out = append(out, PlanningSummary{
			ID:           p.ID,
			Name:         p.Name,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
			ProjectCount: len(p.Projects),
			GroupCount:   len(p.Groups),
			Active:       p.ID == s.activeID,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// ActivePlanningID returns the id of the active planning.
func (s *Store) ActivePlanningID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// CurrentPlanning returns a copy of the active planning.
func (s *Store) CurrentPlanning() *domain.Planning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active().Clone()
}

func (s *Store) activate(id string) {
	s.activeID = id
	s.clearSelection()
}
