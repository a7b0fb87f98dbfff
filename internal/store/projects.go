package store

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
)

// AddProject snaps the project's dates to the active grid, guarantees a
// minimum one-cell duration, replaces an unknown group with the first
// group, assigns a fresh id and appends it.
func (s *Store) AddProject(ctx context.Context, in domain.Project) (created domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": in.Name}
	defer func() { s.observe(ctx, "add-project", startedAt, fields, err) }()

	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return domain.Project{}, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidProject)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		cells := s.cells(ctx, draft.TimelineConfig)
		created = s.appendProject(ctx, draft, cells, in)
		return nil
	})
	fields["project_id"] = created.ID
	return created, err
}

// appendProject places p on cells and appends it to draft under a fresh id.
func (s *Store) appendProject(ctx context.Context, draft *domain.Planning, cells []calendar.Cell, p domain.Project) domain.Project {
	p.StartDate = domain.TruncateDay(p.StartDate)
	p.EndDate = domain.TruncateDay(p.EndDate)
	p = s.place(ctx, draft, cells, p, true, true)
	p.ID = s.id("project")
	draft.Projects = append(draft.Projects, p)
	return p
}

// place aligns p to cells. Only the requested endpoints are snapped; the
// duration and group rules always apply.
func (s *Store) place(ctx context.Context, draft *domain.Planning, cells []calendar.Cell, p domain.Project, snapStart, snapEnd bool) domain.Project {
	mode := draft.TimelineConfig.EffectiveSnapMode()
	if snapStart {
		p.StartDate = calendar.Snap(p.StartDate, cells, mode)
	}
	if snapEnd {
		p.EndDate = calendar.Snap(p.EndDate, cells, mode)
	}
	if !p.EndDate.After(p.StartDate) {
		p.EndDate = calendar.ExtendOneCell(p.StartDate, cells)
	}
	p.StartDate, p.EndDate = calendar.FitMinSpan(p.StartDate, p.EndDate, cells)
	p.GroupID = s.validGroupID(ctx, draft, p.GroupID)
	return p
}

// validGroupID returns id when it names a group of draft, else the first group.
func (s *Store) validGroupID(ctx context.Context, draft *domain.Planning, id string) string {
	if draft.GroupIndex(id) >= 0 || len(draft.Groups) == 0 {
		return id
	}
	s.logger.DebugContext(ctx, "substituting unknown group", "group_id", id, "replacement", draft.Groups[0].ID)
	return draft.Groups[0].ID
}

// UpdateProject applies patch to a project. Dates present in the patch are
// re-snapped and the minimum duration is enforced.
func (s *Store) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) (domain.Project, error) {
	return s.updateProject(ctx, "update-project", id, patch, false)
}

// MoveProject sets a project's dates and row.
func (s *Store) MoveProject(ctx context.Context, id string, start, end time.Time, row int) (domain.Project, error) {
	return s.updateProject(ctx, "move-project", id, domain.ProjectPatch{
		StartDate: &start,
		EndDate:   &end,
		Row:       &row,
	}, false)
}

// ResizeProject sets a project's dates. An end closer to start than one cell
// is pushed out before snapping.
func (s *Store) ResizeProject(ctx context.Context, id string, start, end time.Time) (domain.Project, error) {
	return s.updateProject(ctx, "resize-project", id, domain.ProjectPatch{
		StartDate: &start,
		EndDate:   &end,
	}, true)
}

func (s *Store) updateProject(ctx context.Context, useCase, id string, patch domain.ProjectPatch, forceMin bool) (updated domain.Project, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { s.observe(ctx, useCase, startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		idx := draft.ProjectIndex(id)
		if idx < 0 {
			return s.notFound(ctx, domain.ErrProjectNotFound, id)
		}

		cells := s.cells(ctx, draft.TimelineConfig)
		if forceMin && patch.StartDate != nil && patch.EndDate != nil {
			start := domain.TruncateDay(*patch.StartDate)
			minEnd := start.Add(calendar.MinCellDuration(cells))
			if domain.TruncateDay(*patch.EndDate).Before(minEnd) {
				patch.EndDate = &minEnd
			}
		}

		p := draft.Projects[idx].Apply(patch)
		p = s.place(ctx, draft, cells, p, patch.StartDate != nil, patch.EndDate != nil)
		draft.Projects[idx] = p
		updated = p
		return nil
	})
	return updated, err
}

// DeleteProject removes a project and clears the selection if it pointed at it.
func (s *Store) DeleteProject(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": id}
	defer func() { s.observe(ctx, "delete-project", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		idx := draft.ProjectIndex(id)
		if idx < 0 {
			return s.notFound(ctx, domain.ErrProjectNotFound, id)
		}
		draft.Projects = append(draft.Projects[:idx:idx], draft.Projects[idx+1:]...)
		return nil
	})
	if err == nil && s.selectedProjectID == id {
		s.selectedProjectID = ""
	}
	return err
}

// Projects returns the projects of the active planning.
func (s *Store) Projects() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Project(nil), s.active().Projects...)
}

// Project returns the project with the given id in the active planning.
func (s *Store) Project(id string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	if idx := p.ProjectIndex(id); idx >= 0 {
		return p.Projects[idx], true
	}
	return domain.Project{}, false
}
