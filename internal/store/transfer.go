package store

import (
	"context"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/exchange"
)

// ImportResult summarizes an import.
type ImportResult struct {
	Format   exchange.Format
	Projects int
	Groups   int
}

// Import replaces the active planning's content with an import document.
// Application documents apply their config, replace groups when they carry
// any, and re-add every project so it is snapped. Legacy documents get fresh
// group and project ids. A failed import leaves the state unchanged.
func (s *Store) Import(ctx context.Context, data []byte) (result ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import", startedAt, fields, err) }()

	payload, err := exchange.Parse(data)
	if err != nil {
		return ImportResult{}, err
	}
	fields["format"] = string(payload.Format)

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		if payload.Config != nil {
			if _, err := s.applyTimelineConfig(ctx, draft, *payload.Config); err != nil {
				return err
			}
		}

		groups, projects := payload.Groups, payload.Projects
		if payload.Format == exchange.FormatLegacy {
			groups, projects = s.freshIDs(groups, projects)
		}
		if len(groups) > 0 {
			draft.Groups = groups
		}

		draft.Projects = nil
		cells := s.cells(ctx, draft.TimelineConfig)
		for _, p := range projects {
			s.appendProject(ctx, draft, cells, p)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	s.clearSelection()
	result = ImportResult{Format: payload.Format, Projects: len(payload.Projects), Groups: len(payload.Groups)}
	fields["projects"] = result.Projects
	fields["groups"] = result.Groups
	return result, nil
}

// freshIDs assigns new group ids and remaps projects onto them.
func (s *Store) freshIDs(groups []domain.Group, projects []domain.Project) ([]domain.Group, []domain.Project) {
	mapping := make(map[string]string, len(groups))
	outGroups := make([]domain.Group, 0, len(groups))
	for _, g := range groups {
		id := s.id("group")
		mapping[g.ID] = id
		g.ID = id
		outGroups = append(outGroups, g)
	}

	outProjects := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		p.GroupID = mapping[p.GroupID]
		outProjects = append(outProjects, p)
	}
	return outGroups, outProjects
}

// Export returns the export document of the active planning.
func (s *Store) Export() *exchange.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return exchange.NewEnvelope(s.active(), s.now())
}

// Reset restores the active planning to the default config and groups with
// no projects.
func (s *Store) Reset(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "reset", startedAt, nil, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		draft.TimelineConfig = s.defaults
		draft.Groups = domain.DefaultGroups()
		draft.Projects = nil
		return nil
	})
	s.clearSelection()
	return err
}
