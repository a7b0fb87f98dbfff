package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// AddGroup appends a group to the active planning. An empty color falls back
// to the neutral default.
func (s *Store) AddGroup(ctx context.Context, name, color string) (created domain.Group, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": name}
	defer func() { s.observe(ctx, "add-group", startedAt, fields, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Group{}, fmt.Errorf("group %w", domain.ErrNameRequired)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		created = domain.Group{
			ID:    s.id("group"),
			Name:  name,
			Color: domain.CoalesceStr(strings.TrimSpace(color), domain.DefaultProjectColor),
		}
		draft.Groups = append(draft.Groups, created)
		return nil
	})
	fields["group_id"] = created.ID
	return created, err
}

// UpdateGroup merges patch into a group.
func (s *Store) UpdateGroup(ctx context.Context, id string, patch domain.GroupPatch) (updated domain.Group, err error) {
	startedAt := time.Now()
	fields := map[string]any{"group_id": id}
	defer func() { s.observe(ctx, "update-group", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.updateActive(ctx, func(draft *domain.Planning) error {
		idx := draft.GroupIndex(id)
		if idx < 0 {
			return s.notFound(ctx, domain.ErrGroupNotFound, id)
		}
		g := draft.Groups[idx]
		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				return fmt.Errorf("group %w", domain.ErrNameRequired)
			}
			g.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Color != nil {
			g.Color = domain.CoalesceStr(strings.TrimSpace(*patch.Color), g.Color)
		}
		draft.Groups[idx] = g
		updated = g
		return nil
	})
	return updated, err
}

// DeleteGroup removes a group and moves its projects to the first remaining
// group. The last group cannot be deleted.
func (s *Store) DeleteGroup(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"group_id": id}
	defer func() { s.observe(ctx, "delete-group", startedAt, fields, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateActive(ctx, func(draft *domain.Planning) error {
		idx := draft.GroupIndex(id)
		if idx < 0 {
			return s.notFound(ctx, domain.ErrGroupNotFound, id)
		}
		if len(draft.Groups) == 1 {
			return domain.ErrLastGroup
		}

		draft.Groups = append(draft.Groups[:idx:idx], draft.Groups[idx+1:]...)
		fallback := draft.Groups[0].ID
		reassigned := 0
		for i := range draft.Projects {
			if draft.Projects[i].GroupID == id {
				draft.Projects[i].GroupID = fallback
				reassigned++
			}
		}
		fields["reassigned"] = reassigned
		return nil
	})
}

// Groups returns the groups of the active planning.
func (s *Store) Groups() []domain.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Group(nil), s.active().Groups...)
}

// Group returns the group with the given id in the active planning.
func (s *Store) Group(id string) (domain.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.active()
	if idx := p.GroupIndex(id); idx >= 0 {
		return p.Groups[idx], true
	}
	return domain.Group{}, false
}
