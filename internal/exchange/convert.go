package exchange

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/plangrid/internal/calendar"
	"github.com/alexanderramin/plangrid/internal/domain"
)

// legacyPalette colors groups created from legacy axes, cycling by discovery order.
var legacyPalette = []string{
	"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6",
	"#06b6d4", "#ec4899", "#84cc16", "#f97316", "#6366f1",
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	slugInvalid   = regexp.MustCompile(`[^a-z0-9-]`)
)

// ConfigDTO converts a timeline config to its wire form.
func ConfigDTO(c domain.TimelineConfig) TimelineConfigDTO {
	step, size := c.Step, c.CardSplitSize
	return TimelineConfigDTO{
		StartDate:     domain.FormatDate(c.StartDate),
		EndDate:       domain.FormatDate(c.EndDate),
		Granularity:   string(c.Granularity),
		Step:          &step,
		CardSplitUnit: string(c.CardSplitUnit),
		CardSplitSize: &size,
		LabelFormat:   c.LabelFormat,
		SnapMode:      string(c.SnapMode),
	}
}

// Patch converts the present fields of d into a config patch.
func (d TimelineConfigDTO) Patch() (domain.TimelineConfigPatch, error) {
	var p domain.TimelineConfigPatch
	if d.StartDate != "" {
		t, err := domain.ParseDate(d.StartDate)
		if err != nil {
			return p, fmt.Errorf("timelineConfig.startDate: %w", err)
		}
		p.StartDate = &t
	}
	if d.EndDate != "" {
		t, err := domain.ParseDate(d.EndDate)
		if err != nil {
			return p, fmt.Errorf("timelineConfig.endDate: %w", err)
		}
		p.EndDate = &t
	}
	if d.Granularity != "" {
		g := domain.Granularity(d.Granularity)
		p.Granularity = &g
	}
	p.Step = d.Step
	if d.CardSplitUnit != "" {
		u := domain.CardSplitUnit(d.CardSplitUnit)
		p.CardSplitUnit = &u
	}
	p.CardSplitSize = d.CardSplitSize
	if d.LabelFormat != "" {
		p.LabelFormat = &d.LabelFormat
	}
	if d.SnapMode != "" {
		m := domain.SnapMode(d.SnapMode)
		p.SnapMode = &m
	}
	return p, nil
}

// Config converts d to a full config, taking missing fields from base.
func (d TimelineConfigDTO) Config(base domain.TimelineConfig) (domain.TimelineConfig, error) {
	p, err := d.Patch()
	if err != nil {
		return domain.TimelineConfig{}, err
	}
	cfg := base.Merge(p)
	cfg.Step = domain.IntFromPtrWithDefault(base.Step, d.Step)
	cfg.CardSplitSize = domain.IntFromPtrWithDefault(base.CardSplitSize, d.CardSplitSize)
	return cfg, nil
}

// ProjectDTOs converts projects to their wire form.
func ProjectDTOs(projects []domain.Project) []ProjectDTO {
	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectDTO{
			ID:            p.ID,
			Code:          p.Code,
			Name:          p.Name,
			GroupID:       p.GroupID,
			StartDate:     domain.FormatDate(p.StartDate),
			EndDate:       domain.FormatDate(p.EndDate),
			Row:           p.Row,
			ColorOverride: p.ColorOverride,
		})
	}
	return out
}

// GroupDTOs converts groups to their wire form.
func GroupDTOs(groups []domain.Group) []GroupDTO {
	out := make([]GroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupDTO{ID: g.ID, Name: g.Name, Color: g.Color})
	}
	return out
}

// Project converts d to a domain project.
func (d ProjectDTO) Project() (domain.Project, error) {
	start, err := domain.ParseDate(d.StartDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := domain.ParseDate(d.EndDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("endDate: %w", err)
	}
	return domain.Project{
		ID:            d.ID,
		Code:          d.Code,
		Name:          d.Name,
		GroupID:       d.GroupID,
		StartDate:     start,
		EndDate:       end,
		Row:           d.Row,
		ColorOverride: d.ColorOverride,
	}, nil
}

func projectsFromDTOs(dtos []ProjectDTO) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(dtos))
	for i, d := range dtos {
		p, err := d.Project()
		if err != nil {
			return nil, fmt.Errorf("projects[%d]: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func groupsFromDTOs(dtos []GroupDTO) []domain.Group {
	out := make([]domain.Group, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Group{ID: d.ID, Name: d.Name, Color: d.Color})
	}
	return out
}

// GroupSlug returns the group id derived from a legacy axis name. Names
// with no usable characters give plain "group".
func GroupSlug(axis string) string {
	s := whitespaceRun.ReplaceAllString(strings.ToLower(axis), "-")
	s = slugInvalid.ReplaceAllString(s, "")
	if strings.Trim(s, "-") == "" {
		return "group"
	}
	return "group-" + s
}

// uniqueSlug returns GroupSlug(axis), suffixed with -2, -3, ... until it is
// not in taken, and records the result.
func uniqueSlug(axis string, taken map[string]bool) string {
	base := GroupSlug(axis)
	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	taken[id] = true
	return id
}

// ConvertLegacy turns validated legacy entries into groups and projects.
// Each distinct axis becomes a group with its own id, even when two axis
// names slug the same. Rows count up per axis from 0. Call validateLegacy
// first.
func ConvertLegacy(entries []LegacyEntry) ([]domain.Group, []domain.Project) {
	var groups []domain.Group
	groupIDs := make(map[string]string)
	taken := make(map[string]bool)
	rows := make(map[string]int)
	projects := make([]domain.Project, 0, len(entries))

	for i, e := range entries {
		id, ok := groupIDs[e.Axis]
		if !ok {
			id = uniqueSlug(e.Axis, taken)
			groupIDs[e.Axis] = id
			groups = append(groups, domain.Group{
				ID:    id,
				Name:  e.Axis,
				Color: legacyPalette[len(groups)%len(legacyPalette)],
			})
		}

		row := rows[e.Axis]
		rows[e.Axis] = row + 1

		projects = append(projects, domain.Project{
			ID:        fmt.Sprintf("legacy-%d", i),
			Code:      e.Code,
			Name:      e.Name,
			GroupID:   id,
			StartDate: quarterStart(*e.Start),
			EndDate:   quarterEnd(*e.End),
			Row:       row,
		})
	}
	return groups, projects
}

func quarterStart(q LegacyQuarter) time.Time {
	return calendar.PeriodStart(calendar.Period{Year: q.Y, Quarter: q.Q}, domain.GranularityQuarter)
}

func quarterEnd(q LegacyQuarter) time.Time {
	return calendar.PeriodEnd(calendar.Period{Year: q.Y, Quarter: q.Q}, domain.GranularityQuarter)
}
