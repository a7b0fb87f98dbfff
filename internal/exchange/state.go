package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// StateVersion is the schema version of persisted state records.
// Version 1 records carry a single planning's fields and no planning list.
const StateVersion = 2

// DefaultPlanningID and DefaultPlanningName identify the planning rebuilt
// from a version 1 record.
const (
	DefaultPlanningID   = "planning-default"
	DefaultPlanningName = "Default planning"
)

// State is the decoded persisted state.
type State struct {
	Plannings []*domain.Planning
	ActiveID  string
}

// EncodeState serializes s. The active planning's config, projects and groups
// are repeated at the top level.
func EncodeState(s State) ([]byte, error) {
	dto := StateDTO{
		Version:           StateVersion,
		CurrentPlanningID: s.ActiveID,
		Plannings:         make([]PlanningDTO, 0, len(s.Plannings)),
	}
	for _, p := range s.Plannings {
		dto.Plannings = append(dto.Plannings, PlanningDTO{
			ID:             p.ID,
			Name:           p.Name,
			CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339),
			TimelineConfig: ConfigDTO(p.TimelineConfig),
			Projects:       ProjectDTOs(p.Projects),
			Groups:         GroupDTOs(p.Groups),
		})
		if p.ID == s.ActiveID {
			cfg := ConfigDTO(p.TimelineConfig)
			dto.TimelineConfig = &cfg
			dto.Projects = ProjectDTOs(p.Projects)
			dto.Groups = GroupDTOs(p.Groups)
		}
	}

	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// DecodeState parses a persisted record. Missing config fields fall back to
// defaults. A record without a planning list becomes a single planning.
func DecodeState(data []byte, defaults domain.TimelineConfig) (State, error) {
	var dto StateDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return State{}, fmt.Errorf("decoding state: %w", err)
	}

	if len(dto.Plannings) == 0 {
		if dto.TimelineConfig == nil && len(dto.Projects) == 0 && len(dto.Groups) == 0 {
			return State{}, nil
		}
		legacy := PlanningDTO{
			ID:       DefaultPlanningID,
			Name:     DefaultPlanningName,
			Projects: dto.Projects,
			Groups:   dto.Groups,
		}
		if dto.TimelineConfig != nil {
			legacy.TimelineConfig = *dto.TimelineConfig
		}
		dto.Plannings = []PlanningDTO{legacy}
		dto.CurrentPlanningID = DefaultPlanningID
	}

	state := State{ActiveID: dto.CurrentPlanningID}
	for i, pd := range dto.Plannings {
		p, err := pd.planning(defaults)
		if err != nil {
			return State{}, fmt.Errorf("decoding state: plannings[%d]: %w", i, err)
		}
		state.Plannings = append(state.Plannings, p)
	}
	return state, nil
}

func (d PlanningDTO) planning(defaults domain.TimelineConfig) (*domain.Planning, error) {
	cfg, err := d.TimelineConfig.Config(defaults)
	if err != nil {
		return nil, err
	}
	projects, err := projectsFromDTOs(d.Projects)
	if err != nil {
		return nil, err
	}
	groups := groupsFromDTOs(d.Groups)
	if len(groups) == 0 {
		groups = domain.DefaultGroups()
	}
	return &domain.Planning{
		ID:             domain.CoalesceStr(d.ID, DefaultPlanningID),
		Name:           domain.CoalesceStr(d.Name, DefaultPlanningName),
		CreatedAt:      parseTimestamp(d.CreatedAt),
		UpdatedAt:      parseTimestamp(d.UpdatedAt),
		TimelineConfig: cfg,
		Projects:       projects,
		Groups:         groups,
	}, nil
}

// parseTimestamp returns the zero time for missing or malformed values.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
