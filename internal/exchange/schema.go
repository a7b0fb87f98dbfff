package exchange

import (
	"fmt"
	"os"
)

// Version is written into every export envelope.
const Version = "1.0"

// TimelineConfigDTO is the wire form of a timeline config. Dates are YYYY-MM-DD.
type TimelineConfigDTO struct {
	StartDate     string `json:"startDate" yaml:"startDate"`
	EndDate       string `json:"endDate" yaml:"endDate"`
	Granularity   string `json:"granularity" yaml:"granularity"`
	Step          *int   `json:"step,omitempty" yaml:"step,omitempty"`
	CardSplitUnit string `json:"cardSplitUnit,omitempty" yaml:"cardSplitUnit,omitempty"`
	CardSplitSize *int   `json:"cardSplitSize,omitempty" yaml:"cardSplitSize,omitempty"`
	LabelFormat   string `json:"labelFormat,omitempty" yaml:"labelFormat,omitempty"`
	SnapMode      string `json:"snapMode,omitempty" yaml:"snapMode,omitempty"`
}

// ProjectDTO is the wire form of a project.
type ProjectDTO struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	Code          string `json:"code,omitempty" yaml:"code,omitempty"`
	Name          string `json:"name" yaml:"name"`
	GroupID       string `json:"groupId" yaml:"groupId"`
	StartDate     string `json:"startDate" yaml:"startDate"`
	EndDate       string `json:"endDate" yaml:"endDate"`
	Row           int    `json:"row" yaml:"row"`
	ColorOverride string `json:"colorOverride,omitempty" yaml:"colorOverride,omitempty"`
}

// GroupDTO is the wire form of a group.
type GroupDTO struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Envelope is the export file format and the application import format.
type Envelope struct {
	TimelineConfig *TimelineConfigDTO `json:"timelineConfig,omitempty" yaml:"timelineConfig,omitempty"`
	Projects       []ProjectDTO       `json:"projects" yaml:"projects"`
	Groups         []GroupDTO         `json:"groups" yaml:"groups"`
	ExportDate     string             `json:"exportDate,omitempty" yaml:"exportDate,omitempty"`
	Version        string             `json:"version,omitempty" yaml:"version,omitempty"`
}

// LegacyQuarter is a {year, quarter} pair of the legacy format.
type LegacyQuarter struct {
	Y int `json:"y"`
	Q int `json:"q"`
}

// LegacyEntry is one element of the legacy array format.
type LegacyEntry struct {
	Axis  string         `json:"axis"`
	Code  string         `json:"code,omitempty"`
	Name  string         `json:"name"`
	Start *LegacyQuarter `json:"start"`
	End   *LegacyQuarter `json:"end"`
}

// PlanningDTO is one planning inside the persisted state record.
type PlanningDTO struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
	TimelineConfig TimelineConfigDTO `json:"timelineConfig"`
	Projects       []ProjectDTO      `json:"projects"`
	Groups         []GroupDTO        `json:"groups"`
}

// StateDTO is the persisted state record. TimelineConfig, Projects and Groups
// repeat the active planning so records stay readable by single-planning versions.
type StateDTO struct {
	Version           int                `json:"version"`
	Plannings         []PlanningDTO      `json:"plannings,omitempty"`
	CurrentPlanningID string             `json:"currentPlanningId,omitempty"`
	TimelineConfig    *TimelineConfigDTO `json:"timelineConfig,omitempty"`
	Projects          []ProjectDTO       `json:"projects,omitempty"`
	Groups            []GroupDTO         `json:"groups,omitempty"`
}

// LoadFile reads and parses an import file.
func LoadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return Parse(data)
}
