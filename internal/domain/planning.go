package domain

import "time"

// DefaultProjectColor is used when neither the project nor any group provides a color.
const DefaultProjectColor = "#6b7280"

type Group struct {
	ID    string
	Name  string
	Color string
}

// GroupPatch is a partial Group update; nil fields are left untouched.
type GroupPatch struct {
	Name  *string
	Color *string
}

type Project struct {
	ID            string
	Code          string
	Name          string
	GroupID       string
	StartDate     time.Time
	EndDate       time.Time
	Row           int
	ColorOverride string
}

// ProjectPatch is a partial Project update; nil fields are left untouched.
type ProjectPatch struct {
	Code          *string
	Name          *string
	GroupID       *string
	StartDate     *time.Time
	EndDate       *time.Time
	Row           *int
	ColorOverride *string
}

// Apply returns p with every non-nil field of patch applied.
func (p Project) Apply(patch ProjectPatch) Project {
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.GroupID != nil {
		p.GroupID = *patch.GroupID
	}
	if patch.StartDate != nil {
		p.StartDate = TruncateDay(*patch.StartDate)
	}
	if patch.EndDate != nil {
		p.EndDate = TruncateDay(*patch.EndDate)
	}
	if patch.Row != nil {
		p.Row = *patch.Row
	}
	if patch.ColorOverride != nil {
		p.ColorOverride = *patch.ColorOverride
	}
	return p
}

// Planning is one named layout: a grid configuration with its projects and groups.
type Planning struct {
	ID             string
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	TimelineConfig TimelineConfig
	Projects       []Project
	Groups         []Group
}

// Clone returns a deep copy of p.
func (p *Planning) Clone() *Planning {
	if p == nil {
		return nil
	}
	c := *p
	c.Projects = append([]Project(nil), p.Projects...)
	c.Groups = append([]Group(nil), p.Groups...)
	return &c
}

// GroupIndex returns the position of the group with the given id, or -1.
func (p *Planning) GroupIndex(id string) int {
	for i := range p.Groups {
		if p.Groups[i].ID == id {
			return i
		}
	}
	return -1
}

// ProjectIndex returns the position of the project with the given id, or -1.
func (p *Planning) ProjectIndex(id string) int {
	for i := range p.Projects {
		if p.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// DefaultGroups returns the groups every new planning starts with.
func DefaultGroups() []Group {
	return []Group{
		{ID: "group-1", Name: "Data quality", Color: "#d9c890"},
		{ID: "group-2", Name: "Tenant relations", Color: "#bcd7f2"},
		{ID: "group-3", Name: "IS rationalization", Color: "#c5e6d2"},
		{ID: "group-4", Name: "Employee efficiency", Color: "#f2c7c7"},
	}
}
