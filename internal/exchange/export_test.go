package exchange

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func samplePlanning() *domain.Planning {
	return &domain.Planning{
		ID:             "planning-1",
		Name:           "Roadmap",
		CreatedAt:      time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC),
		TimelineConfig: domain.DefaultTimelineConfig(),
		Groups:         domain.DefaultGroups(),
		Projects: []domain.Project{{
			ID:        "project-1",
			Code:      "DQ-01",
			Name:      "Referential cleanup",
			GroupID:   "group-1",
			StartDate: domain.Date(2026, 1, 1),
			EndDate:   domain.Date(2026, 7, 1),
			Row:       2,
		}},
	}
}

func TestEnvelope_JSON(t *testing.T) {
	exportedAt := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	data, err := NewEnvelope(samplePlanning(), exportedAt).JSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "1.0", raw["version"])
	assert.Equal(t, "2026-03-04T05:06:07Z", raw["exportDate"])

	cfg := raw["timelineConfig"].(map[string]any)
	assert.Equal(t, "2026-01-01", cfg["startDate"])
	assert.Equal(t, "quarter", cfg["granularity"])

	projects := raw["projects"].([]any)
	require.Len(t, projects, 1)
	p := projects[0].(map[string]any)
	assert.Equal(t, "group-1", p["groupId"])
	assert.Equal(t, "2026-07-01", p["endDate"])
	assert.NotContains(t, p, "colorOverride")
}

func TestEnvelope_ReimportsAsApplicationFormat(t *testing.T) {
	data, err := NewEnvelope(samplePlanning(), time.Now()).JSON()
	require.NoError(t, err)

	payload, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, FormatApplication, payload.Format)
	assert.Equal(t, samplePlanning().Projects, payload.Projects)
	assert.Equal(t, samplePlanning().Groups, payload.Groups)
	require.NotNil(t, payload.Config)
	assert.Equal(t, domain.DefaultTimelineConfig(), domain.DefaultTimelineConfig().Merge(*payload.Config))
}

func TestEnvelope_YAML(t *testing.T) {
	data, err := NewEnvelope(samplePlanning(), time.Now()).YAML()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "1.0", raw["version"])
	assert.Len(t, raw["groups"], 4)
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1767225600123)
	assert.Equal(t, "planning-export-1767225600123.json", FileName(ts, "json"))
}
