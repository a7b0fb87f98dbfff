package exchange

import (
	"testing"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LegacySingleEntry(t *testing.T) {
	data := `[{"axis":"Finance","name":"Audit","start":{"y":2026,"q":1},"end":{"y":2026,"q":2}}]`

	payload, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, FormatLegacy, payload.Format)
	require.Len(t, payload.Groups, 1)
	assert.Equal(t, "Finance", payload.Groups[0].Name)
	assert.Equal(t, "group-finance", payload.Groups[0].ID)
	assert.Equal(t, "#3b82f6", payload.Groups[0].Color)

	require.Len(t, payload.Projects, 1)
	p := payload.Projects[0]
	assert.Equal(t, "Audit", p.Name)
	assert.Equal(t, 0, p.Row)
	assert.Equal(t, "group-finance", p.GroupID)
	assert.Equal(t, domain.Date(2026, 1, 1), p.StartDate)
	assert.Equal(t, domain.Date(2026, 6, 30), p.EndDate)
}

func TestParse_LegacyAxesAndRows(t *testing.T) {
	data := `[
		{"axis":"Data Quality","code":"DQ1","name":"A","start":{"y":2026,"q":1},"end":{"y":2026,"q":4}},
		{"axis":"Tenant & Co","name":"B","start":{"y":2027,"q":2},"end":{"y":2027,"q":3}},
		{"axis":"Data Quality","name":"C","start":{"y":2028,"q":3},"end":{"y":2028,"q":1}}
	]`

	payload, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, payload.Groups, 2)
	assert.Equal(t, "group-data-quality", payload.Groups[0].ID)
	assert.Equal(t, "group-tenant--co", payload.Groups[1].ID)
	assert.Equal(t, "#10b981", payload.Groups[1].Color)

	require.Len(t, payload.Projects, 3)
	assert.Equal(t, "DQ1", payload.Projects[0].Code)
	assert.Equal(t, domain.Date(2026, 12, 31), payload.Projects[0].EndDate)
	assert.Equal(t, 0, payload.Projects[1].Row)
	assert.Equal(t, 1, payload.Projects[2].Row)
	assert.Equal(t, domain.Date(2027, 4, 1), payload.Projects[1].StartDate)
	assert.Equal(t, domain.Date(2027, 9, 30), payload.Projects[1].EndDate)
}

func TestParse_LegacyCollidingSlugsStayDistinct(t *testing.T) {
	data := `[
		{"axis":"R&D","name":"A","start":{"y":2026,"q":1},"end":{"y":2026,"q":1}},
		{"axis":"RD","name":"B","start":{"y":2026,"q":2},"end":{"y":2026,"q":2}},
		{"axis":"研究","name":"C","start":{"y":2026,"q":3},"end":{"y":2026,"q":3}},
		{"axis":"開発","name":"D","start":{"y":2026,"q":4},"end":{"y":2026,"q":4}},
		{"axis":"R&D","name":"E","start":{"y":2027,"q":1},"end":{"y":2027,"q":1}}
	]`

	payload, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, payload.Groups, 4)
	ids := []string{payload.Groups[0].ID, payload.Groups[1].ID, payload.Groups[2].ID, payload.Groups[3].ID}
	assert.Equal(t, []string{"group-rd", "group-rd-2", "group", "group-2"}, ids)

	byName := make(map[string]string)
	for _, g := range payload.Groups {
		byName[g.Name] = g.ID
	}
	want := map[string]string{"A": "R&D", "B": "RD", "C": "研究", "D": "開発", "E": "R&D"}
	for _, p := range payload.Projects {
		assert.Equal(t, byName[want[p.Name]], p.GroupID, p.Name)
	}
	assert.Equal(t, 1, payload.Projects[4].Row)
	assert.Equal(t, 0, payload.Projects[1].Row)
}

func TestParse_LegacyPaletteCycles(t *testing.T) {
	data := "["
	for i := 0; i < 11; i++ {
		if i > 0 {
			data += ","
		}
		data += `{"axis":"axis` + string(rune('a'+i)) + `","name":"p","start":{"y":2026,"q":1},"end":{"y":2026,"q":1}}`
	}
	data += "]"

	payload, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Len(t, payload.Groups, 11)
	assert.Equal(t, "#6366f1", payload.Groups[9].Color)
	assert.Equal(t, payload.Groups[0].Color, payload.Groups[10].Color)
}

func TestParse_Application(t *testing.T) {
	data := `{
		"timelineConfig": {"startDate":"2026-01-01","endDate":"2027-12-31","granularity":"month","step":2},
		"projects": [
			{"id":"p1","name":"Audit","groupId":"g1","startDate":"2026-02-01","endDate":"2026-05-01T00:00:00.000Z","row":3,"colorOverride":"#000000"}
		],
		"groups": [{"id":"g1","name":"Finance","color":"#ff0000"}],
		"exportDate": "2026-03-01T10:00:00Z",
		"version": "1.0"
	}`

	payload, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, FormatApplication, payload.Format)
	require.NotNil(t, payload.Config)
	require.NotNil(t, payload.Config.Granularity)
	assert.Equal(t, domain.GranularityMonth, *payload.Config.Granularity)
	require.NotNil(t, payload.Config.Step)
	assert.Equal(t, 2, *payload.Config.Step)
	assert.Nil(t, payload.Config.CardSplitUnit)

	require.Len(t, payload.Projects, 1)
	assert.Equal(t, domain.Date(2026, 5, 1), payload.Projects[0].EndDate)
	assert.Equal(t, 3, payload.Projects[0].Row)
	assert.Equal(t, "#000000", payload.Projects[0].ColorOverride)
	assert.Equal(t, []domain.Group{{ID: "g1", Name: "Finance", Color: "#ff0000"}}, payload.Groups)
}

func TestParse_ApplicationWithoutConfig(t *testing.T) {
	payload, err := Parse([]byte(`{"projects": []}`))
	require.NoError(t, err)
	assert.Nil(t, payload.Config)
	assert.Empty(t, payload.Projects)
	assert.Empty(t, payload.Groups)
}

func TestParse_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "  "},
		{"scalar", `42`},
		{"invalid json", `{"projects": [`},
		{"object without projects", `{"groups": []}`},
		{"projects not an array", `{"projects": {}}`},
		{"empty array", `[]`},
		{"array without axis", `[{"name":"x","start":{"y":2026,"q":1},"end":{"y":2026,"q":1}}]`},
		{"legacy bad quarter", `[{"axis":"A","name":"x","start":{"y":2026,"q":5},"end":{"y":2026,"q":1}}]`},
		{"bad project date", `{"projects":[{"name":"x","groupId":"g","startDate":"01/02/2026","endDate":"2026-02-01"}]}`},
		{"duplicate group ids", `{"projects":[],"groups":[{"id":"g","name":"a","color":"#fff"},{"id":"g","name":"b","color":"#fff"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFormat)
		})
	}
}

func TestGroupSlug(t *testing.T) {
	assert.Equal(t, "group-finance", GroupSlug("Finance"))
	assert.Equal(t, "group-is-rationalization", GroupSlug("IS  rationalization"))
	assert.Equal(t, "group-rd-team", GroupSlug("R&D team"))
	assert.Equal(t, "group", GroupSlug("研究"))
	assert.Equal(t, "group", GroupSlug(" & "))
}
