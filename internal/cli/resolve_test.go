package cli

import (
	"testing"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveID(t *testing.T) {
	cands := []candidate{
		{id: "project-0001", names: []string{"ALP", "Alpha"}},
		{id: "project-0002", names: []string{"", "Beta"}},
		{id: "project-0103", names: []string{"", "beta"}},
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{name: "exact id", input: "project-0002", want: "project-0002"},
		{name: "code", input: "alp", want: "project-0001"},
		{name: "name", input: " Alpha ", want: "project-0001"},
		{name: "unique prefix", input: "project-01", want: "project-0103"},
		{name: "ambiguous name", input: "BETA", wantErr: "ambiguous"},
		{name: "ambiguous prefix", input: "project-0", wantErr: "ambiguous"},
		{name: "empty", input: "  ", wantErr: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID("project", tt.input, cands)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveID_NotFound(t *testing.T) {
	_, err := resolveID("group", "missing", nil)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
