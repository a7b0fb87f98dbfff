package exchange

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// Format names the detected shape of an import document.
type Format string

const (
	FormatApplication Format = "application"
	FormatLegacy      Format = "legacy"
)

// Payload is a parsed import document in domain terms.
type Payload struct {
	Format   Format
	Config   *domain.TimelineConfigPatch
	Projects []domain.Project
	Groups   []domain.Group
}

// Parse detects the format of data and converts it. Documents matching
// neither the application nor the legacy shape fail with domain.ErrFormat.
func Parse(data []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrFormat)
	}

	switch trimmed[0] {
	case '{':
		return parseApplication(trimmed)
	case '[':
		return parseLegacy(trimmed)
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", domain.ErrFormat)
	}
}

func parseApplication(data []byte) (*Payload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	raw, ok := probe["projects"]
	if !ok || len(bytes.TrimSpace(raw)) == 0 || bytes.TrimSpace(raw)[0] != '[' {
		return nil, fmt.Errorf("%w: missing projects array", domain.ErrFormat)
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	if errs := ValidateEnvelope(&env); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrFormat, errors.Join(errs...))
	}

	payload := &Payload{Format: FormatApplication, Groups: groupsFromDTOs(env.Groups)}
	if env.TimelineConfig != nil {
		patch, err := env.TimelineConfig.Patch()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrFormat, err)
		}
		payload.Config = &patch
	}
	projects, err := projectsFromDTOs(env.Projects)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFormat, err)
	}
	payload.Projects = projects
	return payload, nil
}

func parseLegacy(data []byte) (*Payload, error) {
	var entries []LegacyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFormat, err)
	}
	if len(entries) == 0 || entries[0].Axis == "" || entries[0].Start == nil || entries[0].End == nil {
		return nil, fmt.Errorf("%w: expected an array of projects with axis/start/end", domain.ErrFormat)
	}
	if errs := validateLegacy(entries); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrFormat, errors.Join(errs...))
	}

	groups, projects := ConvertLegacy(entries)
	return &Payload{Format: FormatLegacy, Projects: projects, Groups: groups}, nil
}
