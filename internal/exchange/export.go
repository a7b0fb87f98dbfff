package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"gopkg.in/yaml.v3"
)

// NewEnvelope builds the export document of a planning.
func NewEnvelope(p *domain.Planning, exportedAt time.Time) *Envelope {
	cfg := ConfigDTO(p.TimelineConfig)
	return &Envelope{
		TimelineConfig: &cfg,
		Projects:       ProjectDTOs(p.Projects),
		Groups:         GroupDTOs(p.Groups),
		ExportDate:     exportedAt.UTC().Format(time.RFC3339Nano),
		Version:        Version,
	}
}

// JSON renders the envelope as indented JSON.
func (e *Envelope) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// YAML renders the envelope as YAML.
func (e *Envelope) YAML() ([]byte, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// FileName returns the default export file name for t.
func FileName(t time.Time, ext string) string {
	return fmt.Sprintf("planning-export-%d.%s", t.UnixMilli(), ext)
}
