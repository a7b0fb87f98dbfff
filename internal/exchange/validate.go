package exchange

import (
	"fmt"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// ValidateEnvelope checks an application-format document before conversion.
// Returns every problem found.
func ValidateEnvelope(env *Envelope) []error {
	var errs []error

	if env.TimelineConfig != nil {
		if _, err := env.TimelineConfig.Patch(); err != nil {
			errs = append(errs, err)
		}
	}

	groupIDs := make(map[string]bool, len(env.Groups))
	for i, g := range env.Groups {
		if g.ID == "" {
			errs = append(errs, fmt.Errorf("groups[%d].id is required", i))
		} else if groupIDs[g.ID] {
			errs = append(errs, fmt.Errorf("groups[%d].id %q is duplicated", i, g.ID))
		}
		groupIDs[g.ID] = true
	}

	for i, p := range env.Projects {
		if _, err := domain.ParseDate(p.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("projects[%d].startDate: %w", i, err))
		}
		if _, err := domain.ParseDate(p.EndDate); err != nil {
			errs = append(errs, fmt.Errorf("projects[%d].endDate: %w", i, err))
		}
	}

	return errs
}

func validateLegacy(entries []LegacyEntry) []error {
	var errs []error
	for i, e := range entries {
		if e.Axis == "" {
			errs = append(errs, fmt.Errorf("[%d].axis is required", i))
		}
		if e.Start == nil {
			errs = append(errs, fmt.Errorf("[%d].start is required", i))
		} else if e.Start.Q < 1 || e.Start.Q > 4 {
			errs = append(errs, fmt.Errorf("[%d].start.q: quarter %d out of range 1-4", i, e.Start.Q))
		}
		if e.End == nil {
			errs = append(errs, fmt.Errorf("[%d].end is required", i))
		} else if e.End.Q < 1 || e.End.Q > 4 {
			errs = append(errs, fmt.Errorf("[%d].end.q: quarter %d out of range 1-4", i, e.End.Q))
		}
	}
	return errs
}
