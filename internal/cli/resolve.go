package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/store"
)

type candidate struct {
	id    string
	names []string
}

// resolveID matches input against candidates: exact id first, then a
// case-insensitive name, then a unique id prefix.
func resolveID(kind, input string, cands []candidate) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, c := range cands {
		if c.id == input {
			return c.id, nil
		}
	}

	var byName []string
	for _, c := range cands {
		for _, n := range c.names {
			if n != "" && strings.EqualFold(n, input) {
				byName = append(byName, c.id)
				break
			}
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches)", kind, input, len(byName))
	}

	var byPrefix []string
	for _, c := range cands {
		if strings.HasPrefix(c.id, input) {
			byPrefix = append(byPrefix, c.id)
		}
	}
	switch len(byPrefix) {
	case 0:
		return "", fmt.Errorf("%s %w: %q", kind, domain.ErrNotFound, input)
	case 1:
		return byPrefix[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(byPrefix))
	}
}

func resolveProjectID(s *store.Store, input string) (string, error) {
	projects := s.Projects()
	cands := make([]candidate, 0, len(projects))
	for _, p := range projects {
		cands = append(cands, candidate{id: p.ID, names: []string{p.Code, p.Name}})
	}
	return resolveID("project", input, cands)
}

func resolveGroupID(s *store.Store, input string) (string, error) {
	groups := s.Groups()
	cands := make([]candidate, 0, len(groups))
	for _, g := range groups {
		cands = append(cands, candidate{id: g.ID, names: []string{g.Name}})
	}
	return resolveID("group", input, cands)
}

func resolvePlanningID(s *store.Store, input string) (string, error) {
	plannings := s.Plannings()
	cands := make([]candidate, 0, len(plannings))
	for _, p := range plannings {
		cands = append(cands, candidate{id: p.ID, names: []string{p.Name}})
	}
	return resolveID("planning", input, cands)
}
