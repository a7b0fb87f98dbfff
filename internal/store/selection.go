package store

import (
	"fmt"

	"github.com/alexanderramin/plangrid/internal/domain"
)

// SelectProject marks a project of the active planning as selected. An empty
// id clears the selection.
func (s *Store) SelectProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.active().ProjectIndex(id) < 0 {
		return fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id)
	}
	s.selectedProjectID = id
	return nil
}

// SelectedProjectID returns the selected project id, or "".
func (s *Store) SelectedProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedProjectID
}

// SelectCard marks a card of the active grid as selected.
func (s *Store) SelectCard(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.cardsLocked()); index < 0 || index >= n {
		return fmt.Errorf("%w: card index %d out of range [0, %d)", domain.ErrNotFound, index, n)
	}
	s.selectedCard = index
	return nil
}

// SelectedCardIndex returns the selected card index.
func (s *Store) SelectedCardIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCard
}

func (s *Store) clearSelection() {
	s.selectedProjectID = ""
	s.selectedCard = 0
}
