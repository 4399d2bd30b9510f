package selection

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/filter"
)

var ErrIndexOutOfRange = errors.New("row index out of range")

// State holds at most one selected record, keyed by its load-time id so the
// selection survives reordering and duplicate titles.
type State struct {
	id catalog.ID
}

// Select picks the record at index in v. An out-of-range index leaves the state unchanged.
func (s *State) Select(v filter.View, index int) (catalog.ID, error) {
	if index < 0 || index >= v.Len() {
		return "", fmt.Errorf("%d of %d: %w", index, v.Len(), ErrIndexOutOfRange)
	}
	s.id = v.Titles[index].ID
	return s.id, nil
}

// Clear drops the selection.
func (s *State) Clear() { s.id = "" }

// Current returns the held id.
func (s *State) Current() (catalog.ID, bool) { return s.id, s.id != "" }

// Reconcile clears the selection when its record is no longer in v and
// returns what is held afterwards.
func (s *State) Reconcile(v filter.View) (catalog.ID, bool) {
	if s.id == "" {
		return "", false
	}
	if _, ok := v.Index(s.id); !ok {
		s.id = ""
		return "", false
	}
	return s.id, true
}

// Resolve maps the held id back to its record and current position in v.
func (s *State) Resolve(v filter.View) (*catalog.Title, int, bool) {
	if s.id == "" {
		return nil, -1, false
	}
	i, ok := v.Index(s.id)
	if !ok {
		return nil, -1, false
	}
	return v.Titles[i], i, true
}
