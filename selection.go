package investmap

import "slices"

// MaxSelection is the largest number of records a single price refresh can
// cover.
const MaxSelection = 8

// Selection is the set of record ids picked for the next price refresh. It
// never holds more than MaxSelection ids. Its zero value is ready to use.
type Selection struct {
	ids map[ID]struct{}
}

// NewSelection returns a selection holding ids, toggled in order.
func NewSelection(ids ...ID) (*Selection, error) {
	s := new(Selection)
	for _, id := range ids {
		if s.Has(id) {
			continue
		}
		if _, err := s.Toggle(id); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Toggle removes id when selected, adds it otherwise. Adding a new id to a
// full selection is refused with ErrLimitExceeded and leaves it unchanged.
// It reports whether id is selected afterwards.
func (s *Selection) Toggle(id ID) (bool, error) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false, nil
	}
	if len(s.ids) >= MaxSelection {
		return false, ErrLimitExceeded
	}
	if s.ids == nil {
		s.ids = make(map[ID]struct{}, MaxSelection)
	}
	s.ids[id] = struct{}{}
	return true, nil
}

// Has reports whether id is selected.
func (s *Selection) Has(id ID) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []ID {
	if s == nil {
		return nil
	}
	ids := make([]ID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clear empties the selection.
func (s *Selection) Clear() { clear(s.ids) }

// Retain drops every selected id for which keep returns false.
func (s *Selection) Retain(keep func(ID) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	c := new(Selection)
	for _, id := range s.IDs() {
		c.Toggle(id)
	}
	return c
}
