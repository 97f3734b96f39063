package document

import "slices"

// Selection is an ordered set of marker ids plus an optional pending bulk
// action. Ids whose marker no longer exists are dropped on access. The
// action is cleared whenever the set becomes empty.
type Selection struct {
	ids    []string
	action *Action
	lookup func(id string) *Marker
}

func newSelection(lookup func(string) *Marker) *Selection {
	return &Selection{lookup: lookup}
}

// prune drops dangling ids and applies the empty-set rule.
func (s *Selection) prune() {
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool {
		return s.lookup(id) == nil
	})
	s.clearActionIfEmpty()
}

func (s *Selection) clearActionIfEmpty() {
	if len(s.ids) == 0 {
		s.action = nil
	}
}

// Items returns the live selected markers in selection order.
func (s *Selection) Items() []*Marker {
	s.prune()
	items := make([]*Marker, 0, len(s.ids))
	for _, id := range s.ids {
		items = append(items, s.lookup(id))
	}
	return items
}

// IDs returns the live selected ids in selection order.
func (s *Selection) IDs() []string {
	s.prune()
	return slices.Clone(s.ids)
}

// Len returns the number of live selected markers.
func (s *Selection) Len() int {
	s.prune()
	return len(s.ids)
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool {
	return s.Len() == 0
}

// Contains reports whether m is selected.
func (s *Selection) Contains(m *Marker) bool {
	if m == nil {
		return false
	}
	s.prune()
	return slices.Contains(s.ids, m.ID())
}

// Replace sets the selection to exactly markers, dropping duplicates.
func (s *Selection) Replace(markers ...*Marker) {
	s.ids = s.ids[:0]
	s.add(markers)
	s.prune()
}

// Add appends markers that are not already selected.
func (s *Selection) Add(markers ...*Marker) {
	s.add(markers)
	s.prune()
}

func (s *Selection) add(markers []*Marker) {
	for _, m := range markers {
		if m != nil && !slices.Contains(s.ids, m.ID()) {
			s.ids = append(s.ids, m.ID())
		}
	}
}

// Toggle flips the membership of each marker.
func (s *Selection) Toggle(markers ...*Marker) {
	for _, m := range markers {
		if m == nil {
			continue
		}
		if i := slices.Index(s.ids, m.ID()); i >= 0 {
			s.ids = slices.Delete(s.ids, i, i+1)
		} else {
			s.ids = append(s.ids, m.ID())
		}
	}
	s.prune()
}

// Remove deselects markers.
func (s *Selection) Remove(markers ...*Marker) {
	for _, m := range markers {
		if m == nil {
			continue
		}
		s.removeID(m.ID())
	}
	s.prune()
}

func (s *Selection) removeID(id string) {
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
}

// Clear empties the selection and drops the pending action.
func (s *Selection) Clear() {
	s.ids = s.ids[:0]
	s.prune()
}

// Action returns the pending bulk action, or nil.
func (s *Selection) Action() *Action {
	s.prune()
	return s.action
}

// StartAction begins a bulk action over the current selection. It does
// nothing when the selection is empty.
func (s *Selection) StartAction(kind ActionKind) *Action {
	s.prune()
	if len(s.ids) == 0 || kind == ActionNone {
		return nil
	}
	s.action = &Action{Kind: kind, sel: s}
	return s.action
}

// ClearAction drops the pending bulk action.
func (s *Selection) ClearAction() {
	s.action = nil
}

func (s *Selection) restore(ids []string, kind ActionKind) {
	s.ids = slices.Clone(ids)
	s.action = nil
	if kind != ActionNone {
		s.action = &Action{Kind: kind, sel: s}
	}
	s.prune()
}
