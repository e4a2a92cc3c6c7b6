// Package visibility tracks which legend identities of a chart are shown
// and keeps the chart's series and points in line with that state.
package visibility

// Set is an ordered set of identities. A nil *Set means visibility is
// unconstrained and every item keeps the visibility its options give it;
// an empty non-nil Set means everything is hidden.
type Set struct {
	ids   []string
	index map[string]struct{}
}

// NewSet returns a set of ids in first-seen order.
func NewSet(ids ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Set) add(id string) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Has reports whether id is visible. Every id is visible in a nil set.
func (s *Set) Has(id string) bool {
	if s == nil {
		return true
	}
	_, ok := s.index[id]
	return ok
}

// IDs returns the identities in order, or nil for a nil set.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s.ids...)
}

// Len returns the number of identities; zero for a nil set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// Equal reports whether s and o hold the same identities, ignoring order.
// A nil set only equals another nil set.
func (s *Set) Equal(o *Set) bool {
	if s == nil || o == nil {
		return s == nil && o == nil
	}
	if len(s.ids) != len(o.ids) {
		return false
	}
	for _, id := range s.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}
