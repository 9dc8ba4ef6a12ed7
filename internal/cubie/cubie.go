// Package cubie holds the movable puzzle pieces and the arena that stores them.
package cubie

import "github.com/SeamusWaldron/cubeengine/internal/geom"

// ID is the stable identity of a cubie. It comes from the scene node that
// produced the cubie and is never derived from position.
type ID string

// Cubie is one movable puzzle piece.
type Cubie struct {
	ID   ID
	Name string
	geom.Transform
}

// Set is an arena of cubies indexed by ID. Order is the order cubies were
// added and never changes.
type Set struct {
	items []Cubie
	index map[ID]int
}

// NewSet builds a set from cubies. Later duplicates of an ID are ignored.
func NewSet(cubies []Cubie) *Set {
	s := &Set{
		items: make([]Cubie, 0, len(cubies)),
		index: make(map[ID]int, len(cubies)),
	}
	for _, c := range cubies {
		if _, dup := s.index[c.ID]; dup {
			continue
		}
		s.index[c.ID] = len(s.items)
		s.items = append(s.items, c)
	}
	return s
}

// Len returns the number of cubies.
func (s *Set) Len() int {
	return len(s.items)
}

// Index returns the arena slot for id.
func (s *Set) Index(id ID) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Get returns a copy of the cubie with the given ID.
func (s *Set) Get(id ID) (Cubie, bool) {
	i, ok := s.index[id]
	if !ok {
		return Cubie{}, false
	}
	return s.items[i], true
}

// At returns a copy of the cubie in slot i.
func (s *Set) At(i int) Cubie {
	return s.items[i]
}

// SetTransform overwrites the transform of the cubie in slot i.
func (s *Set) SetTransform(i int, t geom.Transform) {
	s.items[i].Transform = t
}

// Snapshot returns a copy of every cubie in arena order.
func (s *Set) Snapshot() []Cubie {
	out := make([]Cubie, len(s.items))
	copy(out, s.items)
	return out
}
