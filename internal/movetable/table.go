// Package movetable maps input symbols to layer rotations.
package movetable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// Symbol is one discrete input command, typically a key name.
type Symbol string

// Move is a quarter turn of one layer. The rotation is +90 degrees about
// Axis; the sign of Axis carries the direction.
type Move struct {
	Axis  geom.Vec3
	Layer int
}

// LayerAxis returns the coordinate axis whose layer map Layer refers to.
func (m Move) LayerAxis() geom.Axis {
	a, _ := geom.Dominant(m.Axis)
	return a
}

// Reverse returns the move that undoes m.
func (m Move) Reverse() Move {
	return Move{Axis: m.Axis.Scale(-1), Layer: m.Layer}
}

// String renders the move as e.g. "+Z@-2".
func (m Move) String() string {
	return FormatAxis(m.Axis) + "@" + fmt.Sprint(m.Layer)
}

// Entry binds one symbol to one move.
type Entry struct {
	Symbol Symbol
	Move   Move
}

// Errors
var (
	ErrDuplicateSymbol = errors.New("duplicate symbol")
	ErrInvalidAxis     = errors.New("axis must be a signed unit axis")
	ErrEmptySymbol     = errors.New("empty symbol")
)

// Table is an immutable symbol -> move lookup.
type Table struct {
	entries []Entry
	bySym   map[Symbol]Move
}

// New builds a table from entries. Every axis must be a signed unit axis
// and every symbol unique.
func New(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		bySym:   make(map[Symbol]Move, len(entries)),
	}
	for _, e := range entries {
		if e.Symbol == "" {
			return nil, ErrEmptySymbol
		}
		if !geom.IsAxisAligned(e.Move.Axis) {
			return nil, fmt.Errorf("symbol %q: %w", e.Symbol, ErrInvalidAxis)
		}
		if _, dup := t.bySym[e.Symbol]; dup {
			return nil, fmt.Errorf("symbol %q: %w", e.Symbol, ErrDuplicateSymbol)
		}
		t.bySym[e.Symbol] = e.Move
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// defaultEntries covers every layer of the Z and Y axes in both directions.
var defaultEntries = []Entry{
	{"u", Move{geom.PosZ, -2}},
	{"i", Move{geom.PosZ, 0}},
	{"o", Move{geom.PosZ, 2}},
	{"j", Move{geom.NegZ, -2}},
	{"k", Move{geom.NegZ, 0}},
	{"l", Move{geom.NegZ, 2}},

	{"w", Move{geom.PosY, 2}},
	{"s", Move{geom.PosY, 0}},
	{"x", Move{geom.PosY, -2}},
	{"r", Move{geom.NegY, 2}},
	{"f", Move{geom.NegY, 0}},
	{"v", Move{geom.NegY, -2}},
}

// Default returns the standard twelve-command table.
func Default() *Table {
	t, err := New(defaultEntries)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve looks up s. Unknown symbols report false.
func (t *Table) Resolve(s Symbol) (Move, bool) {
	m, ok := t.bySym[s]
	return m, ok
}

// Lookup returns the first symbol bound to exactly this move.
func (t *Table) Lookup(axis geom.Vec3, layer int) (Symbol, bool) {
	for _, e := range t.entries {
		if e.Move.Axis == axis && e.Move.Layer == layer {
			return e.Symbol, true
		}
	}
	return "", false
}

// Symbols returns the bound symbols in table order.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Symbol
	}
	return out
}

// Entries returns a copy of the table's entries.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of bound symbols.
func (t *Table) Len() int {
	return len(t.entries)
}

// Binding is the config-file form of an entry, e.g.
//
//	- symbol: a
//	  axis: "+x"
//	  layer: -2
type Binding struct {
	Symbol string `yaml:"symbol"`
	Axis   string `yaml:"axis"`
	Layer  int    `yaml:"layer"`
}

// FromBindings builds a table from config bindings.
func FromBindings(bindings []Binding) (*Table, error) {
	entries := make([]Entry, 0, len(bindings))
	for _, b := range bindings {
		axis, err := ParseAxis(b.Axis)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", b.Symbol, err)
		}
		entries = append(entries, Entry{Symbol: Symbol(b.Symbol), Move: Move{Axis: axis, Layer: b.Layer}})
	}
	return New(entries)
}

// ParseAxis parses "+x", "-y", "z" (case-insensitive) into a unit axis.
func ParseAxis(s string) (geom.Vec3, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}
	switch s {
	case "x":
		return geom.PosX.Scale(sign), nil
	case "y":
		return geom.PosY.Scale(sign), nil
	case "z":
		return geom.PosZ.Scale(sign), nil
	}
	return geom.Vec3{}, ErrInvalidAxis
}

// FormatAxis renders a signed unit axis as "+X", "-Z", ...
func FormatAxis(v geom.Vec3) string {
	a, sign := geom.Dominant(v)
	if sign < 0 {
		return "-" + a.String()
	}
	return "+" + a.String()
}
