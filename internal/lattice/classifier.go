// Package lattice buckets cubies into the axis-aligned layers they occupy.
//
// A layer is keyed by the cubie's rounded coordinate along one axis. At rest
// every coordinate is one of -2, 0 or 2, so each axis has three layers of
// nine cubies. Layer maps are only meaningful for a settled cube: reading
// them while a rotation is in flight yields non-lattice keys.
package lattice

import (
	"fmt"
	"math"
	"sort"

	"github.com/SeamusWaldron/cubeengine/internal/cubie"
	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// Values are the lattice coordinates a settled cubie can occupy on any axis.
var Values = [3]int{-2, 0, 2}

// LayerMap maps a rounded coordinate to the cubies sharing it.
type LayerMap map[int][]cubie.ID

// Keys returns the map's keys in ascending order.
func (m LayerMap) Keys() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Layers holds one layer map per axis.
type Layers struct {
	X LayerMap
	Y LayerMap
	Z LayerMap
}

// Axis returns the layer map for a.
func (l Layers) Axis(a geom.Axis) LayerMap {
	switch a {
	case geom.AxisX:
		return l.X
	case geom.AxisY:
		return l.Y
	default:
		return l.Z
	}
}

// Key rounds a coordinate to its layer key. Halves round away from zero
// (math.Round), so 0.5 -> 1 and -0.5 -> -1.
func Key(v float64) int {
	return int(math.Round(v))
}

// Classify builds fresh layer maps for cubies. Cubies are listed in each
// bucket in input order.
func Classify(cubies []cubie.Cubie) Layers {
	l := Layers{X: LayerMap{}, Y: LayerMap{}, Z: LayerMap{}}
	for _, c := range cubies {
		l.X[Key(c.Position.X)] = append(l.X[Key(c.Position.X)], c.ID)
		l.Y[Key(c.Position.Y)] = append(l.Y[Key(c.Position.Y)], c.ID)
		l.Z[Key(c.Position.Z)] = append(l.Z[Key(c.Position.Z)], c.ID)
	}
	return l
}

// Validate checks that every axis has exactly the lattice keys and that each
// bucket holds perLayer cubies.
func (l Layers) Validate(perLayer int) error {
	for _, a := range geom.Axes {
		m := l.Axis(a)
		if len(m) != len(Values) {
			return fmt.Errorf("axis %v: %d layers, want %d (keys %v)", a, len(m), len(Values), m.Keys())
		}
		for _, k := range Values {
			if n := len(m[k]); n != perLayer {
				return fmt.Errorf("axis %v layer %d: %d cubies, want %d", a, k, n, perLayer)
			}
		}
	}
	return nil
}
