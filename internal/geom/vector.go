// Package geom provides the small vector and rotation types the move engine
// works in. Rotations are unit quaternions backed by westphae/quaternion.
package geom

import (
	"fmt"
	"math"

	"github.com/westphae/quaternion"
)

// Vec3 is a point or direction in engine space.
type Vec3 quaternion.Vec3

// Unit axis vectors.
var (
	Origin = Vec3{}
	PosX   = Vec3{X: 1}
	NegX   = Vec3{X: -1}
	PosY   = Vec3{Y: 1}
	NegY   = Vec3{Y: -1}
	PosZ   = Vec3{Z: 1}
	NegZ   = Vec3{Z: -1}
)

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector is returned as is.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Component returns the coordinate of v along axis a.
func (v Vec3) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// ApproxEqual reports whether every component of v and o differ by at most tol.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol &&
		math.Abs(v.Y-o.Y) <= tol &&
		math.Abs(v.Z-o.Z) <= tol
}

// Snap rounds every component lying within tol of an integer onto it.
func (v Vec3) Snap(tol float64) Vec3 {
	return Vec3{X: snap(v.X, tol), Y: snap(v.Y, tol), Z: snap(v.Z, tol)}
}

func snap(f, tol float64) float64 {
	r := math.Round(f)
	if math.Abs(f-r) <= tol {
		return r
	}
	return f
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

// Axes lists the three axes in X, Y, Z order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector along a.
func (a Axis) Unit() Vec3 {
	switch a {
	case AxisX:
		return PosX
	case AxisY:
		return PosY
	default:
		return PosZ
	}
}

// Dominant returns the axis of the largest-magnitude component of v and the
// sign of that component (+1 or -1). Ties resolve in X, Y, Z order.
func Dominant(v Vec3) (Axis, int) {
	best := AxisX
	for _, a := range Axes[1:] {
		if math.Abs(v.Component(a)) > math.Abs(v.Component(best)) {
			best = a
		}
	}
	if v.Component(best) < 0 {
		return best, -1
	}
	return best, 1
}

// IsAxisAligned reports whether v is a unit vector along exactly one axis.
func IsAxisAligned(v Vec3) bool {
	nonZero := 0
	for _, a := range Axes {
		c := v.Component(a)
		switch {
		case c == 0:
		case c == 1 || c == -1:
			nonZero++
		default:
			return false
		}
	}
	return nonZero == 1
}
