// Package interp computes the transform of a cubie part-way through a layer
// rotation.
//
// Every evaluation starts from the cubie's transform before the move began.
// Nothing here composes onto the previous frame, so floating point error
// cannot build up over the course of an animation.
package interp

import (
	"math"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// QuarterTurn is the angle of one move in radians.
const QuarterTurn = math.Pi / 2

// Interpolate returns the position and orientation at progress ratio of a
// rotation from start to end radians about axis through pivot.
func Interpolate(axis geom.Vec3, start, end float64, pivot, position geom.Vec3, orientation geom.Quat, ratio float64) (geom.Vec3, geom.Quat) {
	angle := start + (end-start)*ratio
	rot := geom.AxisAngle(axis, angle)
	return pivot.Add(rot.Rotate(position.Sub(pivot))), rot.Mul(orientation)
}

// RotatePlane is a lens over one cubie's transform for the duration of one
// move.
type RotatePlane struct {
	// Axis is the rotation axis; its sign selects the direction.
	Axis geom.Vec3
	// Start and End are the rotation angles in radians.
	Start float64
	End   float64
	// Pivot is the fixed point of the rotation.
	Pivot geom.Vec3
	// Original is the transform before the move began.
	Original geom.Transform
}

// QuarterTurnAbout returns the standard +90 degree lens about axis through
// the origin.
func QuarterTurnAbout(axis geom.Vec3, original geom.Transform) RotatePlane {
	return RotatePlane{
		Axis:     axis,
		Start:    0,
		End:      QuarterTurn,
		Pivot:    geom.Origin,
		Original: original,
	}
}

// At evaluates the lens at ratio.
func (r RotatePlane) At(ratio float64) geom.Transform {
	pos, rot := Interpolate(r.Axis, r.Start, r.End, r.Pivot, r.Original.Position, r.Original.Rotation, ratio)
	return geom.Transform{Position: pos, Rotation: rot}
}
