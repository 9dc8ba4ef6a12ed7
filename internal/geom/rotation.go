package geom

import (
	"fmt"
	"math"

	"github.com/westphae/quaternion"
)

// Quat is a rotation expressed as a unit quaternion.
type Quat quaternion.Quaternion

// Identity is the rotation that leaves every vector unchanged.
var Identity = Quat{W: 1}

// AxisAngle returns the rotation of angle radians about axis, following the
// right-hand rule. The axis does not need to be normalized.
func AxisAngle(axis Vec3, angle float64) Quat {
	n := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: n.X * s, Y: n.Y * s, Z: n.Z * s}
}

// Mul returns the composition q·o: o is applied first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat(quaternion.Prod(quaternion.Quaternion(q), quaternion.Quaternion(o)))
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	return Vec3(quaternion.Quaternion(q).RotateVec3(quaternion.Vec3(v)))
}

// Inverse returns the rotation undoing q.
func (q Quat) Inverse() Quat {
	return Quat(quaternion.Quaternion(q).Conj())
}

// Normalize rescales q to unit length.
func (q Quat) Normalize() Quat {
	return Quat(quaternion.Quaternion(q).Unit())
}

// ApproxEqual reports whether q and o describe the same rotation within tol.
// q and -q are the same rotation.
func (q Quat) ApproxEqual(o Quat, tol float64) bool {
	same := math.Abs(q.W-o.W) <= tol && math.Abs(q.X-o.X) <= tol &&
		math.Abs(q.Y-o.Y) <= tol && math.Abs(q.Z-o.Z) <= tol
	flipped := math.Abs(q.W+o.W) <= tol && math.Abs(q.X+o.X) <= tol &&
		math.Abs(q.Y+o.Y) <= tol && math.Abs(q.Z+o.Z) <= tol
	return same || flipped
}

func (q Quat) String() string {
	return fmt.Sprintf("[%g; %g, %g, %g]", q.W, q.X, q.Y, q.Z)
}

// Transform is the position and orientation of a node.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// ApproxEqual compares position and rotation within tol.
func (t Transform) ApproxEqual(o Transform, tol float64) bool {
	return t.Position.ApproxEqual(o.Position, tol) && t.Rotation.ApproxEqual(o.Rotation, tol)
}
