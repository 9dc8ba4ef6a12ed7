package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-9

func TestAxisAngle_QuarterTurnAboutZ(t *testing.T) {
	q := AxisAngle(PosZ, math.Pi/2)
	got := q.Rotate(Vec3{X: 2})
	assert.True(t, got.ApproxEqual(Vec3{Y: 2}, tol), "got %v", got)
}

func TestAxisAngle_NegativeAxisReverses(t *testing.T) {
	pos := AxisAngle(PosY, math.Pi/2).Rotate(Vec3{X: 2})
	neg := AxisAngle(NegY, math.Pi/2).Rotate(Vec3{X: 2})
	assert.True(t, pos.ApproxEqual(Vec3{Z: -2}, tol), "got %v", pos)
	assert.True(t, neg.ApproxEqual(Vec3{Z: 2}, tol), "got %v", neg)
}

func TestQuat_MulAppliesRightFirst(t *testing.T) {
	x := AxisAngle(PosX, math.Pi/2)
	z := AxisAngle(PosZ, math.Pi/2)
	// X first: +Y -> +Z, then Z leaves +Z alone.
	got := z.Mul(x).Rotate(PosY)
	assert.True(t, got.ApproxEqual(PosZ, tol), "got %v", got)
}

func TestQuat_InverseUndoes(t *testing.T) {
	q := AxisAngle(Vec3{X: 1, Y: 2, Z: 3}, 0.7)
	v := Vec3{X: -1, Y: 4, Z: 0.5}
	got := q.Inverse().Rotate(q.Rotate(v))
	assert.True(t, got.ApproxEqual(v, tol), "got %v", got)
	assert.True(t, q.Mul(q.Inverse()).ApproxEqual(Identity, tol))
}

func TestQuat_ApproxEqualTreatsNegationAsSame(t *testing.T) {
	q := AxisAngle(PosY, 1.1)
	neg := Quat{W: -q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
	assert.True(t, q.ApproxEqual(neg, tol))
	assert.False(t, q.ApproxEqual(Identity, tol))
}

func TestVec3_Snap(t *testing.T) {
	v := Vec3{X: 1.9999999999, Y: 1e-12, Z: 0.5}
	assert.Equal(t, Vec3{X: 2, Y: 0, Z: 0.5}, v.Snap(1e-6))
}

func TestDominant(t *testing.T) {
	tests := []struct {
		v    Vec3
		axis Axis
		sign int
	}{
		{PosX, AxisX, 1},
		{NegY, AxisY, -1},
		{NegZ, AxisZ, -1},
		{Vec3{X: 0.1, Y: -0.2, Z: 0.9}, AxisZ, 1},
	}
	for _, tt := range tests {
		a, s := Dominant(tt.v)
		if a != tt.axis || s != tt.sign {
			t.Errorf("Dominant(%v) = %v,%d, want %v,%d", tt.v, a, s, tt.axis, tt.sign)
		}
	}
}

func TestIsAxisAligned(t *testing.T) {
	assert.True(t, IsAxisAligned(NegZ))
	assert.True(t, IsAxisAligned(PosY))
	assert.False(t, IsAxisAligned(Vec3{X: 1, Y: 1}))
	assert.False(t, IsAxisAligned(Vec3{X: 2}))
	assert.False(t, IsAxisAligned(Origin))
}
