package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	axisUp    = mgl32.Vec3{0, 1, 0}
	axisPitch = mgl32.Vec3{1, 0, 0}
	axisRoll  = mgl32.Vec3{0, 0, 1}
)

// AxisAngle returns the unit quaternion rotating by angle radians around axis.
// The axis must already be unit length.
func AxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	s, c := math.Sincos(float64(angle) / 2.0)
	return mgl32.Quat{
		W: float32(c),
		V: axis.Mul(float32(s)),
	}.Normalize()
}

// Compose returns the normalized Hamilton product q1*q2.
func Compose(q1, q2 mgl32.Quat) mgl32.Quat {
	return q1.Mul(q2).Normalize()
}
