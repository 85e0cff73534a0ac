// Package kinematics holds the planar vector primitives the resolution
// core builds on: cross products and small helpers over mgl64.Vec2.
package kinematics

import "github.com/go-gl/mathgl/mgl64"

// Cross2 returns the scalar (z-component) cross product of two planar
// vectors: a.X*b.Y - a.Y*b.X.
func Cross2(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossScalarVec returns the planar cross product of a scalar (an angular
// velocity or z-torque) with a vector: omega * (-r.Y, r.X). This is the
// velocity induced at offset r by an angular velocity omega about the
// origin of r.
func CrossScalarVec(omega float64, r mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-omega * r.Y(), omega * r.X()}
}

// Perp returns the vector rotated +90 degrees: (x, y) -> (-y, x).
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}
