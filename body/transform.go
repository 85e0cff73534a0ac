package body

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in the 2D plane.
type Transform struct {
	Position mgl64.Vec2
	Angle    float64 // radians, counter-clockwise
}

// NewTransform creates an identity transform at the origin.
func NewTransform() Transform {
	return Transform{Position: mgl64.Vec2{0, 0}}
}
