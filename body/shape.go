package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the collision-geometry capability used only by the broad/narrow
// phase contact detector (package detect); the resolution core never reads
// a Shape directly, only the Body capabilities spec'd in DATA MODEL.
type Shape interface {
	// ComputeAABB recomputes the world-space bounding box at transform.
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// ComputeMass returns the shape's mass given a material density.
	ComputeMass(density float64) float64
	// ComputeMomentOfInertia returns the scalar moment of inertia about
	// the shape's own center of mass, given its mass.
	ComputeMomentOfInertia(mass float64) float64
}

// Circle is a disk of the given radius, centered on the body's transform.
type Circle struct {
	Radius float64
	aabb   AABB
}

func (c *Circle) ComputeAABB(t Transform) {
	r := mgl64.Vec2{c.Radius, c.Radius}
	c.aabb = AABB{Min: t.Position.Sub(r), Max: t.Position.Add(r)}
}

func (c *Circle) GetAABB() AABB { return c.aabb }

func (c *Circle) ComputeMass(density float64) float64 {
	return density * math.Pi * c.Radius * c.Radius
}

func (c *Circle) ComputeMomentOfInertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

// Box is an axis-aligned (at zero rotation) rectangle defined by its
// half-extents.
type Box struct {
	HalfExtents mgl64.Vec2
	aabb        AABB
}

func (b *Box) ComputeAABB(t Transform) {
	b.aabb = AABB{Min: t.Position.Sub(b.HalfExtents), Max: t.Position.Add(b.HalfExtents)}
}

func (b *Box) GetAABB() AABB { return b.aabb }

func (b *Box) ComputeMass(density float64) float64 {
	return density * 4 * b.HalfExtents.X() * b.HalfExtents.Y()
}

func (b *Box) ComputeMomentOfInertia(mass float64) float64 {
	w := 2 * b.HalfExtents.X()
	h := 2 * b.HalfExtents.Y()
	return mass * (w*w + h*h) / 12.0
}
