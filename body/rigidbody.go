package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind distinguishes a movable body from an immovable (infinite-mass) one.
type Kind int

const (
	// Dynamic bodies have finite mass and are moved by resolution.
	Dynamic Kind = iota
	// Static bodies are immovable; the core never writes their velocity.
	Static
)

// Body is the concrete struct implementing the capability set the
// resolution core needs: mass, moment of inertia about the center of
// mass, read/write linear and angular velocity, and a stable identity
// (pointer equality — two *Body values are the same body iff they are
// the same pointer, mirroring the teacher's body-identity comparisons in
// world.go's RemoveBody and trigger.go's makePairKey).
type Body struct {
	Transform Transform

	Velocity        mgl64.Vec2
	AngularVelocity float64

	mass          float64
	momentAboutCM float64

	Kind Kind

	// Elasticity is the per-body default coefficient of restitution a
	// contact detector uses when building a Contact that references this
	// body; it is set in bulk via resolve.SetElasticity (spec §6).
	Elasticity float64

	// Shape is used only by package detect's broad/narrow phase; the
	// resolution core never reads it.
	Shape Shape

	IsSleeping bool
	SleepTimer float64
}

// NewDynamicBody creates a finite-mass body whose mass and moment of
// inertia are derived from shape and density.
func NewDynamicBody(transform Transform, shape Shape, density float64) *Body {
	mass := shape.ComputeMass(density)
	b := &Body{
		Transform:     transform,
		Kind:          Dynamic,
		Shape:         shape,
		mass:          mass,
		momentAboutCM: shape.ComputeMomentOfInertia(mass),
	}
	b.Shape.ComputeAABB(b.Transform)
	return b
}

// NewStaticBody creates an immovable body: infinite mass, infinite moment
// of inertia, velocity permanently zero.
func NewStaticBody(transform Transform, shape Shape) *Body {
	b := &Body{
		Transform:     transform,
		Kind:          Static,
		Shape:         shape,
		mass:          math.Inf(1),
		momentAboutCM: math.Inf(1),
	}
	b.Shape.ComputeAABB(b.Transform)
	return b
}

// NewBody creates a body with an explicit mass and moment of inertia,
// bypassing shape-derived mass computation. It has no Shape and is never
// seen by package detect; it exists for callers (tests, or a detector
// with its own mass model) that already know a body's mass properties.
func NewBody(transform Transform, mass, momentAboutCM float64, kind Kind) *Body {
	return &Body{Transform: transform, Kind: kind, mass: mass, momentAboutCM: momentAboutCM}
}

// Mass returns the body's mass: a positive real, or +Inf for an immovable
// body.
func (b *Body) Mass() float64 { return b.mass }

// MomentAboutCM returns the body's moment of inertia about its own center
// of mass: a positive real, or +Inf for an immovable body.
func (b *Body) MomentAboutCM() float64 { return b.momentAboutCM }

// Movable reports whether the core may write this body's velocity.
func (b *Body) Movable() bool { return b.Kind != Static && !math.IsInf(b.mass, 1) }

func (b *Body) Awake() {
	b.IsSleeping = false
	b.SleepTimer = 0
}

func (b *Body) Sleep() {
	b.IsSleeping = true
	b.SleepTimer = 0
	b.Velocity = mgl64.Vec2{0, 0}
	b.AngularVelocity = 0
}

// TrySleep puts a dynamic body to sleep once its velocity has stayed below
// threshold for timeThreshold seconds.
func (b *Body) TrySleep(dt, timeThreshold, velocityThreshold float64) {
	if b.Kind == Static {
		return
	}
	if b.Velocity.Len() < velocityThreshold && math.Abs(b.AngularVelocity) < velocityThreshold {
		b.SleepTimer += dt
		if b.SleepTimer >= timeThreshold {
			b.Sleep()
		}
	} else {
		b.Awake()
	}
}
