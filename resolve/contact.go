// Package resolve implements the impulse-based collision resolution core:
// the influence matrix assembler and the simultaneous/serial handling
// strategies that turn a list of contacts into instantaneous velocity
// changes on the bodies they reference.
//
// The package is single-threaded and synchronous by design (spec §5): a
// call to Handle runs to completion touching only the bodies its contacts
// reference, and performs no locking. Callers must ensure no other
// goroutine reads or writes those bodies concurrently.
package resolve

import (
	"github.com/akmonengine/impulse2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact describes one contact point between two bodies, valid for the
// duration of a single Handle call. The fields mirror the spec's data
// model: PrimaryBody/NormalBody (ordered, Normal points out of
// NormalBody), R1/R2 (offsets from each body's center of mass to the
// impact point), Normal (unit vector), NormalVelocity (signed,
// pre-resolution relative approach speed; negative means approaching),
// Elasticity, and Joint.
type Contact struct {
	PrimaryBody *body.Body
	NormalBody  *body.Body

	R1 mgl64.Vec2
	R2 mgl64.Vec2

	Normal mgl64.Vec2

	// NormalVelocity is the signed relative normal velocity before
	// resolution; both handling strategies overwrite it once their impulses
	// are known (the serial strategy after its loop, simultaneous after its
	// single solve), leaving it at its post-resolution value once Handle
	// returns.
	NormalVelocity float64

	// Elasticity is the coefficient of restitution, in [0, 1].
	Elasticity float64

	// Joint marks a bilateral constraint: impulse sign is unconstrained,
	// and post-resolution NormalVelocity must be (near) zero. false means
	// a unilateral contact/collision: impulse must be >= 0.
	Joint bool

	// Impulse is the scalar impulse finally applied, written by Handle.
	Impulse float64

	// continuous is a hint to an external integrator about whether this
	// contact's impulse was small enough not to count as a discontinuous
	// velocity jump (spec §4.4). It carries no meaning inside this core.
	continuous bool
}

// Continuous reports whether the applied impulse was below SmallImpulse,
// i.e. not a jump large enough for an external integrator to treat this
// step as discontinuous.
func (c *Contact) Continuous() bool { return c.continuous }

// bodyFor returns r (the offset from b's center of mass to the contact
// point) if b is this contact's primary or normal body, and whether b
// participates in the contact at all.
func (c *Contact) bodyFor(b *body.Body) (r mgl64.Vec2, ok bool) {
	switch b {
	case c.PrimaryBody:
		return c.R1, true
	case c.NormalBody:
		return c.R2, true
	default:
		return mgl64.Vec2{}, false
	}
}
