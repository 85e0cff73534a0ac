package resolve

import (
	"math"

	"github.com/akmonengine/impulse2d/kinematics"
)

const (
	// TinyImpulse is the threshold below which a spuriously-negative
	// unilateral impulse is clamped to zero rather than treated as an
	// invariant violation (floating-point noise from the LCP solver).
	TinyImpulse = 1e-12
	// SmallImpulse is the threshold below which an applied impulse is
	// flagged "continuous" rather than a discontinuous velocity jump.
	SmallImpulse = 1e-4
)

// Apply mutates the velocities of c's two bodies for a scalar impulse j
// applied along c's normal, per spec §4.4. It records c.Impulse as a side
// effect even when j is clamped to zero; c.continuous is set only for a
// non-zero impulse.
func Apply(c *Contact, j float64) error {
	if !c.Joint && j < 0 {
		if math.Abs(j) <= TinyImpulse {
			j = 0
		} else {
			return &ResolutionError{
				Kind:   InvariantViolation,
				Row:    -1,
				Detail: "negative impulse on unilateral contact exceeds TinyImpulse",
			}
		}
	}

	c.Impulse = j
	if j == 0 {
		return nil
	}
	c.continuous = math.Abs(j) < SmallImpulse

	n := c.Normal
	delta := n.Mul(j)

	if c.PrimaryBody.Movable() {
		m := c.PrimaryBody.Mass()
		I := c.PrimaryBody.MomentAboutCM()
		c.PrimaryBody.Velocity = c.PrimaryBody.Velocity.Add(delta.Mul(1 / m))
		c.PrimaryBody.AngularVelocity += j * kinematics.Cross2(c.R1, n) / I
	}
	if c.NormalBody.Movable() {
		m := c.NormalBody.Mass()
		I := c.NormalBody.MomentAboutCM()
		c.NormalBody.Velocity = c.NormalBody.Velocity.Sub(delta.Mul(1 / m))
		c.NormalBody.AngularVelocity -= j * kinematics.Cross2(c.R2, n) / I
	}

	return nil
}
