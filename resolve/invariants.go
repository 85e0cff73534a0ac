package resolve

import "github.com/akmonengine/impulse2d/body"

// checkInfiniteMassInvariant rejects any detected state where an
// immovable body carries non-zero velocity (spec §3 invariant): such a
// state indicates the upstream detector or integrator has a bug, since
// this core never writes to an immovable body's velocity.
func checkInfiniteMassInvariant(contacts []*Contact) error {
	seen := make(map[*body.Body]bool, 2*len(contacts))
	for _, c := range contacts {
		for _, b := range [2]*body.Body{c.PrimaryBody, c.NormalBody} {
			if seen[b] {
				continue
			}
			seen[b] = true
			if b.Movable() {
				continue
			}
			if b.Velocity.Len() != 0 || b.AngularVelocity != 0 {
				return &ResolutionError{
					Kind:   InvariantViolation,
					Row:    -1,
					Detail: "infinite-mass body has non-zero velocity",
				}
			}
		}
	}
	return nil
}
