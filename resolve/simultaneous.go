package resolve

// handleSimultaneous assembles the full influence matrix for every
// contact, solves the coupled system once, and applies every resulting
// impulse (spec §4.5). It treats the whole contact list as one system:
// accurate for balanced collisions (a block landing flat on two points
// at once) but prone to artefacts in chained collisions such as a
// Newton's cradle, where the serial strategy is preferred.
func handleSimultaneous(contacts []*Contact, p Params) (bool, error) {
	n := len(contacts)
	if n == 0 {
		return false, nil
	}

	b := make([]float64, n)
	joint := make([]bool, n)
	for k, c := range contacts {
		if c.Joint {
			b[k] = c.NormalVelocity
		} else {
			b[k] = c.NormalVelocity * (1 + c.Elasticity)
		}
		joint[k] = c.Joint
	}

	a := AssembleMatrix(contacts)
	j := make([]float64, n)
	if err := solve(p, a, j, b, joint, 0); err != nil {
		return false, err
	}

	applied := false
	for k, c := range contacts {
		post := c.NormalVelocity
		for i, jk := range j {
			post += a[k][i] * jk
		}
		c.NormalVelocity = post
		if err := Apply(c, j[k]); err != nil {
			return false, err
		}
		if j[k] > TinyImpulse {
			applied = true
		}
	}
	return applied, nil
}
