package resolve

import (
	"fmt"
	"math"

	"github.com/akmonengine/impulse2d/body"
	"github.com/akmonengine/impulse2d/rng"
)

// handleSerial implements spec §4.6: it simulates a rapid sequence of
// binary collisions, repeatedly picking a focus contact, solving the
// minimally-necessary coupled neighbourhood around it, and folding the
// resulting impulse back into every contact's running normal velocity,
// until no contact is left "large" (or, with a last-pass variant, one
// final pure-inelastic sweep runs over every contact).
//
// The outer loop is the state machine spec §4.7 describes: SELECTING
// (selectFocus) -> SOLVING+APPLYING (runIteration) -> SELECTING, with
// exits to LAST_PASS/DONE when no contact qualifies, and PANIC_RELAX
// folded into the loop body on every panicLimit-th (20*n) iteration.
func handleSerial(contacts []*Contact, p Params) (bool, error) {
	n := len(contacts)
	if n == 0 {
		return false, nil
	}

	a := AssembleMatrix(contacts)
	bCur := make([]float64, n)
	j2 := make([]float64, n)
	e := make([]float64, n)
	jointFlags := make([]bool, n)
	for k, c := range contacts {
		bCur[k] = c.NormalVelocity
		jointFlags[k] = c.Joint
		if p.CollisionHandling.grouped() && c.Joint {
			e[k] = 0
		} else {
			e[k] = c.Elasticity
		}
	}

	velocityTol := p.VelocityTol
	panicLimit := 20 * n
	gen := rng.New(p.RandomSeed)
	counter := 0

	for {
		focus, none := selectFocus(bCur, jointFlags, velocityTol, gen)
		if none {
			if p.CollisionHandling.lastPass() {
				if err := runIteration(-1, contacts, a, bCur, j2, e, jointFlags, velocityTol, p); err != nil {
					return false, err
				}
			}
			break
		}

		if err := runIteration(focus, contacts, a, bCur, j2, e, jointFlags, velocityTol, p); err != nil {
			return false, err
		}
		counter++

		if p.PanicEnabled && counter%panicLimit == 0 {
			velocityTol *= 2
			report(p, Diagnostic{
				Kind:   PanicRelaxation,
				Detail: fmt.Sprintf("velocityTol relaxed to %g after %d iterations", velocityTol, counter),
			})
		}

		if counter > MaxIterations {
			report(p, Diagnostic{
				Kind:   IterationCeilingReached,
				Detail: fmt.Sprintf("serial strategy exceeded %d iterations", MaxIterations),
			})
			if p.EscalateIterationCeiling {
				return false, &ResolutionError{Kind: IterationCeilingExceeded, Row: -1, Detail: "iteration ceiling exceeded"}
			}
			break
		}
	}

	applied := false
	hasNonJoint := false
	for k, c := range contacts {
		c.NormalVelocity = bCur[k]
		if err := Apply(c, j2[k]); err != nil {
			return false, err
		}
		if j2[k] > TinyImpulse {
			applied = true
		}
		if !c.Joint {
			hasNonJoint = true
		}
	}
	return applied && hasNonJoint, nil
}

// selectFocus enumerates contacts in a fresh uniform random permutation
// and returns the first index that is "large": for a non-joint, current
// normal velocity below -velocityTol; for a joint, |velocity| above
// velocityTol. It reports none=true if no contact qualifies.
func selectFocus(bCur []float64, joint []bool, velocityTol float64, gen *rng.LCG) (focus int, none bool) {
	for _, idx := range gen.Permutation(len(bCur)) {
		if joint[idx] {
			if math.Abs(bCur[idx]) > velocityTol {
				return idx, false
			}
		} else if bCur[idx] < -velocityTol {
			return idx, false
		}
	}
	return -1, true
}

// runIteration performs one outer-loop body: subset determination (spec
// §4.6 step 2), sub-system solve (step 3), and increment application
// (step 4).
func runIteration(focus int, contacts []*Contact, a [][]float64, bCur, j2, e []float64, jointFlags []bool, velocityTol float64, p Params) error {
	subset := buildSubset(focus, contacts, bCur, velocityTol, p.CollisionHandling)
	m := len(subset)

	aSub := make([][]float64, m)
	bSub := make([]float64, m)
	jointSub := make([]bool, m)
	for li, gi := range subset {
		row := make([]float64, m)
		for lj, gj := range subset {
			row[lj] = a[gi][gj]
		}
		aSub[li] = row
		bSub[li] = bCur[gi]
		jointSub[li] = jointFlags[gi]
		if focus != -1 {
			bSub[li] *= 1 + e[gi]
		}
		// focus == -1 (last pass): b' is left as-is, equivalent to zero
		// elasticity, per spec §4.6 step 3. bSub is always a fresh copy
		// (never bCur reused in place): re-entering this function on the
		// same contacts later must not double-scale an already-scaled b,
		// which is exactly the unsafe shortcut spec's Open Questions
		// section says the original disabled.
	}

	jSub := make([]float64, m)
	if err := solve(p, aSub, jSub, bSub, jointSub, 0); err != nil {
		return err
	}

	for li, gi := range subset {
		j2[gi] += jSub[li]
	}
	for i := range bCur {
		for li, gi := range subset {
			bCur[i] += a[i][gi] * jSub[li]
		}
	}
	return nil
}

// buildSubset returns the contact indices resolved together this
// iteration (spec §4.6 step 2).
func buildSubset(focus int, contacts []*Contact, bCur []float64, velocityTol float64, handling Handling) []int {
	n := len(contacts)
	if focus == -1 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	if !handling.grouped() {
		return []int{focus}
	}

	included := make([]bool, n)
	included[focus] = true
	bodies := make(map[*body.Body]bool, n)
	bodies[contacts[focus].PrimaryBody] = true
	bodies[contacts[focus].NormalBody] = true

	for changed := true; changed; {
		changed = false
		for k, c := range contacts {
			if included[k] || !c.Joint {
				continue
			}
			if bodies[c.PrimaryBody] || bodies[c.NormalBody] {
				included[k] = true
				bodies[c.PrimaryBody] = true
				bodies[c.NormalBody] = true
				changed = true
			}
		}
	}

	if handling.hybrid() {
		for k, c := range contacts {
			if included[k] || c.Joint {
				continue
			}
			if math.Abs(bCur[k]) > velocityTol && (bodies[c.PrimaryBody] || bodies[c.NormalBody]) {
				included[k] = true
			}
		}
	}

	subset := make([]int, 0, n)
	for k := 0; k < n; k++ {
		if included[k] {
			subset = append(subset, k)
		}
	}
	return subset
}
