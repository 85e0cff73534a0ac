package resolve

// Handle is this package's one entry point (spec §6's handleCollisions):
// given a contact list valid for this call only, it dispatches to the
// strategy p.CollisionHandling names, assembles and solves whatever
// matrices that strategy needs, and applies the resulting impulses to
// the bodies the contacts reference. It returns whether any non-trivial
// impulse was applied, incrementing totals.Impulses when it was (totals
// may be nil).
//
// Handle validates p first (spec §6: "all validated") and checks the
// infinite-mass invariant (spec §3) before doing any work, so a rejected
// call leaves every body untouched.
func Handle(contacts []*Contact, totals *Totals, p Params) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := checkInfiniteMassInvariant(contacts); err != nil {
		return false, err
	}

	var (
		applied bool
		err     error
	)
	if p.CollisionHandling.serial() {
		applied, err = handleSerial(contacts, p)
	} else {
		applied, err = handleSimultaneous(contacts, p)
	}
	if err != nil {
		return false, err
	}

	if applied && totals != nil {
		totals.Impulses++
	}
	return applied, nil
}
