package resolve

import (
	"math"

	"github.com/akmonengine/impulse2d/body"
	"github.com/akmonengine/impulse2d/kinematics"
)

// influence returns the change in relative normal velocity at contact ci
// caused by a unit impulse applied at contact cj on body b, per spec §4.1.
// It returns 0 if b does not participate in both contacts, or if b has
// infinite mass.
func influence(ci, cj *Contact, b *body.Body) float64 {
	ri, ok := ci.bodyFor(b)
	if !ok {
		return 0
	}
	rj, ok := cj.bodyFor(b)
	if !ok {
		return 0
	}

	m := b.Mass()
	if math.IsInf(m, 1) {
		return 0
	}

	var factor float64
	switch b {
	case cj.PrimaryBody:
		factor = 1
	case cj.NormalBody:
		factor = -1
	default:
		return 0
	}

	ni := ci.Normal
	nj := cj.Normal
	I := b.MomentAboutCM()
	rjCrossNj := kinematics.Cross2(rj, nj)

	translational := ni.X()*(nj.X()/m) + ni.Y()*(nj.Y()/m)
	rotational := ni.X()*(-ri.Y()*rjCrossNj/I) + ni.Y()*(ri.X()*rjCrossNj/I)

	return factor * (translational + rotational)
}

// AssembleMatrix builds the n x n influence matrix A for contacts, where
// A[i][k] is the change in relative normal velocity at contacts[i] per
// unit impulse at contacts[k] (spec §4.2): the difference between the
// influence exerted through the primary body and through the normal body.
// Infinite-mass contributions vanish automatically inside influence.
//
// The matrix is mathematically symmetric; this implementation computes
// every entry directly rather than mirroring the upper triangle, trading
// the spec's suggested half-the-work optimization for an implementation
// with no mirroring bookkeeping to get wrong. TestAssembleMatrix_Symmetric
// checks the resulting symmetry holds to float64 round-off.
func AssembleMatrix(contacts []*Contact) [][]float64 {
	n := len(contacts)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	for i, ci := range contacts {
		for k, ck := range contacts {
			a[i][k] = influence(ci, ck, ci.PrimaryBody) - influence(ci, ck, ci.NormalBody)
		}
	}
	return a
}
