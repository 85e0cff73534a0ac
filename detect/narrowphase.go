package detect

import (
	"sync"

	"github.com/akmonengine/impulse2d/body"
	"github.com/akmonengine/impulse2d/resolve"
	"github.com/go-gl/mathgl/mgl64"
)

// FindContacts runs broad-phase AABB culling over bodies followed by a
// circle/circle and circle/box narrow-phase, producing the contact list a
// resolve.Handle call consumes for this step. grid is reused across calls
// to avoid reallocating its cell buckets every step; workers bounds the
// narrow-phase fan-out over candidate pairs (the broad phase runs on the
// calling goroutine, and the resolution core itself stays single-threaded).
func FindContacts(bodies []*body.Body, grid *SpatialGrid, workers int) []*resolve.Contact {
	for _, b := range bodies {
		b.Shape.ComputeAABB(b.Transform)
	}
	grid.Rebuild(bodies)
	pairs := grid.FindPairs(bodies)

	if workers < 1 {
		workers = 1
	}
	results := make([][]*resolve.Contact, len(pairs))
	task(workers, len(pairs), func(start, end int) {
		for i := start; i < end; i++ {
			if c := narrowPhase(pairs[i].BodyA, pairs[i].BodyB); c != nil {
				results[i] = []*resolve.Contact{c}
			}
		}
	})

	contacts := make([]*resolve.Contact, 0, len(pairs))
	for _, r := range results {
		contacts = append(contacts, r...)
	}
	return contacts
}

// narrowPhase dispatches on the pair's concrete shapes. It returns nil if
// the shapes are not actually touching or the pairing isn't one of this
// package's two supported primitives.
func narrowPhase(a, b *body.Body) *resolve.Contact {
	switch sa := a.Shape.(type) {
	case *body.Circle:
		switch sb := b.Shape.(type) {
		case *body.Circle:
			return circleCircle(a, sa, b, sb)
		case *body.Box:
			return circleBox(a, sa, b, sb)
		}
	case *body.Box:
		if sb, ok := b.Shape.(*body.Circle); ok {
			// circleBox already takes (circleOwner, boxOwner): b is the
			// circle here, so it's already primary — no flip needed.
			return circleBox(b, sb, a, sa)
		}
		// box/box is outside this package's narrow-phase scope (circle/circle
		// and circle/box only); such a pair is silently skipped.
	}
	return nil
}

// relativeNormalVelocity computes (primary.Velocity - normal.Velocity +
// angular contribution)·n for bodies with contact-point offsets r1, r2
// from their own centers of mass.
func relativeNormalVelocity(primary, normal *body.Body, r1, r2 mgl64.Vec2, n mgl64.Vec2) float64 {
	vp := primary.Velocity.Add(perpScaled(primary.AngularVelocity, r1))
	vn := normal.Velocity.Add(perpScaled(normal.AngularVelocity, r2))
	return vp.Sub(vn).Dot(n)
}

func perpScaled(omega float64, r mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-omega * r.Y(), omega * r.X()}
}

func restitutionOf(a, b *body.Body) float64 {
	e := a.Elasticity
	if b.Elasticity < e {
		e = b.Elasticity
	}
	return e
}

// circleCircle builds a contact for two overlapping circles, or returns
// nil if their centers are farther apart than the sum of their radii.
func circleCircle(a *body.Body, ca *body.Circle, b *body.Body, cb *body.Circle) *resolve.Contact {
	delta := b.Transform.Position.Sub(a.Transform.Position)
	dist := delta.Len()
	if dist >= ca.Radius+cb.Radius {
		return nil
	}

	var n mgl64.Vec2
	if dist > 1e-12 {
		n = delta.Mul(1 / dist)
	} else {
		n = mgl64.Vec2{1, 0}
	}

	// Contact point: the point on b's surface closest to a.
	r1 := n.Mul(-cb.Radius)       // offset from b's (primary) CM
	r2 := n.Mul(dist - cb.Radius) // offset from a's (normal) CM

	return &resolve.Contact{
		PrimaryBody:    b,
		NormalBody:     a,
		R1:             r1,
		R2:             r2,
		Normal:         n,
		NormalVelocity: relativeNormalVelocity(b, a, r1, r2, n),
		Elasticity:     restitutionOf(a, b),
	}
}

// circleBox builds a contact between a circle and an axis-aligned box by
// clamping the circle's center to the box and testing the resulting
// closest-point distance, or returns nil if they aren't touching.
func circleBox(circleOwner *body.Body, c *body.Circle, boxOwner *body.Body, bx *body.Box) *resolve.Contact {
	local := circleOwner.Transform.Position.Sub(boxOwner.Transform.Position)
	clamped := mgl64.Vec2{
		clamp(local.X(), -bx.HalfExtents.X(), bx.HalfExtents.X()),
		clamp(local.Y(), -bx.HalfExtents.Y(), bx.HalfExtents.Y()),
	}
	closest := boxOwner.Transform.Position.Add(clamped)
	delta := circleOwner.Transform.Position.Sub(closest)
	dist := delta.Len()
	if dist >= c.Radius {
		return nil
	}

	var n mgl64.Vec2
	if dist > 1e-12 {
		n = delta.Mul(1 / dist)
	} else {
		n = mgl64.Vec2{0, 1}
	}

	r1 := n.Mul(-c.Radius) // offset from circle's CM to contact point
	r2 := closest.Sub(boxOwner.Transform.Position)

	return &resolve.Contact{
		PrimaryBody:    circleOwner,
		NormalBody:     boxOwner,
		R1:             r1,
		R2:             r2,
		Normal:         n,
		NormalVelocity: relativeNormalVelocity(circleOwner, boxOwner, r1, r2, n),
		Elasticity:     restitutionOf(circleOwner, boxOwner),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// task fans fn out over [0, n) in workersCount contiguous chunks and waits
// for every chunk to finish; same sync.WaitGroup idiom as the root
// package's pipeline.go, kept as a package-local copy so detect has no
// dependency on the orchestration layer that calls it.
func task(workersCount, n int, fn func(start, end int)) {
	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount
	if chunkSize == 0 {
		return
	}

	for w := 0; w < workersCount; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
