package resolve

import (
	"math"
	"testing"

	"github.com/akmonengine/impulse2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// Scenario 1: two equal-mass disks meet head-on with full restitution and
// exchange velocities exactly.
func TestScenario_HeadOnEqualMass(t *testing.T) {
	a := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	a.Velocity = mgl64.Vec2{1, 0}
	b := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	b.Velocity = mgl64.Vec2{-1, 0}

	c := &Contact{
		PrimaryBody: a, NormalBody: b,
		Normal:         mgl64.Vec2{-1, 0},
		NormalVelocity: -2,
		Elasticity:     1,
	}

	p := DefaultParams()
	p.CollisionHandling = Simultaneous
	applied, err := Handle([]*Contact{c}, nil, p)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !applied {
		t.Fatal("expected an impulse to be applied")
	}
	approx(t, "a.Velocity.X()", a.Velocity.X(), -1)
	approx(t, "b.Velocity.X()", b.Velocity.X(), 1)
	approx(t, "impulse", c.Impulse, 2)
}

// Scenario 2: a box lands flat on two symmetric contact points at once.
// Only HYBRID pulls the second large contact into the focus contact's
// subset, so the two points resolve together and no spin is induced.
func TestScenario_BlockLandingFlat_Hybrid(t *testing.T) {
	ground := body.NewStaticBody(body.NewTransform(), &body.Circle{Radius: 1})
	block := body.NewBody(body.NewTransform(), 2, 1, body.Dynamic)
	block.Velocity = mgl64.Vec2{0, -1}

	left := &Contact{
		PrimaryBody: block, NormalBody: ground,
		R1:             mgl64.Vec2{-1, 0},
		Normal:         mgl64.Vec2{0, 1},
		NormalVelocity: -1,
		Elasticity:     0.5,
	}
	right := &Contact{
		PrimaryBody: block, NormalBody: ground,
		R1:             mgl64.Vec2{1, 0},
		Normal:         mgl64.Vec2{0, 1},
		NormalVelocity: -1,
		Elasticity:     0.5,
	}

	p := DefaultParams()
	p.CollisionHandling = Hybrid
	if _, err := Handle([]*Contact{left, right}, nil, p); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	approx(t, "block.Velocity.X()", block.Velocity.X(), 0)
	approx(t, "block.Velocity.Y()", block.Velocity.Y(), 0.5)
	approx(t, "block.AngularVelocity", block.AngularVelocity, 0)
	approx(t, "left.Impulse", left.Impulse, 1.5)
	approx(t, "right.Impulse", right.Impulse, 1.5)
}

// Scenario 3: three equal-mass disks in a line, the first moving into the
// other two at rest. SERIAL_GROUPED resolves each binary collision in
// sequence (no joints tie them together, so grouping degenerates to
// separate focus contacts): the cradle result is the first disk stopping
// dead and the last disk inheriting all the velocity.
func TestScenario_NewtonsCradle_SerialGrouped(t *testing.T) {
	d0 := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	d0.Velocity = mgl64.Vec2{1, 0}
	d1 := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	d2 := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)

	c01 := &Contact{PrimaryBody: d1, NormalBody: d0, Normal: mgl64.Vec2{1, 0}, NormalVelocity: -1, Elasticity: 1}
	c12 := &Contact{PrimaryBody: d2, NormalBody: d1, Normal: mgl64.Vec2{1, 0}, NormalVelocity: 0, Elasticity: 1}

	p := DefaultParams()
	p.CollisionHandling = SerialGrouped
	if _, err := Handle([]*Contact{c01, c12}, nil, p); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	approx(t, "d0.Velocity.X()", d0.Velocity.X(), 0)
	approx(t, "d1.Velocity.X()", d1.Velocity.X(), 0)
	approx(t, "d2.Velocity.X()", d2.Velocity.X(), 1)
}

// Scenario 4: a joint between two bodies must end with (near) zero
// relative normal velocity regardless of the approach speed fed in.
func TestScenario_PendulumJoint(t *testing.T) {
	a := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	a.Velocity = mgl64.Vec2{2, 0}
	b := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)

	c := &Contact{
		PrimaryBody: a, NormalBody: b,
		Normal:         mgl64.Vec2{1, 0},
		NormalVelocity: 2,
		Joint:          true,
	}

	p := DefaultParams()
	if _, err := Handle([]*Contact{c}, nil, p); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	relVel := a.Velocity.Sub(b.Velocity).Dot(c.Normal)
	if math.Abs(relVel) > p.VelocityTol {
		t.Errorf("post-resolution joint relative normal velocity = %v, want |.| <= %v", relVel, p.VelocityTol)
	}
}

// Scenario 5: a disk bouncing off an immovable wall reverses direction and
// the wall itself stays put regardless of the impulse involved.
func TestScenario_InfiniteMassWall(t *testing.T) {
	wall := body.NewStaticBody(body.NewTransform(), &body.Circle{Radius: 1})
	disk := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	disk.Velocity = mgl64.Vec2{-1, 0}

	c := &Contact{
		PrimaryBody: disk, NormalBody: wall,
		Normal:         mgl64.Vec2{1, 0},
		NormalVelocity: -1,
		Elasticity:     1,
	}

	p := DefaultParams()
	p.CollisionHandling = Simultaneous
	if _, err := Handle([]*Contact{c}, nil, p); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	approx(t, "disk.Velocity.X()", disk.Velocity.X(), 1)
	approx(t, "wall.Velocity.X()", wall.Velocity.X(), 0)
	approx(t, "impulse", c.Impulse, 2)
}

// Scenario 6: a resting stack with every contact already at (or within
// tolerance of) zero relative velocity must come away untouched — no
// contact should pick up a spurious positive impulse.
func TestScenario_RestingStack_NoSpuriousImpulse(t *testing.T) {
	ground := body.NewStaticBody(body.NewTransform(), &body.Circle{Radius: 1})
	box1 := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	box2 := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)
	box3 := body.NewBody(body.NewTransform(), 1, 1, body.Dynamic)

	contacts := []*Contact{
		{PrimaryBody: box1, NormalBody: ground, Normal: mgl64.Vec2{0, 1}},
		{PrimaryBody: box1, NormalBody: ground, Normal: mgl64.Vec2{0, 1}},
		{PrimaryBody: box2, NormalBody: box1, Normal: mgl64.Vec2{0, 1}},
		{PrimaryBody: box2, NormalBody: box1, Normal: mgl64.Vec2{0, 1}},
		{PrimaryBody: box3, NormalBody: box2, Normal: mgl64.Vec2{0, 1}},
		{PrimaryBody: box3, NormalBody: box2, Normal: mgl64.Vec2{0, 1}},
	}

	p := DefaultParams()
	p.CollisionHandling = SerialGroupedLastPass
	applied, err := Handle(contacts, nil, p)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if applied {
		t.Error("expected no impulse to be applied to an already-resting stack")
	}
	for i, c := range contacts {
		if c.Impulse > TinyImpulse {
			t.Errorf("contact %d picked up spurious impulse %v", i, c.Impulse)
		}
	}
}
