package detect

import (
	"math"
	"testing"

	"github.com/akmonengine/impulse2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

func circleBodyAt(x, y, radius float64) *body.Body {
	t := body.Transform{Position: mgl64.Vec2{x, y}}
	b := body.NewDynamicBody(t, &body.Circle{Radius: radius}, 1)
	return b
}

func TestCircleCircle_Overlapping(t *testing.T) {
	a := circleBodyAt(0, 0, 1)
	b := circleBodyAt(1.5, 0, 1)
	a.Velocity = mgl64.Vec2{1, 0}

	c := circleCircle(a, a.Shape.(*body.Circle), b, b.Shape.(*body.Circle))
	if c == nil {
		t.Fatal("expected a contact for overlapping circles")
	}
	if c.Normal.X() <= 0 {
		t.Errorf("Normal = %v, want it to point from a toward b (+X)", c.Normal)
	}
	if c.PrimaryBody != b || c.NormalBody != a {
		t.Error("expected b as primary, a as normal body")
	}
	if c.NormalVelocity >= 0 {
		t.Errorf("NormalVelocity = %v, want negative (a approaching b)", c.NormalVelocity)
	}
}

func TestCircleCircle_NotTouching(t *testing.T) {
	a := circleBodyAt(0, 0, 1)
	b := circleBodyAt(5, 0, 1)
	if c := circleCircle(a, a.Shape.(*body.Circle), b, b.Shape.(*body.Circle)); c != nil {
		t.Errorf("expected no contact for distant circles, got %+v", c)
	}
}

func TestCircleBox_Overlapping(t *testing.T) {
	boxT := body.Transform{Position: mgl64.Vec2{0, 0}}
	boxBody := body.NewStaticBody(boxT, &body.Box{HalfExtents: mgl64.Vec2{1, 1}})
	circleBody := circleBodyAt(0, 1.5, 1)

	c := circleBox(circleBody, circleBody.Shape.(*body.Circle), boxBody, boxBody.Shape.(*body.Box))
	if c == nil {
		t.Fatal("expected a contact for an overlapping circle/box pair")
	}
	if math.Abs(c.Normal.Y()-1) > 1e-9 {
		t.Errorf("Normal = %v, want (0, 1)", c.Normal)
	}
	if c.PrimaryBody != circleBody || c.NormalBody != boxBody {
		t.Error("expected circle as primary, box as normal body")
	}
}

func TestCircleBox_NotTouching(t *testing.T) {
	boxT := body.Transform{Position: mgl64.Vec2{0, 0}}
	boxBody := body.NewStaticBody(boxT, &body.Box{HalfExtents: mgl64.Vec2{1, 1}})
	circleBody := circleBodyAt(0, 10, 1)

	if c := circleBox(circleBody, circleBody.Shape.(*body.Circle), boxBody, boxBody.Shape.(*body.Box)); c != nil {
		t.Errorf("expected no contact, got %+v", c)
	}
}

func TestNarrowPhase_DispatchesBothOrders(t *testing.T) {
	boxT := body.Transform{Position: mgl64.Vec2{0, 0}}
	boxBody := body.NewStaticBody(boxT, &body.Box{HalfExtents: mgl64.Vec2{1, 1}})
	circleBody := circleBodyAt(0, 1.5, 1)

	c1 := narrowPhase(circleBody, boxBody)
	c2 := narrowPhase(boxBody, circleBody)
	if c1 == nil || c2 == nil {
		t.Fatal("expected a contact regardless of argument order")
	}
	if c1.PrimaryBody != circleBody || c2.PrimaryBody != circleBody {
		t.Error("expected the circle as primary body regardless of call order")
	}
}

func TestFindContacts_EndToEnd(t *testing.T) {
	a := circleBodyAt(0, 0, 1)
	b := circleBodyAt(1.9, 0, 1)
	c := circleBodyAt(100, 100, 1) // far away, should not produce a contact

	grid := NewSpatialGrid(2, 16)
	contacts := FindContacts([]*body.Body{a, b, c}, grid, 2)
	if len(contacts) != 1 {
		t.Fatalf("FindContacts returned %d contacts, want 1", len(contacts))
	}
}
