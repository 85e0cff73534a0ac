package detect

import (
	"testing"

	"github.com/akmonengine/impulse2d/body"
	"github.com/go-gl/mathgl/mgl64"
)

func TestSpatialGrid_FindPairs_Overlapping(t *testing.T) {
	a := circleBodyAt(0, 0, 1)
	b := circleBodyAt(1.5, 0, 1)

	grid := NewSpatialGrid(2, 16)
	grid.Rebuild([]*body.Body{a, b})

	pairs := grid.FindPairs([]*body.Body{a, b})
	if len(pairs) != 1 {
		t.Fatalf("FindPairs returned %d pairs, want 1", len(pairs))
	}
	if pairs[0].BodyA != a || pairs[0].BodyB != b {
		t.Errorf("pair = %+v, want (a, b) in insertion order", pairs[0])
	}
}

func TestSpatialGrid_FindPairs_SkipsStaticStatic(t *testing.T) {
	a := body.NewStaticBody(body.Transform{Position: mgl64.Vec2{0, 0}}, &body.Circle{Radius: 1})
	b := body.NewStaticBody(body.Transform{Position: mgl64.Vec2{0.5, 0}}, &body.Circle{Radius: 1})

	grid := NewSpatialGrid(2, 16)
	grid.Rebuild([]*body.Body{a, b})

	if pairs := grid.FindPairs([]*body.Body{a, b}); len(pairs) != 0 {
		t.Errorf("FindPairs returned %d pairs, want 0 for a static/static pair", len(pairs))
	}
}

func TestSpatialGrid_FindPairs_SkipsSleepingPair(t *testing.T) {
	a := circleBodyAt(0, 0, 1)
	b := circleBodyAt(1.5, 0, 1)
	a.IsSleeping = true
	b.IsSleeping = true

	grid := NewSpatialGrid(2, 16)
	grid.Rebuild([]*body.Body{a, b})

	if pairs := grid.FindPairs([]*body.Body{a, b}); len(pairs) != 0 {
		t.Errorf("FindPairs returned %d pairs, want 0 for two sleeping bodies", len(pairs))
	}
}

func TestSpatialGrid_FindPairs_NoOverlap(t *testing.T) {
	a := circleBodyAt(0, 0, 1)
	b := circleBodyAt(50, 50, 1)

	grid := NewSpatialGrid(2, 16)
	grid.Rebuild([]*body.Body{a, b})

	if pairs := grid.FindPairs([]*body.Body{a, b}); len(pairs) != 0 {
		t.Errorf("FindPairs returned %d pairs, want 0 for distant bodies", len(pairs))
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32}
	for in, want := range cases {
		if got := nextPowerOfTwo(in); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
