package types

import (
	"math"
	"testing"
)

func TestEmptyBoxAccumulation(t *testing.T) {
	box := EmptyBox()

	if box.Min[0] != math.MaxFloat32 || box.Max[0] != -math.MaxFloat32 {
		t.Fatalf("expected empty box extents to be inverted; got min %v max %v", box.Min, box.Max)
	}

	box = box.Union(NewBox(XYZ(-1, 0, 2), XYZ(1, 2, 3)))
	if box.Min != XYZ(-1, 0, 2) || box.Max != XYZ(1, 2, 3) {
		t.Fatalf("expected union with empty box to yield the other box; got min %v max %v", box.Min, box.Max)
	}
}

func TestBoxUnion(t *testing.T) {
	b1 := NewBox(XYZ(-2, 0, -2), XYZ(-1, 1, -1))
	b2 := NewBox(XYZ(1, -1, 1), XYZ(2, 1, 2))

	union := b1.Union(b2)
	if union.Min != XYZ(-2, -1, -2) {
		t.Fatalf("expected union min to be (-2, -1, -2); got %v", union.Min)
	}
	if union.Max != XYZ(2, 1, 2) {
		t.Fatalf("expected union max to be (2, 1, 2); got %v", union.Max)
	}
}

func TestBoxCentroid(t *testing.T) {
	box := NewBox(XYZ(-2, 0, 2), XYZ(2, 4, 4))

	if c := box.Centroid(); c != XYZ(0, 2, 3) {
		t.Fatalf("expected centroid to be (0, 2, 3); got %v", c)
	}
}

func TestBoxContains(t *testing.T) {
	type spec struct {
		point       Vec3
		expContains bool
	}

	box := NewBox(XYZ(-1, -1, -1), XYZ(1, 1, 1))
	specs := []spec{
		{XYZ(0, 0, 0), true},
		{XYZ(1, 1, 1), true},
		{XYZ(-1, 0.5, 0), true},
		{XYZ(1.001, 0, 0), false},
		{XYZ(0, -2, 0), false},
	}

	for index, s := range specs {
		if contains := box.Contains(s.point); contains != s.expContains {
			t.Fatalf("[spec %d] expected Contains(%v) to return %t; got %t", index, s.point, s.expContains, contains)
		}
	}
}

func TestBoxRayIntersect(t *testing.T) {
	type spec struct {
		ray      Ray
		expHit   bool
		expTNear float32
		expTFar  float32
	}

	box := NewBox(XYZ(-1, -1, -1), XYZ(1, 1, 1))
	specs := []spec{
		// Straight through the box center
		{Ray{XYZ(0, 0, -5), XYZ(0, 0, 1), 0, 100}, true, 4, 6},
		// Same ray pointing away from the box
		{Ray{XYZ(0, 0, -5), XYZ(0, 0, -1), 0, 100}, false, 0, 0},
		// Origin inside the box; entry clips to TMin
		{Ray{XYZ(0, 0, 0), XYZ(0, 0, 1), 0, 100}, true, 0, 1},
		// Box beyond the valid interval
		{Ray{XYZ(0, 0, -5), XYZ(0, 0, 1), 0, 2}, false, 0, 0},
		// Box before the valid interval
		{Ray{XYZ(0, 0, -5), XYZ(0, 0, 1), 7, 100}, false, 0, 0},
		// Parallel to the x slab while inside it
		{Ray{XYZ(0, 0, -5), XYZ(0, 0, 1), 0, 100}, true, 4, 6},
		// Parallel to the x slab while outside it
		{Ray{XYZ(2, 0, -5), XYZ(0, 0, 1), 0, 100}, false, 0, 0},
		// Diagonal through two corners
		{Ray{XYZ(-2, -2, -2), XYZ(1, 1, 1), 0, 100}, true, 1, 3},
	}

	for index, s := range specs {
		hit, tNear, tFar := box.IntersectRay(s.ray)
		if hit != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, hit)
		}
		if !hit {
			continue
		}
		if tNear != s.expTNear || tFar != s.expTFar {
			t.Fatalf("[spec %d] expected intersection interval [%f, %f]; got [%f, %f]", index, s.expTNear, s.expTFar, tNear, tFar)
		}
	}
}
