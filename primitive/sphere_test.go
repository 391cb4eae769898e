package primitive

import (
	"math/rand"
	"testing"

	"github.com/achilleasa/go-bvh/accel"
	"github.com/achilleasa/go-bvh/types"
)

func TestSphereBounds(t *testing.T) {
	set := NewSphereSet([]Sphere{
		{Center: types.XYZ(0, 0, 0), Radius: 1},
		{Center: types.XYZ(0, 0, 0), Radius: 1, Velocity: types.XYZ(2, 0, 0)},
	})

	if bounds := set.Bounds(0); bounds != types.NewBox(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)) {
		t.Fatalf("expected static sphere bounds to be the unit box around the center; got %v", bounds)
	}

	expBounds := types.NewBox(types.XYZ(-1, -1, -1), types.XYZ(3, 1, 1))
	if bounds := set.Bounds(1); bounds != expBounds {
		t.Fatalf("expected moving sphere bounds to cover the full motion %v; got %v", expBounds, bounds)
	}
}

func TestSphereIntersect(t *testing.T) {
	type spec struct {
		ray       types.Ray
		time      float32
		expHit    bool
		expTHit   float32
		expNormal types.Vec3
	}

	set := NewSphereSet([]Sphere{
		{Center: types.XYZ(0, 0, 0), Radius: 1, Velocity: types.XYZ(2, 0, 0)},
	})

	specs := []spec{
		// Head-on hit at time 0
		{types.Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-3, TMax: 100}, 0, true, 4, types.XYZ(0, 0, -1)},
		// Same ray misses once the sphere has moved away
		{types.Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-3, TMax: 100}, 1, false, 0, types.Vec3{}},
		// Displaced ray hits the sphere at its time 1 position
		{types.Ray{Origin: types.XYZ(2, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-3, TMax: 100}, 1, true, 4, types.XYZ(0, 0, -1)},
		// Origin inside the sphere; only the far root is valid
		{types.Ray{Origin: types.XYZ(0, 0, 0), Dir: types.XYZ(0, 0, 1), TMin: 1e-3, TMax: 100}, 0, true, 1, types.XYZ(0, 0, 1)},
		// Near root falls below TMin so the far root is reported
		{types.Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 4.5, TMax: 100}, 0, true, 6, types.XYZ(0, 0, 1)},
		// Both roots beyond TMax
		{types.Ray{Origin: types.XYZ(0, 0, -5), Dir: types.XYZ(0, 0, 1), TMin: 1e-3, TMax: 2}, 0, false, 0, types.Vec3{}},
	}

	for index, s := range specs {
		isect, hit := set.Intersect(0, s.time, s.ray)
		if hit != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, hit)
		}
		if !hit {
			continue
		}
		if isect.THit != s.expTHit {
			t.Fatalf("[spec %d] expected t %f; got %f", index, s.expTHit, isect.THit)
		}
		if isect.Normal != s.expNormal {
			t.Fatalf("[spec %d] expected normal %v; got %v", index, s.expNormal, isect.Normal)
		}
	}
}

func TestSphereSceneAcceleratorAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	spheres := make([]Sphere, 200)
	for idx := range spheres {
		spheres[idx] = Sphere{
			Center: types.XYZ(-50+100*rng.Float32(), -50+100*rng.Float32(), -50+100*rng.Float32()),
			Radius: 0.5 + 3*rng.Float32(),
		}
	}
	set := NewSphereSet(spheres)

	bvh, err := accel.New("bvh")
	if err != nil {
		t.Fatalf("expected bvh lookup to succeed; got %v", err)
	}
	exhaustive, err := accel.New("exhaustive")
	if err != nil {
		t.Fatalf("expected exhaustive lookup to succeed; got %v", err)
	}

	if err = bvh.Build(set); err != nil {
		t.Fatalf("expected bvh build to succeed; got %v", err)
	}
	if err = exhaustive.Build(set); err != nil {
		t.Fatalf("expected exhaustive build to succeed; got %v", err)
	}

	for i := 0; i < 1000; i++ {
		ray := types.Ray{
			Origin: types.XYZ(-80+160*rng.Float32(), -80+160*rng.Float32(), -80+160*rng.Float32()),
			Dir:    types.XYZ(-1+2*rng.Float32(), -1+2*rng.Float32(), -1+2*rng.Float32()).Normalize(),
			TMin:   1e-3,
			TMax:   1e4,
		}
		if ray.Dir.Len() == 0 {
			continue
		}

		bvhIsect, bvhHit := bvh.Intersect(0, ray)
		exIsect, exHit := exhaustive.Intersect(0, ray)

		if bvhHit != exHit {
			t.Fatalf("[ray %d] expected accelerators to agree on hit; got %t vs %t", i, bvhHit, exHit)
		}
		if bvhHit && (bvhIsect.THit != exIsect.THit || bvhIsect.PrimIndex != exIsect.PrimIndex) {
			t.Fatalf("[ray %d] expected identical hits; got t %f prim %d vs t %f prim %d", i, bvhIsect.THit, bvhIsect.PrimIndex, exIsect.THit, exIsect.PrimIndex)
		}
	}
}
