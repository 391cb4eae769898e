package types

import "math"

// An axis-aligned bounding box. Once populated, Min <= Max holds
// componentwise.
type Box struct {
	Min Vec3
	Max Vec3
}

// Create an empty box suitable for accumulating bounds via Union. Any
// union with a real box yields that box.
func EmptyBox() Box {
	return Box{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Create a box spanning the given corners.
func NewBox(min, max Vec3) Box {
	return Box{Min: min, Max: max}
}

// Calculate the union of two boxes.
func (b Box) Union(other Box) Box {
	return Box{
		Min: MinVec3(b.Min, other.Min),
		Max: MaxVec3(b.Max, other.Max),
	}
}

// Get the box center.
func (b Box) Centroid() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Check whether the box contains a point. Points on the box surface are
// treated as contained.
func (b Box) Contains(p Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis] || p[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Intersect a ray with the box using the slab method. The per-axis
// parametric intervals are overlapped and clipped to [ray.TMin, ray.TMax].
// When the ray enters the box inside its validity interval this method
// returns true together with the clipped entry/exit distances. The test
// is conservative; it never reports a miss for a box the ray actually
// enters in range.
func (b Box) IntersectRay(ray Ray) (hit bool, tNear, tFar float32) {
	tNear = ray.TMin
	tFar = ray.TMax

	for axis := 0; axis < 3; axis++ {
		if ray.Dir[axis] == 0 {
			// Parallel to the slab; either always inside it or never.
			if ray.Origin[axis] < b.Min[axis] || ray.Origin[axis] > b.Max[axis] {
				return false, 0, 0
			}
			continue
		}

		invDir := 1.0 / ray.Dir[axis]
		t0 := (b.Min[axis] - ray.Origin[axis]) * invDir
		t1 := (b.Max[axis] - ray.Origin[axis]) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}

		if tNear > tFar {
			return false, 0, 0
		}
	}

	return true, tNear, tFar
}
