package accel

import (
	"math"

	"github.com/achilleasa/go-bvh/types"
)

// The PrimitiveSet interface is implemented by any collection of geometry
// that can be indexed by an accelerator. The accelerator never interprets
// what kind of geometry an index refers to; it only asks for per-primitive
// bounds at build time and delegates ray tests back to the set at query
// time.
type PrimitiveSet interface {
	// Get the number of primitives in the set.
	Count() int

	// Get the bounding box for the primitive at the given index.
	Bounds(index int) types.Box

	// Intersect the primitive at the given index with a ray sampled at
	// a particular time value. Implementations populate the returned
	// intersection with whatever geometric payload they support; THit
	// must always be set on a hit.
	Intersect(index int, time float32, ray types.Ray) (Intersection, bool)
}

// The result of a successful ray query. THit and PrimIndex are always
// populated by the accelerator; the remaining fields are forwarded
// unmodified from the primitive set's own intersection test.
type Intersection struct {
	// Parametric distance along the ray where the hit occurred.
	THit float32

	// Index of the primitive that was hit.
	PrimIndex int

	// Geometric payload populated by the primitive set.
	Point  types.Vec3
	Normal types.Vec3
}

// Intersect a single primitive, rejecting hits that fall outside the
// ray's validity interval.
func primRayIntersect(set PrimitiveSet, prim int, sampleTime float32, ray types.Ray) (Intersection, bool) {
	isect, hit := set.Intersect(prim, sampleTime, ray)
	if !hit {
		return Intersection{THit: math.MaxFloat32}, false
	}

	if isect.THit < ray.TMin || ray.TMax < isect.THit {
		return Intersection{THit: math.MaxFloat32}, false
	}

	isect.PrimIndex = prim
	return isect, true
}
