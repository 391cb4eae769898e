package accel

import (
	"math"

	"github.com/achilleasa/go-bvh/types"
)

func init() {
	register("exhaustive", func() Accelerator { return NewExhaustive() })
}

// An accelerator that tests every primitive in the set on each query.
// Query cost is linear in the primitive count so it is only suitable for
// tiny scenes and for cross-validating other accelerators.
type Exhaustive struct {
	set   PrimitiveSet
	count int
}

// Create a new unbuilt exhaustive accelerator.
func NewExhaustive() *Exhaustive {
	return &Exhaustive{}
}

// Get the accelerator name used for registry lookups.
func (ex *Exhaustive) Name() string {
	return "exhaustive"
}

// Build snapshots the primitive count; no index structure is required.
func (ex *Exhaustive) Build(set PrimitiveSet) error {
	count := set.Count()
	if count == 0 {
		return ErrEmptyPrimitiveSet
	}

	ex.set = set
	ex.count = count
	return nil
}

// Find the nearest primitive intersection by scanning the whole set.
func (ex *Exhaustive) Intersect(sampleTime float32, ray types.Ray) (Intersection, bool) {
	best := Intersection{THit: math.MaxFloat32}
	hit := false

	for prim := 0; prim < ex.count; prim++ {
		if isect, primHit := primRayIntersect(ex.set, prim, sampleTime, ray); primHit && isect.THit < best.THit {
			best = isect
			hit = true
		}
	}

	if !hit {
		return Intersection{}, false
	}
	return best, true
}
