package types

// A ray with a parametric validity interval. Hits outside [TMin, TMax]
// are not considered valid intersections.
type Ray struct {
	Origin Vec3
	Dir    Vec3

	TMin float32
	TMax float32
}

// Get the point along the ray at parametric distance t.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Check whether t falls inside the ray's validity interval.
func (r Ray) InRange(t float32) bool {
	return r.TMin <= t && t <= r.TMax
}
