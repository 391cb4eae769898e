// Package primitive provides a reference PrimitiveSet implementation used
// by the CLI tools and tests. Renderers are expected to supply their own
// sets for real geometry.
package primitive

import (
	"math"

	"github.com/achilleasa/go-bvh/accel"
	"github.com/achilleasa/go-bvh/types"
)

// A sphere with an optional linear velocity. The velocity displaces the
// sphere center over a unit time interval and is sampled via the time
// value passed to intersection queries.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Velocity types.Vec3
}

// Get the sphere center at a particular time sample.
func (s Sphere) centerAt(sampleTime float32) types.Vec3 {
	return s.Center.Add(s.Velocity.Mul(sampleTime))
}

// A PrimitiveSet backed by a list of spheres.
type SphereSet struct {
	spheres []Sphere
}

// Create a sphere-backed primitive set.
func NewSphereSet(spheres []Sphere) *SphereSet {
	return &SphereSet{spheres: spheres}
}

// Get the number of spheres in the set.
func (set *SphereSet) Count() int {
	return len(set.spheres)
}

// Get conservative bounds for a sphere covering its full motion over the
// unit time interval.
func (set *SphereSet) Bounds(index int) types.Box {
	s := set.spheres[index]
	r := types.XYZ(s.Radius, s.Radius, s.Radius)

	bounds := types.NewBox(s.Center.Sub(r), s.Center.Add(r))
	end := s.centerAt(1)
	return bounds.Union(types.NewBox(end.Sub(r), end.Add(r)))
}

// Intersect a ray with a sphere sampled at a particular time value. The
// nearest root inside the ray's validity interval is reported together
// with the hit point and surface normal.
func (set *SphereSet) Intersect(index int, sampleTime float32, ray types.Ray) (accel.Intersection, bool) {
	s := set.spheres[index]
	center := s.centerAt(sampleTime)

	oc := ray.Origin.Sub(center)
	a := ray.Dir.Dot(ray.Dir)
	halfB := oc.Dot(ray.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return accel.Intersection{}, false
	}

	sqrtDisc := float32(math.Sqrt(float64(disc)))
	t := (-halfB - sqrtDisc) / a
	if !ray.InRange(t) {
		t = (-halfB + sqrtDisc) / a
		if !ray.InRange(t) {
			return accel.Intersection{}, false
		}
	}

	point := ray.PointAt(t)
	return accel.Intersection{
		THit:   t,
		Point:  point,
		Normal: point.Sub(center).Mul(1.0 / s.Radius),
	}, true
}
