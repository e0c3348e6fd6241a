// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Ray represents an oriented 3D line segment defined by an origin point
// and a normalized direction vector, used for pointer hit testing.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay returns a new ray with the given origin and (normalized) direction.
func NewRay(origin, dir Vector3) Ray {
	return Ray{origin, dir}
}

// At returns the point at the given distance along the ray.
func (r Ray) At(t float32) Vector3 {
	return r.Dir.MulScalar(t).Add(r.Origin)
}

// DistanceToPoint returns the distance of this ray to the given point.
func (r Ray) DistanceToPoint(point Vector3) float32 {
	dirDist := point.Sub(r.Origin).Dot(r.Dir)
	if dirDist < 0 { // point behind the ray
		return r.Origin.DistanceTo(point)
	}
	return r.At(dirDist).DistanceTo(point)
}

// IntersectSphere computes the distance along the ray at which it first
// intersects the given sphere. Returns false if there is no intersection
// in front of the ray origin.
func (r Ray) IntersectSphere(s Sphere) (float32, bool) {
	oc := s.Center.Sub(r.Origin)
	tca := oc.Dot(r.Dir)
	d2 := oc.Dot(oc) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}
	thc := Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc
	if t1 < 0 { // both behind the origin
		return 0, false
	}
	if t0 < 0 { // origin inside the sphere
		return t1, true
	}
	return t0, true
}

// IntersectBox computes the distance along the ray at which it first
// intersects the given box. Returns false if there is no intersection.
func (r Ray) IntersectBox(box Box3) (float32, bool) {
	var tmin, tmax, tymin, tymax, tzmin, tzmax float32

	invdirx := 1 / r.Dir.X
	invdiry := 1 / r.Dir.Y
	invdirz := 1 / r.Dir.Z

	if invdirx >= 0 {
		tmin = (box.Min.X - r.Origin.X) * invdirx
		tmax = (box.Max.X - r.Origin.X) * invdirx
	} else {
		tmin = (box.Max.X - r.Origin.X) * invdirx
		tmax = (box.Min.X - r.Origin.X) * invdirx
	}
	if invdiry >= 0 {
		tymin = (box.Min.Y - r.Origin.Y) * invdiry
		tymax = (box.Max.Y - r.Origin.Y) * invdiry
	} else {
		tymin = (box.Max.Y - r.Origin.Y) * invdiry
		tymax = (box.Min.Y - r.Origin.Y) * invdiry
	}
	if tmin > tymax || tymin > tmax {
		return 0, false
	}
	// these lines also handle the case where tmin or tmax is NaN
	// (result of 0 * Inf); NaN comparisons return false
	if tymin > tmin || IsNaN(tmin) {
		tmin = tymin
	}
	if tymax < tmax || IsNaN(tmax) {
		tmax = tymax
	}
	if invdirz >= 0 {
		tzmin = (box.Min.Z - r.Origin.Z) * invdirz
		tzmax = (box.Max.Z - r.Origin.Z) * invdirz
	} else {
		tzmin = (box.Max.Z - r.Origin.Z) * invdirz
		tzmax = (box.Min.Z - r.Origin.Z) * invdirz
	}
	if tmin > tzmax || tzmin > tmax {
		return 0, false
	}
	if tzmin > tmin || IsNaN(tmin) {
		tmin = tzmin
	}
	if tzmax < tmax || IsNaN(tmax) {
		tmax = tzmax
	}
	if tmax < 0 { // box behind the ray
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// DistanceSquaredToSegment returns the squared distance between this ray and
// the line segment from v0 to v1, along with the distance along the ray of
// the closest approach. Used for hit testing against line primitives.
func (r Ray) DistanceSquaredToSegment(v0, v1 Vector3) (distSq, rayT float32) {
	segCenter := v0.Add(v1).MulScalar(0.5)
	segDir := v1.Sub(v0).Normal()
	segExtent := v0.DistanceTo(v1) * 0.5

	diff := r.Origin.Sub(segCenter)
	a01 := -r.Dir.Dot(segDir)
	b0 := diff.Dot(r.Dir)
	b1 := -diff.Dot(segDir)
	c := diff.LengthSquared()
	det := Abs(1 - a01*a01)

	var s0, s1, sqrDist float32
	if det > 0 {
		// the ray and segment are not parallel
		s0 = a01*b1 - b0
		s1 = a01*b0 - b1
		extDet := segExtent * det
		switch {
		case s0 >= 0 && s1 >= -extDet && s1 <= extDet:
			// minimum at interior points of both ray and segment
			invDet := 1 / det
			s0 *= invDet
			s1 *= invDet
			sqrDist = s0*(s0+a01*s1+2*b0) + s1*(a01*s0+s1+2*b1) + c
		case s1 <= -extDet || s1 > extDet:
			// closest segment point is an endpoint
			if s1 <= -extDet {
				s1 = -segExtent
			} else {
				s1 = segExtent
			}
			s0 = Max(0, -(a01*s1 + b0))
			sqrDist = -s0*s0 + s1*(s1+2*b1) + c
		default:
			// closest ray point is the origin
			s0 = 0
			s1 = Clamp(-b1, -segExtent, segExtent)
			sqrDist = -s0*s0 + s1*(s1+2*b1) + c
		}
	} else {
		// ray and segment are parallel
		s1 = -segExtent
		if a01 > 0 {
			s1 = segExtent
		}
		s0 = Max(0, -(a01*s1 + b0))
		sqrDist = -s0*s0 + s1*(s1+2*b1) + c
	}
	return Max(sqrDist, 0), s0
}
