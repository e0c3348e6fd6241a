// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Sphere represents a 3D sphere defined by its center point and a radius.
type Sphere struct {
	Center Vector3
	Radius float32
}

// NewSphere returns a new sphere with the given center and radius.
func NewSphere(center Vector3, radius float32) Sphere {
	return Sphere{center, radius}
}

// SetFromBox sets the center and radius of this sphere to surround the given box.
func (s *Sphere) SetFromBox(box Box3) {
	s.Center = box.Center()
	s.Radius = box.Size().Length() * 0.5
}

// SetFromPoints sets this sphere from the given points,
// with an optional center (pass nil to use the points' bounding box center).
func (s *Sphere) SetFromPoints(points []Vector3, center *Vector3) {
	if center != nil {
		s.Center = *center
	} else {
		box := B3Empty()
		for _, p := range points {
			box.ExpandByPoint(p)
		}
		s.Center = box.Center()
	}
	maxRadiusSq := float32(0)
	for _, p := range points {
		maxRadiusSq = Max(maxRadiusSq, s.Center.DistanceToSquared(p))
	}
	s.Radius = Sqrt(maxRadiusSq)
}

// IsEmpty returns true if this sphere is empty (radius <= 0).
func (s Sphere) IsEmpty() bool {
	return s.Radius <= 0
}

// ContainsPoint returns true if this sphere contains the given point.
func (s Sphere) ContainsPoint(point Vector3) bool {
	return point.DistanceToSquared(s.Center) <= s.Radius*s.Radius
}

// Union returns the smallest sphere containing both this sphere and the other.
func (s Sphere) Union(other Sphere) Sphere {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	d := s.Center.DistanceTo(other.Center)
	if d+other.Radius <= s.Radius {
		return s
	}
	if d+s.Radius <= other.Radius {
		return other
	}
	r := (d + s.Radius + other.Radius) / 2
	// center moves along the line between the two centers toward the larger
	t := (r - s.Radius) / d
	return Sphere{s.Center.Lerp(other.Center, t), r}
}

// Translate translates this sphere by the given offset.
func (s Sphere) Translate(offset Vector3) Sphere {
	return Sphere{s.Center.Add(offset), s.Radius}
}
