// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Quat is a quaternion, used for rotations.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuatAxisAngle returns a new quaternion from given axis and angle
// rotation (in radians).
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	q := Quat{}
	q.SetFromAxisAngle(axis, angle)
	return q
}

// NewQuatFromUnitVectors returns the quaternion rotating unit vector
// from onto unit vector to, along the shortest arc. Opposite vectors
// rotate 180 degrees around an arbitrary perpendicular axis.
func NewQuatFromUnitVectors(from, to Vector3) Quat {
	w := from.Dot(to) + 1
	if w < 1e-6 {
		// opposite directions: pick any perpendicular axis
		axis := Vec3(0, 0, 1).Cross(from)
		if axis.LengthSquared() < 1e-6 {
			axis = Vec3(0, 1, 0).Cross(from)
		}
		return NewQuatAxisAngle(axis.Normal(), Pi)
	}
	cr := from.Cross(to)
	return Quat{cr.X, cr.Y, cr.Z, w}.Normal()
}

// SetIdentity sets this quaternion to the identity quaternion.
func (q *Quat) SetIdentity() {
	q.X = 0
	q.Y = 0
	q.Z = 0
	q.W = 1
}

// SetFromAxisAngle sets this quaternion with rotation of angle (in radians)
// around the given axis, which must be normalized.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	halfAngle := angle / 2
	s := Sin(halfAngle)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = Cos(halfAngle)
}

// Length returns the length of this quaternion.
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normal returns this quaternion normalized to unit length.
func (q Quat) Normal() Quat {
	l := q.Length()
	if l == 0 {
		q.SetIdentity()
		return q
	}
	l = 1 / l
	return Quat{q.X * l, q.Y * l, q.Z * l, q.W * l}
}

// Mul returns this quaternion multiplied by the other quaternion
// (i.e., the composition of the two rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		q.X*other.W + q.W*other.X + q.Y*other.Z - q.Z*other.Y,
		q.Y*other.W + q.W*other.Y + q.Z*other.X - q.X*other.Z,
		q.Z*other.W + q.W*other.Z + q.X*other.Y - q.Y*other.X,
		q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}
