// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides an orbit-style perspective camera and a
// controller that layers animated transitions, focus and fit math, and
// screen to world conversion on top of it.
package camera

import (
	"github.com/orrery-viz/orrery/math32"
)

// Camera is a perspective camera orbiting a target point. Position,
// Target and Up fully determine the view; there is no matrix state.
type Camera struct {

	// FOV is the vertical field of view in degrees.
	FOV float32 `toml:"fov"`

	// Aspect is the viewport width / height ratio.
	Aspect float32 `toml:"aspect"`

	// Near and Far are the clip plane distances.
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`

	// Pos is the camera position in world space.
	Pos math32.Vector3 `toml:"pos"`

	// Target is the point the camera looks at. Orbit keeps the
	// distance to it constant; Pan moves it with the camera.
	Target math32.Vector3 `toml:"target"`

	// Up is the camera up direction, rotated by vertical orbit.
	Up math32.Vector3 `toml:"up"`
}

// Defaults sets the default camera: 45 degree vertical FOV looking at
// the origin from +Z with Y up.
func (cm *Camera) Defaults() {
	cm.FOV = 45
	cm.Aspect = 1.6
	cm.Near = 0.1
	cm.Far = 2000
	cm.Pos = math32.Vec3(0, 0, 80)
	cm.Target = math32.Vector3{}
	cm.Up = math32.Vec3(0, 1, 0)
}

// ViewVector is the vector from the target to the camera position.
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pos.Sub(cm.Target)
}

// Basis returns the orthonormal camera basis: forward (toward the
// target), right, and true up.
func (cm *Camera) Basis() (forward, right, up math32.Vector3) {
	forward = cm.Target.Sub(cm.Pos)
	if forward.IsNil() {
		forward = math32.Vec3(0, 0, -1)
	}
	forward = forward.Normal()
	right = forward.Cross(cm.Up)
	if right.IsNil() {
		right = math32.Vec3(1, 0, 0)
	}
	right = right.Normal()
	up = right.Cross(forward).Normal()
	return
}

// LookAt points the camera at target with the given up direction.
// A nil up keeps the current one.
func (cm *Camera) LookAt(target, up math32.Vector3) {
	cm.Target = target
	if !up.IsNil() {
		cm.Up = up.Normal()
	}
}

// Orbit rotates the camera around the target by the given deltas in
// degrees: delX around the up axis, delY around the right axis. The
// distance to the target is preserved and the up direction follows
// the vertical rotation.
func (cm *Camera) Orbit(delX, delY float32) {
	ctdir := cm.ViewVector()
	if ctdir.IsNil() {
		ctdir = math32.Vec3(0, 0, 1)
	}
	dir := ctdir.Normal()
	right := cm.Up.Cross(dir)
	if right.IsNil() {
		right = math32.Vec3(1, 0, 0)
	}
	right = right.Normal()

	dxq := math32.NewQuatAxisAngle(cm.Up, math32.DegToRad(delX))
	dyq := math32.NewQuatAxisAngle(right, math32.DegToRad(delY))

	cm.Pos = cm.Target.Add(ctdir.MulQuat(dxq).MulQuat(dyq))
	cm.Up.SetMulQuat(dyq)
}

// Pan moves the camera and the target together along the camera's
// right and up axes by world-space deltas.
func (cm *Camera) Pan(delX, delY float32) {
	_, right, up := cm.Basis()
	td := right.MulScalar(-delX).Add(up.MulScalar(-delY))
	cm.Pos.SetAdd(td)
	cm.Target.SetAdd(td)
}

// Zoom moves the camera along the view vector by pct of the current
// distance to the target. Positive pct moves away, negative toward.
// The camera never crosses the target: distance is clamped to Near.
func (cm *Camera) Zoom(pct float32) {
	ctdir := cm.ViewVector()
	if ctdir.IsNil() {
		ctdir = math32.Vec3(0, 0, 1)
	}
	dist := math32.Max(ctdir.Length()*(1+pct), cm.Near)
	cm.Pos = cm.Target.Add(ctdir.Normal().MulScalar(dist))
}

// Ray returns the world-space picking ray through the given normalized
// device coordinates, x and y in [-1, 1] with +Y up.
func (cm *Camera) Ray(ndcX, ndcY float32) math32.Ray {
	forward, right, up := cm.Basis()
	tanHalf := math32.Tan(math32.DegToRad(cm.FOV / 2))
	dir := forward.
		Add(right.MulScalar(ndcX * tanHalf * cm.Aspect)).
		Add(up.MulScalar(ndcY * tanHalf))
	return math32.NewRay(cm.Pos, dir.Normal())
}

// ScreenRay returns the picking ray through a pixel position in a
// viewport of the given size. Pixel origin is top-left, +Y down.
func (cm *Camera) ScreenRay(px, py float32, width, height int) math32.Ray {
	ndcX := 2*px/float32(width) - 1
	ndcY := 1 - 2*py/float32(height)
	return cm.Ray(ndcX, ndcY)
}

// DragDelta converts a screen-space pixel delta into a world-space
// offset on the camera's right/up plane at the given world point's
// depth, so dragging an object tracks the pointer at any distance.
// Pixels are square, so the viewport height fixes the scale.
func (cm *Camera) DragDelta(delta math32.Vector2, at math32.Vector3, height int) math32.Vector3 {
	forward, right, up := cm.Basis()
	depth := math32.Max(at.Sub(cm.Pos).Dot(forward), cm.Near)
	worldPerPixel := 2 * depth * math32.Tan(math32.DegToRad(cm.FOV/2)) / float32(height)
	return right.MulScalar(delta.X * worldPerPixel).
		Add(up.MulScalar(-delta.Y * worldPerPixel))
}

// ContainsSphere reports whether the given bounding sphere lies fully
// inside the view frustum.
func (cm *Camera) ContainsSphere(s math32.Sphere) bool {
	forward, right, up := cm.Basis()
	rel := s.Center.Sub(cm.Pos)
	depth := rel.Dot(forward)
	if depth-s.Radius < cm.Near || depth+s.Radius > cm.Far {
		return false
	}
	tanHalf := math32.Tan(math32.DegToRad(cm.FOV / 2))
	// each side plane passes through the camera position, tilted from
	// forward by the half angle; the inward normal is
	// forward*sin - axis*cos with tan = sin/cos of that half angle
	for _, pl := range []struct {
		axis math32.Vector3
		tan  float32
	}{
		{up, tanHalf}, {up.Negate(), tanHalf},
		{right, tanHalf * cm.Aspect}, {right.Negate(), tanHalf * cm.Aspect},
	} {
		cos := 1 / math32.Sqrt(1+pl.tan*pl.tan)
		sin := pl.tan * cos
		n := forward.MulScalar(sin).Sub(pl.axis.MulScalar(cos))
		if rel.Dot(n) < s.Radius {
			return false
		}
	}
	return true
}
