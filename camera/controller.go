// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"fmt"

	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/scene"
)

// Params holds the controller constants.
type Params struct {

	// RotateSpeed scales pointer deltas into orbit degrees.
	RotateSpeed float32 `toml:"rotate_speed"`

	// PanSpeed scales pointer deltas into pan distance.
	PanSpeed float32 `toml:"pan_speed"`

	// ZoomSpeed scales wheel/pinch deltas into zoom percent.
	ZoomSpeed float32 `toml:"zoom_speed"`

	// Damping is the per-tick decay factor for manual input inertia,
	// in [0, 1); 0 disables inertia entirely.
	Damping float32 `toml:"damping"`

	// FitPadding scales the fitted bounding-sphere radius so fitted
	// objects do not touch the viewport edge.
	FitPadding float32 `toml:"fit_padding"`

	// TransitionDuration is the camera transition duration in seconds.
	TransitionDuration float32 `toml:"transition_duration"`
}

// Defaults sets the default controller constants.
func (pr *Params) Defaults() {
	pr.RotateSpeed = 0.3
	pr.PanSpeed = 0.05
	pr.ZoomSpeed = 0.1
	pr.Damping = 0.85
	pr.FitPadding = 1.2
	pr.TransitionDuration = 0.8
}

// transition animates the camera pose toward an end position and
// target. At most one is live; manual input cancels it.
type transition struct {
	startPos, endPos       math32.Vector3
	startTarget, endTarget math32.Vector3
	duration, elapsed      float32
}

// Controller owns the orbit camera, its animated transitions, and the
// focus/fit operations. Manual input always wins: a control start
// cancels any transition in flight.
type Controller struct {

	// Cam is the controlled camera.
	Cam *Camera

	// Params are the controller constants.
	Params Params

	bus  events.Bus
	home struct {
		pos, target, up math32.Vector3
	}
	trans *transition

	// residual manual velocity, decayed each tick
	rotVel math32.Vector2
	panVel math32.Vector2
	zmVel  float32
}

// NewController returns a controller for the given camera. The camera
// is required; a nil bus defaults to the no-op bus. The camera's pose
// at construction time becomes the ResetView home pose.
func NewController(cam *Camera, bus events.Bus) (*Controller, error) {
	if cam == nil {
		return nil, fmt.Errorf("camera: NewController: nil camera")
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	ct := &Controller{Cam: cam, bus: bus}
	ct.Params.Defaults()
	ct.home.pos = cam.Pos
	ct.home.target = cam.Target
	ct.home.up = cam.Up
	return ct, nil
}

// Transitioning returns whether a camera transition is in flight.
func (ct *Controller) Transitioning() bool {
	return ct.trans != nil
}

// StartManual marks the beginning of a manual camera gesture,
// cancelling any transition in flight and any residual inertia so
// user input always wins. OrbitBy, PanBy, and ZoomBy call it
// themselves before applying their input.
func (ct *Controller) StartManual() {
	ct.trans = nil
	ct.rotVel.SetZero()
	ct.panVel.SetZero()
	ct.zmVel = 0
}

// OrbitBy applies a manual orbit from a pointer delta in pixels.
func (ct *Controller) OrbitBy(delta math32.Vector2) {
	ct.StartManual()
	d := delta.MulScalar(ct.Params.RotateSpeed)
	ct.Cam.Orbit(-d.X, -d.Y)
	ct.rotVel = d
	ct.moved()
}

// PanBy applies a manual pan from a pointer delta in pixels.
func (ct *Controller) PanBy(delta math32.Vector2) {
	ct.StartManual()
	d := delta.MulScalar(ct.Params.PanSpeed)
	ct.Cam.Pan(d.X, -d.Y)
	ct.panVel = d
	ct.moved()
}

// ZoomBy applies a manual zoom step; positive steps move away from
// the target.
func (ct *Controller) ZoomBy(step float32) {
	ct.StartManual()
	pct := step * ct.Params.ZoomSpeed
	ct.Cam.Zoom(pct)
	ct.zmVel = pct
	ct.moved()
}

// ResetView animates the camera back to its home pose.
func (ct *Controller) ResetView() {
	ct.Cam.Up = ct.home.up
	ct.animateTo(ct.home.pos, ct.home.target)
}

// FocusOnObject animates the camera to frame the object's bounding
// sphere, preserving the current view direction.
func (ct *Controller) FocusOnObject(obj *scene.Object) {
	if obj == nil {
		return
	}
	ct.fitSphere(obj.BoundingSphere())
}

// ZoomToPosition animates the camera target to pos at the given
// distance, preserving the current view direction. A distance <= 0
// keeps the current distance.
func (ct *Controller) ZoomToPosition(pos math32.Vector3, distance float32) {
	if distance <= 0 {
		distance = ct.Cam.ViewVector().Length()
	}
	ct.animateTo(pos.Add(ct.viewDir().MulScalar(distance)), pos)
}

// FitToObjects animates the camera so the union of the objects'
// bounding spheres fills the view, preserving the view direction.
// With no objects it is a no-op.
func (ct *Controller) FitToObjects(objs []*scene.Object) {
	var bs math32.Sphere
	has := false
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		s := obj.BoundingSphere()
		if !has {
			bs = s
			has = true
		} else {
			bs = bs.Union(s)
		}
	}
	if !has {
		return
	}
	ct.fitSphere(bs)
}

// FitDistance returns the camera distance that makes a bounding sphere
// of the given radius fill the vertical FOV, before padding.
func (ct *Controller) FitDistance(radius float32) float32 {
	return radius / math32.Sin(math32.DegToRad(ct.Cam.FOV/2))
}

// Tick advances the transition and manual inertia by dt seconds and
// publishes a camera-moved event when the pose changed.
func (ct *Controller) Tick(dt float32) {
	if tr := ct.trans; tr != nil {
		tr.elapsed += dt
		t := float32(1)
		if tr.duration > 0 && tr.elapsed < tr.duration {
			t = easeInOutCubic(tr.elapsed / tr.duration)
		}
		ct.Cam.Pos = tr.startPos.Lerp(tr.endPos, t)
		ct.Cam.Target = tr.startTarget.Lerp(tr.endTarget, t)
		if t >= 1 {
			ct.trans = nil
		}
		ct.moved()
		return
	}
	ct.applyInertia()
}

// applyInertia keeps decayed manual velocity moving the camera after
// the gesture ends.
func (ct *Controller) applyInertia() {
	dp := ct.Params.Damping
	if dp <= 0 {
		return
	}
	moved := false
	if ct.rotVel.LengthSquared() > 1e-6 {
		ct.rotVel = ct.rotVel.MulScalar(dp)
		ct.Cam.Orbit(-ct.rotVel.X, -ct.rotVel.Y)
		moved = true
	} else {
		ct.rotVel.SetZero()
	}
	if ct.panVel.LengthSquared() > 1e-6 {
		ct.panVel = ct.panVel.MulScalar(dp)
		ct.Cam.Pan(ct.panVel.X, -ct.panVel.Y)
		moved = true
	} else {
		ct.panVel.SetZero()
	}
	if math32.Abs(ct.zmVel) > 1e-4 {
		ct.zmVel *= dp
		ct.Cam.Zoom(ct.zmVel)
		moved = true
	} else {
		ct.zmVel = 0
	}
	if moved {
		ct.moved()
	}
}

// fitSphere animates to frame the sphere, preserving view direction.
// An empty sphere still moves the target to its center.
func (ct *Controller) fitSphere(bs math32.Sphere) {
	dist := ct.FitDistance(bs.Radius * ct.Params.FitPadding)
	if dist < ct.Cam.Near {
		dist = ct.Cam.ViewVector().Length()
	}
	ct.animateTo(bs.Center.Add(ct.viewDir().MulScalar(dist)), bs.Center)
}

// viewDir is the unit vector from the target toward the camera.
func (ct *Controller) viewDir() math32.Vector3 {
	vv := ct.Cam.ViewVector()
	if vv.IsNil() {
		return math32.Vec3(0, 0, 1)
	}
	return vv.Normal()
}

func (ct *Controller) animateTo(pos, target math32.Vector3) {
	ct.rotVel.SetZero()
	ct.panVel.SetZero()
	ct.zmVel = 0
	ct.trans = &transition{
		startPos:    ct.Cam.Pos,
		endPos:      pos,
		startTarget: ct.Cam.Target,
		endTarget:   target,
		duration:    ct.Params.TransitionDuration,
	}
}

func (ct *Controller) moved() {
	ev := events.New(events.CameraMoved)
	ev.WorldPos = ct.Cam.Pos
	ct.bus.Publish(ev)
}

func easeInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
