// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"testing"

	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

func TestOrbitPreservesDistance(t *testing.T) {
	cm := newCamera()
	dist := cm.ViewVector().Length()
	cm.Orbit(35, 0)
	assert.InDelta(t, dist, cm.ViewVector().Length(), 1e-3)
	cm.Orbit(0, -20)
	assert.InDelta(t, dist, cm.ViewVector().Length(), 1e-3)
	assert.Equal(t, math32.Vector3{}, cm.Target)
}

func TestOrbitFullCircleReturns(t *testing.T) {
	cm := newCamera()
	start := cm.Pos
	for i := 0; i < 8; i++ {
		cm.Orbit(45, 0)
	}
	assert.InDelta(t, 0, cm.Pos.DistanceTo(start), 1e-2)
}

func TestPanMovesTargetWithCamera(t *testing.T) {
	cm := newCamera()
	vv := cm.ViewVector()
	cm.Pan(5, -3)
	assert.InDelta(t, 0, cm.ViewVector().DistanceTo(vv), 1e-4)
	assert.NotEqual(t, math32.Vector3{}, cm.Target)
}

func TestZoomClampsAtNear(t *testing.T) {
	cm := newCamera()
	cm.Zoom(-0.5)
	assert.InDelta(t, 40, cm.ViewVector().Length(), 1e-3)
	for i := 0; i < 50; i++ {
		cm.Zoom(-0.9)
	}
	assert.GreaterOrEqual(t, cm.ViewVector().Length(), cm.Near)
}

func TestCenterRayHitsTarget(t *testing.T) {
	cm := newCamera()
	ray := cm.Ray(0, 0)
	assert.InDelta(t, 0, ray.DistanceToPoint(cm.Target), 1e-3)

	// screen center maps to NDC origin
	sr := cm.ScreenRay(640, 400, 1280, 800)
	assert.InDelta(t, 0, sr.Dir.DistanceTo(ray.Dir), 1e-4)
}

func TestScreenRayCorners(t *testing.T) {
	cm := newCamera()
	// top of the screen tilts the ray upward, left tilts it left
	top := cm.ScreenRay(640, 0, 1280, 800)
	assert.Greater(t, top.Dir.Y, float32(0))
	left := cm.ScreenRay(0, 400, 1280, 800)
	assert.Less(t, left.Dir.X, float32(0))
}

func TestDragDeltaDepthConsistent(t *testing.T) {
	cm := newCamera()
	near := cm.DragDelta(math32.Vec2(10, 0), math32.Vec3(0, 0, 40), 800)
	far := cm.DragDelta(math32.Vec2(10, 0), math32.Vec3(0, 0, -40), 800)
	// same pixel delta covers more world distance at greater depth
	assert.Greater(t, far.Length(), near.Length())
	assert.Greater(t, near.X, float32(0))
	// vertical pixel delta (down) moves the point down in world space
	down := cm.DragDelta(math32.Vec2(0, 10), math32.Vec3(0, 0, 0), 800)
	assert.Less(t, down.Y, float32(0))
}

func TestControllerRequiresCamera(t *testing.T) {
	_, err := NewController(nil, nil)
	assert.Error(t, err)
}

func TestFitDistanceProperty(t *testing.T) {
	cm := newCamera()
	ct, err := NewController(cm, nil)
	require.NoError(t, err)

	r := float32(7)
	want := r / math32.Sin(math32.DegToRad(cm.FOV/2))
	assert.InDelta(t, want, ct.FitDistance(r), 1e-3)

	// sphere at fitted distance (no padding) sits inside the frustum
	ct.Params.FitPadding = 1
	dist := ct.FitDistance(r)
	cm.Pos = math32.Vec3(0, 0, dist)
	cm.Target = math32.Vector3{}
	assert.True(t, cm.ContainsSphere(math32.NewSphere(math32.Vector3{}, r*0.99)))
	assert.False(t, cm.ContainsSphere(math32.NewSphere(math32.Vector3{}, r*2)))
}

func TestFocusPreservesViewDirection(t *testing.T) {
	cm := newCamera()
	cm.Orbit(30, 20)
	ct, err := NewController(cm, nil)
	require.NoError(t, err)

	dir := ct.viewDir()
	host := scene.NewNopHost()
	sc, err := scene.NewScene(host)
	require.NoError(t, err)
	obj := sc.NewObject("n1", scene.SphereShape)
	obj.Pose.Pos = math32.Vec3(20, 5, -10)

	ct.FocusOnObject(obj)
	for i := 0; i < 200 && ct.Transitioning(); i++ {
		ct.Tick(0.016)
	}
	assert.InDelta(t, 0, ct.Cam.Target.DistanceTo(obj.WorldPos()), 1e-2)
	assert.InDelta(t, 0, ct.viewDir().DistanceTo(dir), 1e-3)
}

func TestFitToObjectsUnion(t *testing.T) {
	cm := newCamera()
	ct, err := NewController(cm, nil)
	require.NoError(t, err)
	host := scene.NewNopHost()
	sc, err := scene.NewScene(host)
	require.NoError(t, err)

	a := sc.NewObject("a", scene.SphereShape)
	a.Pose.Pos = math32.Vec3(-30, 0, 0)
	b := sc.NewObject("b", scene.SphereShape)
	b.Pose.Pos = math32.Vec3(30, 0, 0)

	ct.FitToObjects([]*scene.Object{a, b})
	for i := 0; i < 200 && ct.Transitioning(); i++ {
		ct.Tick(0.016)
	}
	// the fitted target is the midpoint and the distance covers the span
	assert.InDelta(t, 0, ct.Cam.Target.Length(), 1e-2)
	assert.Greater(t, ct.Cam.ViewVector().Length(), float32(60))

	// no objects: nothing happens
	pos := ct.Cam.Pos
	ct.FitToObjects(nil)
	assert.False(t, ct.Transitioning())
	assert.Equal(t, pos, ct.Cam.Pos)
}

func TestManualInputCancelsTransition(t *testing.T) {
	cm := newCamera()
	ct, err := NewController(cm, nil)
	require.NoError(t, err)

	ct.ZoomToPosition(math32.Vec3(50, 0, 0), 20)
	ct.Tick(0.016)
	assert.True(t, ct.Transitioning())

	ct.StartManual()
	assert.False(t, ct.Transitioning())

	ct.ResetView()
	assert.True(t, ct.Transitioning())
	ct.OrbitBy(math32.Vec2(4, 0))
	assert.False(t, ct.Transitioning())
}

func TestGestureClearsOtherInertia(t *testing.T) {
	cm := newCamera()
	ct, err := NewController(cm, nil)
	require.NoError(t, err)

	ct.PanBy(math32.Vec2(10, 0))
	ct.OrbitBy(math32.Vec2(0, 5))
	target := cm.Target
	for i := 0; i < 100; i++ {
		ct.Tick(0.016)
	}
	// starting the orbit killed the pan inertia, and orbit inertia
	// alone never moves the target
	assert.InDelta(t, 0, cm.Target.DistanceTo(target), 1e-4)
}

func TestResetViewRestoresHome(t *testing.T) {
	cm := newCamera()
	ct, err := NewController(cm, nil)
	require.NoError(t, err)
	home := cm.Pos

	ct.OrbitBy(math32.Vec2(40, 25))
	ct.PanBy(math32.Vec2(10, 10))
	ct.StartManual() // kill inertia
	ct.ResetView()
	for i := 0; i < 200 && ct.Transitioning(); i++ {
		ct.Tick(0.016)
	}
	assert.InDelta(t, 0, cm.Pos.DistanceTo(home), 1e-2)
	assert.InDelta(t, 0, cm.Target.Length(), 1e-2)
}

func TestCameraMovedEvents(t *testing.T) {
	cm := newCamera()
	count := 0
	ct, err := NewController(cm, events.BusFunc(func(ev *events.Event) {
		if ev.Type == events.CameraMoved {
			count++
		}
	}))
	require.NoError(t, err)

	ct.OrbitBy(math32.Vec2(5, 0))
	assert.Equal(t, 1, count)
	ct.ResetView()
	ct.Tick(0.016)
	assert.Equal(t, 2, count)
}

func TestInertiaDecays(t *testing.T) {
	cm := newCamera()
	ct, err := NewController(cm, nil)
	require.NoError(t, err)

	ct.OrbitBy(math32.Vec2(10, 0))
	p1 := cm.Pos
	ct.Tick(0.016)
	assert.NotEqual(t, p1, cm.Pos)
	for i := 0; i < 500; i++ {
		ct.Tick(0.016)
	}
	settled := cm.Pos
	ct.Tick(0.016)
	assert.Equal(t, settled, cm.Pos)
}
