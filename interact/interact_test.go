// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interact

import (
	"testing"

	"github.com/orrery-viz/orrery/camera"
	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/render"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture builds a scene with one node at the origin and a camera
// looking straight at it, so screen center hits the node.
func fixture(t *testing.T) (*Manager, *render.NodeRenderer, map[events.Types]int) {
	t.Helper()
	sc, err := scene.NewScene(scene.NewNopHost())
	require.NoError(t, err)
	cs := style.NewColors(graph.NewTypeRegistry())
	nr, err := render.NewNodeRenderer(sc, cs)
	require.NoError(t, err)
	nr.SetAll([]*graph.Node{
		{ID: "center", Type: "component", Visible: true},
	})

	cam := &camera.Camera{}
	cam.Defaults()
	counts := map[events.Types]int{}
	im, err := NewManager(sc, cam, events.BusFunc(func(ev *events.Event) {
		counts[ev.Type]++
	}), nil)
	require.NoError(t, err)
	return im, nr, counts
}

// center is the screen position of the origin node for the NopHost's
// 1280x800 viewport.
var center = math32.Vec2(640, 400)

func TestManagerRequiresCollaborators(t *testing.T) {
	sc, err := scene.NewScene(scene.NewNopHost())
	require.NoError(t, err)
	cam := &camera.Camera{}
	cam.Defaults()

	_, err = NewManager(nil, cam, nil, nil)
	assert.Error(t, err)
	_, err = NewManager(sc, nil, nil, nil)
	assert.Error(t, err)
	_, err = NewManager(sc, cam, nil, nil)
	assert.NoError(t, err)
}

func TestHitTestCenterNode(t *testing.T) {
	im, _, _ := fixture(t)
	hit := im.HitTest(center)
	require.NotNil(t, hit)
	assert.Equal(t, "center", hit.NodeID)

	miss := im.HitTest(math32.Vec2(10, 10))
	assert.Nil(t, miss)
}

func TestHitTestSkipsInvisible(t *testing.T) {
	im, nr, _ := fixture(t)
	nr.SetAll([]*graph.Node{
		{ID: "center", Type: "component", Visible: false},
	})
	assert.Nil(t, im.HitTest(center))
}

func TestHitTestNearestWins(t *testing.T) {
	im, nr, _ := fixture(t)
	// a second node behind the first along the view axis
	nr.SetAll([]*graph.Node{
		{ID: "center", Type: "component", Visible: true},
		{ID: "behind", Type: "component", Visible: true, Position: math32.Vec3(0, 0, -20)},
	})
	hit := im.HitTest(center)
	require.NotNil(t, hit)
	assert.Equal(t, "center", hit.NodeID)
}

func TestClickNotDrag(t *testing.T) {
	im, _, counts := fixture(t)

	im.PointerDown(center)
	im.Tick(0.05)
	im.PointerMove(center.Add(math32.Vec2(2, 0))) // under the threshold
	im.PointerUp(center.Add(math32.Vec2(2, 0)))
	im.Tick(1) // let the double-click window lapse

	assert.Equal(t, 1, counts[events.NodeClick])
	assert.Zero(t, counts[events.Drag])
	assert.Zero(t, counts[events.NodeDrag])
	assert.Zero(t, counts[events.NodeDoubleClick])
}

func TestDragNotClick(t *testing.T) {
	im, _, counts := fixture(t)

	im.PointerDown(center)
	im.PointerMove(center.Add(math32.Vec2(30, 0)))
	im.PointerMove(center.Add(math32.Vec2(60, 0)))
	im.PointerUp(center.Add(math32.Vec2(60, 0)))
	im.Tick(1)

	assert.Zero(t, counts[events.NodeClick])
	assert.GreaterOrEqual(t, counts[events.NodeDrag], 1)
}

func TestDragOffNodeIsPlainDrag(t *testing.T) {
	im, _, counts := fixture(t)

	im.PointerDown(math32.Vec2(10, 10))
	im.PointerMove(math32.Vec2(80, 10))
	im.PointerUp(math32.Vec2(80, 10))
	im.Tick(1)

	assert.GreaterOrEqual(t, counts[events.Drag], 1)
	assert.Zero(t, counts[events.NodeDrag])
}

func TestDoubleClickCancelsPendingClick(t *testing.T) {
	im, _, counts := fixture(t)

	im.PointerDown(center)
	im.PointerUp(center)
	im.Tick(0.1)
	im.PointerDown(center)
	im.PointerUp(center)
	im.Tick(1)

	assert.Equal(t, 1, counts[events.NodeDoubleClick])
	assert.Zero(t, counts[events.NodeClick])
}

func TestSlowSecondClickIsTwoClicks(t *testing.T) {
	im, _, counts := fixture(t)

	im.PointerDown(center)
	im.PointerUp(center)
	im.Tick(1)
	im.PointerDown(center)
	im.PointerUp(center)
	im.Tick(1)

	assert.Equal(t, 2, counts[events.NodeClick])
	assert.Zero(t, counts[events.NodeDoubleClick])
}

func TestHoverChangeEvents(t *testing.T) {
	im, _, counts := fixture(t)

	im.PointerMove(center)
	assert.Equal(t, "center", im.Hovered())
	assert.Equal(t, 1, counts[events.NodeHover])

	// staying on the same node emits nothing new
	im.PointerMove(center.Add(math32.Vec2(1, 0)))
	assert.Equal(t, 1, counts[events.NodeHover])

	// leaving emits the transition to none
	im.PointerMove(math32.Vec2(5, 5))
	assert.Equal(t, "", im.Hovered())
	assert.Equal(t, 2, counts[events.NodeHover])
}

func TestPointerMoveStream(t *testing.T) {
	im, _, counts := fixture(t)
	var last *events.Event
	im.Listeners.Add(events.PointerMove, func(ev *events.Event) {
		last = ev
	})

	im.PointerMove(center)
	require.NotNil(t, last)
	assert.Equal(t, "center", last.NodeID)

	// unlike hover, every move fires, free space included
	im.PointerMove(math32.Vec2(5, 5))
	im.PointerMove(math32.Vec2(6, 5))
	assert.Equal(t, 3, counts[events.PointerMove])
	assert.Equal(t, "", last.NodeID)
	assert.Equal(t, math32.Vec2(6, 5), last.Pos)

	// moves while the button is down are drags, not pointer moves
	im.PointerDown(math32.Vec2(6, 5))
	im.PointerMove(math32.Vec2(60, 5))
	im.PointerUp(math32.Vec2(60, 5))
	assert.Equal(t, 3, counts[events.PointerMove])
}

func TestLongPressContextMenu(t *testing.T) {
	im, _, counts := fixture(t)

	im.TouchStart([]math32.Vector2{center})
	im.Tick(0.6)
	assert.Equal(t, 1, counts[events.NodeContextMenu])
	// firing once, not every tick
	im.Tick(0.1)
	assert.Equal(t, 1, counts[events.NodeContextMenu])
	im.TouchEnd(nil)
}

func TestLongPressAbortedByMovement(t *testing.T) {
	im, _, counts := fixture(t)

	im.TouchStart([]math32.Vector2{center})
	im.Tick(0.2)
	im.TouchMove([]math32.Vector2{center.Add(math32.Vec2(40, 0))})
	im.Tick(1)
	assert.Zero(t, counts[events.NodeContextMenu])
}

func TestTwoFingerGesturesSameFrame(t *testing.T) {
	im, _, counts := fixture(t)

	im.TouchStart([]math32.Vector2{math32.Vec2(600, 400), math32.Vec2(700, 400)})
	// spread further apart, rotated, and shifted
	im.TouchMove([]math32.Vector2{math32.Vec2(580, 420), math32.Vec2(740, 360)})

	assert.Equal(t, 1, counts[events.Zoom])
	assert.Equal(t, 1, counts[events.Rotate])
	assert.Equal(t, 1, counts[events.Pan])
}

func TestPinchZoomScale(t *testing.T) {
	im, _, _ := fixture(t)
	var scale float32
	im.Listeners.Add(events.Zoom, func(ev *events.Event) {
		scale = ev.Scale
	})

	im.TouchStart([]math32.Vector2{math32.Vec2(600, 400), math32.Vec2(700, 400)})
	im.TouchMove([]math32.Vector2{math32.Vec2(550, 400), math32.Vec2(750, 400)})
	assert.InDelta(t, 2, scale, 1e-3)
}

func TestMobileWidensThresholds(t *testing.T) {
	sc, err := scene.NewScene(scene.NewNopHost())
	require.NoError(t, err)
	cam := &camera.Camera{}
	cam.Defaults()

	base := &Params{}
	base.Defaults()
	mobile := &Params{}
	mobile.Defaults()
	mobile.Mobile = true

	im, err := NewManager(sc, cam, nil, mobile)
	require.NoError(t, err)
	assert.Greater(t, im.Params.DragThreshold, base.DragThreshold)
	assert.Greater(t, im.Params.HitSlop, base.HitSlop)
}
