// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sphere

import (
	"testing"

	"github.com/orrery-viz/orrery/camera"
	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	cm := &camera.Camera{}
	cm.Defaults()
	ct, err := camera.NewController(cm, nil)
	require.NoError(t, err)
	return NewManager(ct, nil)
}

func TestAnchorsOnCircle(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	sm.AddSphere("b", "Beta")
	sm.AddSphere("c", "Gamma")

	for _, sp := range sm.Spheres() {
		assert.InDelta(t, sm.Params.Radius, sp.Anchor.Length(), 1e-2, sp.ID)
	}
	// evenly spread: three anchors sum to the origin
	sum := math32.Vector3{}
	for _, sp := range sm.Spheres() {
		sum.SetAdd(sp.Anchor)
	}
	assert.InDelta(t, 0, sum.Length(), 1e-2)

	// re-adding an existing id changes nothing
	a := sm.Sphere("a")
	assert.Same(t, a, sm.AddSphere("a", "Again"))
	assert.Len(t, sm.Spheres(), 3)
}

func TestActivateUnknownIsError(t *testing.T) {
	sm := newManager(t)
	assert.Error(t, sm.ActivateSphere("ghost"))
}

func TestSphereExclusivity(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	sm.AddSphere("b", "Beta")

	require.NoError(t, sm.ActivateSphere("a"))
	require.NoError(t, sm.ActivateSphere("b"))

	// let in-flight fades settle
	for i := 0; i < 100; i++ {
		sm.Tick(0.016)
	}
	active := 0
	for _, sp := range sm.Spheres() {
		if sp.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.Equal(t, "b", sm.Active().ID)
	a := sm.Sphere("a")
	assert.False(t, a.Visible)
	assert.InDelta(t, 0, a.Opacity, 1e-3)
}

func TestDeactivationFadesBeforeHiding(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	sm.AddSphere("b", "Beta")
	require.NoError(t, sm.ActivateSphere("a"))
	require.NoError(t, sm.ActivateSphere("b"))

	a := sm.Sphere("a")
	sm.Tick(sm.Params.FadeDuration / 2)
	assert.True(t, a.Visible)
	assert.Greater(t, a.Opacity, float32(0))
	assert.Less(t, a.Opacity, float32(1))

	sm.Tick(sm.Params.FadeDuration)
	assert.False(t, a.Visible)
}

func TestReactivationAbortsFade(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	sm.AddSphere("b", "Beta")
	require.NoError(t, sm.ActivateSphere("a"))
	require.NoError(t, sm.ActivateSphere("b"))
	sm.Tick(sm.Params.FadeDuration / 4)

	require.NoError(t, sm.ActivateSphere("a"))
	sm.Tick(0.016)
	a := sm.Sphere("a")
	assert.True(t, a.Active)
	assert.True(t, a.Visible)
	assert.InDelta(t, 1, a.Opacity, 1e-3)
}

func TestActivationMovesCamera(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	require.NoError(t, sm.ActivateSphere("a"))
	for i := 0; i < 200 && sm.Cam.Transitioning(); i++ {
		sm.Cam.Tick(0.016)
	}
	assert.InDelta(t, 0, sm.Cam.Cam.Target.DistanceTo(sm.Sphere("a").Anchor), 1e-2)
}

func TestActivatedEventPublished(t *testing.T) {
	var got string
	sm := NewManager(nil, events.BusFunc(func(ev *events.Event) {
		if ev.Type == events.SphereActivated {
			got = ev.SphereID
		}
	}))
	sm.AddSphere("a", "Alpha")
	require.NoError(t, sm.ActivateSphere("a"))
	assert.Equal(t, "a", got)
}

func TestArcWaypoints(t *testing.T) {
	start := math32.Vec3(-100, 0, 0)
	end := math32.Vec3(100, 0, 0)
	wps := ArcWaypoints(start, end, 0.5, 25)
	require.Len(t, wps, 25)
	assert.Equal(t, start, wps[0])
	assert.InDelta(t, 0, wps[24].DistanceTo(end), 1e-3)
	// the arc rises above both endpoints at its middle
	assert.Greater(t, wps[12].Y, float32(10))
}

func TestNavigationSequence(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	sm.AddSphere("b", "Beta")
	require.NoError(t, sm.ActivateSphere("a"))
	for i := 0; i < 100; i++ {
		sm.Tick(0.016)
	}

	require.NoError(t, sm.NavigateBetweenSpheres("a", "b"))
	assert.True(t, sm.Navigating())

	// early in the flight the source deactivates, destination not yet active
	sm.Tick(sm.Params.NavDuration * 0.3)
	assert.False(t, sm.Sphere("a").Active)
	assert.False(t, sm.Sphere("b").Active)

	// near the end the destination activates
	sm.Tick(sm.Params.NavDuration * 0.6)
	assert.True(t, sm.Sphere("b").Active)

	for i := 0; i < 200; i++ {
		sm.Tick(0.016)
	}
	assert.False(t, sm.Navigating())
	assert.Equal(t, "b", sm.Active().ID)
}

func TestNavigationUnknownEndpoint(t *testing.T) {
	sm := newManager(t)
	sm.AddSphere("a", "Alpha")
	assert.Error(t, sm.NavigateBetweenSpheres("a", "ghost"))
	assert.False(t, sm.Navigating())
}

func TestCrossConnectionsIndependent(t *testing.T) {
	sm := newManager(t)
	a := sm.AddSphere("a", "Alpha")
	b := sm.AddSphere("b", "Beta")
	a.NodeIDs["n1"] = true
	b.NodeIDs["n2"] = true

	sm.AddCrossConnection(&CrossConnection{
		ID: "x1", SourceNodeID: "n1", SourceSphereID: "a",
		TargetNodeID: "n2", TargetSphereID: "b", Style: "dashed",
	})
	sm.AddCrossConnection(&CrossConnection{
		ID: "x2", SourceNodeID: "n2", SourceSphereID: "b",
		TargetNodeID: "n1", TargetSphereID: "a",
	})

	assert.Len(t, sm.CrossConnections(), 2)
	assert.Len(t, sm.CrossConnectionsFor("a"), 2)
	// cross connections never land in a sphere's own link set
	assert.Empty(t, a.LinkIDs)
	assert.Empty(t, b.LinkIDs)

	assert.False(t, sm.CrossVisible())
	sm.SetCrossVisible(true)
	assert.True(t, sm.CrossVisible())
}

func TestCrossVisibilityPublished(t *testing.T) {
	var got []*events.Event
	sm := NewManager(nil, events.BusFunc(func(ev *events.Event) {
		if ev.Type == events.CrossConnectionsToggled {
			got = append(got, ev)
		}
	}))

	sm.SetCrossVisible(true)
	require.Len(t, got, 1)
	assert.Equal(t, true, got[0].Data)

	// setting the current value again publishes nothing
	sm.SetCrossVisible(true)
	assert.Len(t, got, 1)

	sm.SetCrossVisible(false)
	require.Len(t, got, 2)
	assert.Equal(t, false, got[1].Data)
}
