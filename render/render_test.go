// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderers(t *testing.T) (*scene.Scene, *NodeRenderer, *LinkRenderer) {
	t.Helper()
	sc, err := scene.NewScene(scene.NewNopHost())
	require.NoError(t, err)
	cs := style.NewColors(graph.NewTypeRegistry())
	nr, err := NewNodeRenderer(sc, cs)
	require.NoError(t, err)
	lr, err := NewLinkRenderer(sc, cs, nr)
	require.NoError(t, err)
	return sc, nr, lr
}

func testNodes() []*graph.Node {
	return []*graph.Node{
		{ID: "a", Type: "component", Name: "Alpha", Visible: true, Position: math32.Vec3(-10, 0, 0)},
		{ID: "b", Type: "capability", Visible: true, Position: math32.Vec3(10, 0, 0)},
	}
}

func TestConstructorsRequireCollaborators(t *testing.T) {
	sc, err := scene.NewScene(scene.NewNopHost())
	require.NoError(t, err)
	cs := style.NewColors(graph.NewTypeRegistry())

	_, err = NewNodeRenderer(nil, cs)
	assert.Error(t, err)
	_, err = NewNodeRenderer(sc, nil)
	assert.Error(t, err)

	nr, err := NewNodeRenderer(sc, cs)
	require.NoError(t, err)
	_, err = NewLinkRenderer(sc, cs, nil)
	assert.Error(t, err)
	_, err = NewLinkRenderer(sc, cs, nr)
	assert.NoError(t, err)
}

func TestReconciliationIdempotence(t *testing.T) {
	sc, nr, _ := newRenderers(t)
	host := sc.Host.(*scene.NopHost)
	nodes := testNodes()

	nr.SetAll(nodes)
	a1 := nr.GetVisualByID("a")
	require.NotNil(t, a1)
	added := host.Added
	removed := host.Removed

	nr.SetAll(nodes)
	assert.Same(t, a1, nr.GetVisualByID("a"))
	assert.Equal(t, added, host.Added)
	assert.Equal(t, removed, host.Removed)
}

func TestDisposalBaseline(t *testing.T) {
	sc, nr, lr := newRenderers(t)
	geoms := sc.Resources.Geometries
	mats := sc.Resources.Materials

	for i := 0; i < 10; i++ {
		nodes := testNodes()
		nr.SetAll(nodes)
		lr.SetAll([]*graph.Link{
			{ID: "l1", Source: "a", Target: "b", Type: "contains", Visible: true},
		})
		lr.SetAll(nil)
		nr.SetAll(nil)
	}
	assert.Equal(t, geoms, sc.Resources.Geometries)
	assert.Equal(t, mats, sc.Resources.Materials)
	assert.Nil(t, nr.GetVisualByID("a"))
	assert.Nil(t, lr.GetVisualByID("l1"))
}

func TestUpdateAllKeepsUnmentioned(t *testing.T) {
	_, nr, _ := newRenderers(t)
	nr.SetAll(testNodes())
	nr.UpdateAll([]*graph.Node{
		{ID: "a", Type: "component", Visible: true, Position: math32.Vec3(0, 5, 0)},
	})
	assert.NotNil(t, nr.GetVisualByID("b"))
	assert.Equal(t, math32.Vec3(0, 5, 0), nr.GetVisualByID("a").Pose.Pos)
}

func TestNodeSizeShrinkWithFloor(t *testing.T) {
	_, nr, _ := newRenderers(t)
	s0 := nr.NodeSize("component", 0)
	s2 := nr.NodeSize("component", 2)
	assert.Less(t, s2, s0)
	// deep levels bottom out at the floor
	deep := nr.NodeSize("component", 50)
	assert.InDelta(t, nr.Params.MinSize*nr.Params.GlobalScale, deep, 1e-5)
	// global scale multiplies everything
	nr.Params.GlobalScale = 2
	assert.InDelta(t, 2*s0, nr.NodeSize("component", 0), 1e-5)
}

func TestSelectedHoveredAtMostOne(t *testing.T) {
	_, nr, _ := newRenderers(t)
	nr.SetAll(testNodes())

	nr.SetSelected("a")
	nr.SetSelected("b")
	assert.Equal(t, "b", nr.Selected())
	aMesh := nr.GetVisualByID("a").ChildByName("mesh")
	bMesh := nr.GetVisualByID("b").ChildByName("mesh")
	assert.Equal(t, nr.Colors.StateEmissive(false, false), aMesh.Material.Emissive)
	assert.Equal(t, nr.Colors.StateEmissive(true, false), bMesh.Material.Emissive)

	nr.SetHovered("a")
	assert.Equal(t, "a", nr.Hovered())
	assert.Equal(t, nr.Colors.StateEmissive(false, true), aMesh.Material.Emissive)

	// selected wins over hovered on the same node
	nr.SetHovered("b")
	assert.Equal(t, nr.Colors.StateEmissive(true, true), bMesh.Material.Emissive)

	nr.SetSelected("")
	nr.SetHovered("")
	assert.Equal(t, nr.Colors.StateEmissive(false, false), bMesh.Material.Emissive)
}

func TestHighlightSubset(t *testing.T) {
	_, nr, _ := newRenderers(t)
	nr.SetAll(testNodes())

	nr.HighlightSubset([]string{"a"}, true)
	aMesh := nr.GetVisualByID("a").ChildByName("mesh")
	bMesh := nr.GetVisualByID("b").ChildByName("mesh")
	assert.Equal(t, float32(1), aMesh.Material.Opacity)
	assert.Less(t, bMesh.Material.Opacity, float32(1))

	nr.HighlightSubset(nil, true)
	assert.Equal(t, float32(1), bMesh.Material.Opacity)
}

func TestLinkGeometryStraightAndCurved(t *testing.T) {
	_, nr, lr := newRenderers(t)
	nr.SetAll(testNodes())
	lr.SetAll([]*graph.Link{
		{ID: "s", Source: "a", Target: "b", Type: "contains", Visible: true},
	})
	sv := lr.GetVisualByID("s")
	require.NotNil(t, sv)
	assert.Len(t, sv.Points, 2)
	assert.True(t, sv.IsVisible())

	// mark the type curved and reconcile again
	lr.Colors.Registry.RelationshipType("contains").Curved = true
	lr.UpdateAll([]*graph.Link{
		{ID: "s", Source: "a", Target: "b", Type: "contains", Visible: true},
	})
	assert.Len(t, sv.Points, lr.Params.CurveSegments+1)
	// curve endpoints still meet the node positions
	assert.InDelta(t, 0, sv.Points[0].DistanceTo(math32.Vec3(-10, 0, 0)), 1e-3)
	assert.InDelta(t, 0, sv.Points[len(sv.Points)-1].DistanceTo(math32.Vec3(10, 0, 0)), 1e-3)
	// interior samples bow away from the chord
	mid := sv.Points[lr.Params.CurveSegments/2]
	assert.Greater(t, mid.Sub(math32.Vec3(0, 0, 0)).Length(), float32(0.5))
}

func TestArrowAlongTangent(t *testing.T) {
	_, nr, lr := newRenderers(t)
	nr.SetAll(testNodes())
	lr.SetAll([]*graph.Link{
		{ID: "s", Source: "a", Target: "b", Type: "contains", Visible: true},
	})
	arrow := lr.GetVisualByID("s").ChildByName("arrow")
	require.NotNil(t, arrow)

	// straight horizontal link: arrow sits on the segment at the fraction
	wantX := math32.Lerp(-10, 10, lr.Params.ArrowFraction)
	assert.InDelta(t, wantX, arrow.Pose.Pos.X, 1e-3)
	assert.InDelta(t, 0, arrow.Pose.Pos.Y, 1e-3)

	// arrow up axis rotated onto the +X tangent
	up := math32.Vec3(0, 1, 0).MulQuat(arrow.Pose.Quat)
	assert.InDelta(t, 0, up.DistanceTo(math32.Vec3(1, 0, 0)), 1e-3)
}

func TestLinkVisibilityDerivation(t *testing.T) {
	_, nr, lr := newRenderers(t)
	nr.SetAll(testNodes())
	links := []*graph.Link{
		{ID: "l", Source: "a", Target: "b", Type: "contains", Visible: true},
	}
	lr.SetAll(links)
	lv := lr.GetVisualByID("l")
	assert.True(t, lv.IsVisible())

	// deleting an endpoint node hides the link with no link update
	nr.SetAll(testNodes()[:1])
	lr.UpdatePositions()
	assert.False(t, lv.IsVisible())

	// an invisible endpoint also hides it
	nr.SetAll(testNodes())
	lr.UpdatePositions()
	assert.True(t, lv.IsVisible())
	hidden := testNodes()
	hidden[1].Visible = false
	nr.SetAll(hidden)
	lr.UpdatePositions()
	assert.False(t, lv.IsVisible())
}

func TestDanglingLinkInvisibleNotError(t *testing.T) {
	_, nr, lr := newRenderers(t)
	nr.SetAll(testNodes())
	lr.SetAll([]*graph.Link{
		{ID: "d", Source: "a", Target: "ghost", Type: "relates_to", Visible: true},
	})
	dv := lr.GetVisualByID("d")
	require.NotNil(t, dv)
	assert.False(t, dv.IsVisible())
}

func TestPointAlong(t *testing.T) {
	pts := []math32.Vector3{
		math32.Vec3(0, 0, 0),
		math32.Vec3(10, 0, 0),
		math32.Vec3(10, 10, 0),
	}
	pos, tan := PointAlong(pts, 0.25)
	assert.InDelta(t, 5, pos.X, 1e-3)
	assert.InDelta(t, 0, tan.DistanceTo(math32.Vec3(1, 0, 0)), 1e-3)

	pos, tan = PointAlong(pts, 0.75)
	assert.InDelta(t, 10, pos.X, 1e-3)
	assert.InDelta(t, 5, pos.Y, 1e-3)
	assert.InDelta(t, 0, tan.DistanceTo(math32.Vec3(0, 1, 0)), 1e-3)
}
