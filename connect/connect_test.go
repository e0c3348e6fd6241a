// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package connect

import (
	"testing"

	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/render"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) (*Manager, *graph.Graph, *scene.Scene, map[events.Types]int) {
	t.Helper()
	sc, err := scene.NewScene(scene.NewNopHost())
	require.NoError(t, err)
	cs := style.NewColors(graph.NewTypeRegistry())
	nr, err := render.NewNodeRenderer(sc, cs)
	require.NoError(t, err)

	g := graph.New()
	g.SetNodes([]*graph.Node{
		{ID: "comp", Type: "component", Visible: true, Position: math32.Vec3(-5, 0, 0)},
		{ID: "sub", Type: "subcomponent", Visible: true, Position: math32.Vec3(5, 0, 0)},
		{ID: "cap", Type: "capability", Visible: true, Position: math32.Vec3(0, 5, 0)},
	})
	nr.SetAll(g.NodeList())

	counts := map[events.Types]int{}
	cm, err := NewManager(g, nr, sc, cs, events.BusFunc(func(ev *events.Event) {
		counts[ev.Type]++
	}))
	require.NoError(t, err)
	return cm, g, sc, counts
}

func TestManagerRequiresCollaborators(t *testing.T) {
	cm, g, sc, _ := fixture(t)
	cs := cm.colors
	nr := cm.nodes

	_, err := NewManager(nil, nr, sc, cs, nil)
	assert.Error(t, err)
	_, err = NewManager(g, nil, sc, cs, nil)
	assert.Error(t, err)
	_, err = NewManager(g, nr, nil, cs, nil)
	assert.Error(t, err)
	_, err = NewManager(g, nr, sc, nil, nil)
	assert.Error(t, err)
}

func TestValidConnectionCreated(t *testing.T) {
	cm, g, sc, counts := fixture(t)

	require.NoError(t, cm.Begin("contains", "comp"))
	assert.Equal(t, CreatingFromSource, cm.State())
	assert.Equal(t, 1, counts[events.ConnectionStarted])
	assert.NotNil(t, sc.Object("connect/temp"))

	cm.PointerMoved(math32.Vec3(4, 0, 0), "sub")
	assert.Equal(t, HoveringTarget, cm.State())

	cm.Complete("sub")
	assert.Equal(t, Idle, cm.State())
	assert.Equal(t, 1, counts[events.ConnectionCreated])
	require.Len(t, cm.Connections(), 1)
	conn := cm.Connections()[0]
	assert.Equal(t, "comp", conn.Source)
	assert.Equal(t, "sub", conn.Target)
	assert.NotEmpty(t, conn.ID)
	assert.Equal(t, "system", conn.Author)

	// the link landed in the graph and the temp line is gone
	assert.NotNil(t, g.Link(conn.ID))
	assert.Nil(t, sc.Object("connect/temp"))
}

func TestInvalidTargetRejected(t *testing.T) {
	cm, g, _, counts := fixture(t)

	// component may only target subcomponent, not capability
	require.NoError(t, cm.Begin("contains", "comp"))
	cm.Complete("cap")
	assert.Equal(t, 1, counts[events.ConnectionInvalid])
	assert.Empty(t, cm.Connections())
	assert.Len(t, g.LinkList(), 0)

	// the attempt stays alive for another target
	assert.NotEqual(t, Idle, cm.State())
	cm.Complete("sub")
	assert.Len(t, cm.Connections(), 1)
}

func TestSelfConnectionPolicy(t *testing.T) {
	cm, _, _, counts := fixture(t)

	require.NoError(t, cm.Begin("contains", "comp"))
	cm.Complete("comp")
	assert.Equal(t, 1, counts[events.ConnectionInvalid])
	assert.Empty(t, cm.Connections())
	cm.Cancel()

	// allowed when configured, still subject to the adjacency table
	cm.Config.AllowSelfConnections = true
	require.NoError(t, cm.Begin("contains", "sub"))
	cm.Complete("sub")
	assert.Equal(t, 2, counts[events.ConnectionInvalid]) // subcomponent cannot target itself
}

func TestTempLineFollowsAndRecolors(t *testing.T) {
	cm, _, sc, _ := fixture(t)
	require.NoError(t, cm.Begin("contains", "comp"))
	line := sc.Object("connect/temp")
	require.NotNil(t, line)

	cm.PointerMoved(math32.Vec3(2, 3, 0), "")
	assert.Equal(t, math32.Vec3(2, 3, 0), line.Points[1])
	base := cm.colors.LinkColor("contains")
	assert.Equal(t, base, line.Material.Color)

	// valid hover snaps to the target and recolors
	cm.PointerMoved(math32.Vec3(4.9, 0, 0), "sub")
	assert.Equal(t, math32.Vec3(5, 0, 0), line.Points[1])
	assert.Equal(t, cm.colors.Scheme.ConnectionValid, line.Material.Color)

	// invalid hover recolors to the invalid color
	cm.PointerMoved(math32.Vec3(0, 4.9, 0), "cap")
	assert.Equal(t, cm.colors.Scheme.ConnectionInvalid, line.Material.Color)

	// back over free space reverts to the type's base color
	cm.PointerMoved(math32.Vec3(0, 0, 0), "")
	assert.Equal(t, base, line.Material.Color)
	cm.Cancel()
}

func TestEscapeCancelsAndNoStateLeak(t *testing.T) {
	cm, _, sc, counts := fixture(t)
	baseline := sc.Resources

	require.NoError(t, cm.Begin("contains", "comp"))
	cm.PointerMoved(math32.Vec3(1, 1, 0), "")
	cm.KeyDown("Escape")
	assert.Equal(t, Idle, cm.State())
	assert.Equal(t, 1, counts[events.ConnectionCancelled])
	assert.Nil(t, sc.Object("connect/temp"))
	assert.Equal(t, baseline, sc.Resources)

	// a fresh attempt starts clean
	require.NoError(t, cm.Begin("contains", "comp"))
	assert.Equal(t, CreatingFromSource, cm.State())
	cm.Complete("sub")
	assert.Len(t, cm.Connections(), 1)
}

func TestBeginSupersedesStaleAttempt(t *testing.T) {
	cm, _, _, counts := fixture(t)
	require.NoError(t, cm.Begin("contains", "comp"))
	require.NoError(t, cm.Begin("contains", "sub"))
	assert.Equal(t, 1, counts[events.ConnectionCancelled])
	assert.Equal(t, CreatingFromSource, cm.State())
}

func TestConfirmationFlow(t *testing.T) {
	cm, _, _, counts := fixture(t)
	cm.Config.RequireConfirmation = true

	require.NoError(t, cm.Begin("contains", "comp"))
	cm.Complete("sub")
	assert.Equal(t, ConfirmPending, cm.State())
	assert.Zero(t, counts[events.ConnectionCreated])

	cm.Confirm()
	assert.Equal(t, Idle, cm.State())
	assert.Equal(t, 1, counts[events.ConnectionCreated])

	// declining tears down instead
	require.NoError(t, cm.Begin("contains", "comp"))
	cm.Complete("sub")
	cm.Decline()
	assert.Equal(t, Idle, cm.State())
	assert.Len(t, cm.Connections(), 1)
}

func TestUnknownSourceIsError(t *testing.T) {
	cm, _, _, _ := fixture(t)
	assert.Error(t, cm.Begin("contains", "ghost"))
	assert.Equal(t, Idle, cm.State())
}

func TestAuthorRecorded(t *testing.T) {
	cm, _, _, _ := fixture(t)
	cm.Config.Author = "ada"
	require.NoError(t, cm.Begin("contains", "comp"))
	cm.Complete("sub")
	assert.Equal(t, "ada", cm.Connections()[0].Author)
}
