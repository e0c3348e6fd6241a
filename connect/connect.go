// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package connect implements the interactive connection-authoring
// state machine: pick a source node, follow the pointer with a
// temporary line, validate candidate targets against the type
// adjacency table, and persist or cancel. Every exit path tears the
// temporary line down, so no state leaks across attempts.
package connect

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/render"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/style"
)

// States enumerates the connection-authoring states.
type States int32

const (
	// Idle means no authoring attempt in progress.
	Idle States = iota

	// CreatingFromSource means a source is picked and the temporary
	// line follows the pointer.
	CreatingFromSource

	// HoveringTarget means the pointer is over a candidate target.
	HoveringTarget

	// ConfirmPending means a valid target was picked and the attempt
	// awaits external confirmation.
	ConfirmPending
)

func (st States) String() string {
	switch st {
	case Idle:
		return "idle"
	case CreatingFromSource:
		return "creatingFromSource"
	case HoveringTarget:
		return "hoveringTarget"
	case ConfirmPending:
		return "confirmPending"
	}
	return "unknown"
}

// Config holds the authoring policy switches.
type Config struct {

	// AllowSelfConnections permits a node to connect to itself.
	AllowSelfConnections bool `toml:"allow_self_connections"`

	// RequireConfirmation routes completion through Confirm/Decline
	// instead of persisting immediately.
	RequireConfirmation bool `toml:"require_confirmation"`

	// Author is recorded on created connections. Empty means no
	// identity provider is present and degrades to "system".
	Author string `toml:"author"`
}

// Connection is a persisted authored connection record.
type Connection struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Author string `json:"author"`
}

// Manager is the connection-authoring state machine.
type Manager struct {

	// Config is the authoring policy.
	Config Config

	g      *graph.Graph
	nodes  *render.NodeRenderer
	sc     *scene.Scene
	colors *style.Colors
	bus    events.Bus

	state    States
	connType string
	sourceID string
	targetID string
	line     *scene.Object
	created  []*Connection
}

// NewManager returns a connection-authoring manager. Graph, node
// renderer, scene, and colors are required; a nil bus defaults to the
// no-op bus.
func NewManager(g *graph.Graph, nodes *render.NodeRenderer, sc *scene.Scene, cs *style.Colors, bus events.Bus) (*Manager, error) {
	if g == nil {
		return nil, fmt.Errorf("connect.NewManager: graph is required")
	}
	if nodes == nil {
		return nil, fmt.Errorf("connect.NewManager: node renderer is required")
	}
	if sc == nil {
		return nil, fmt.Errorf("connect.NewManager: scene is required")
	}
	if cs == nil {
		return nil, fmt.Errorf("connect.NewManager: colors is required")
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	return &Manager{
		Config: Config{RequireConfirmation: false},
		g:      g,
		nodes:  nodes,
		sc:     sc,
		colors: cs,
		bus:    bus,
	}, nil
}

// State returns the current authoring state.
func (cm *Manager) State() States {
	return cm.state
}

// Connections returns the connections created so far, in order.
func (cm *Manager) Connections() []*Connection {
	return cm.created
}

// Begin starts an authoring attempt of the given relationship type
// from the given source node. A stale attempt is implicitly cancelled
// first. Unknown source ids are an error and leave the state idle.
func (cm *Manager) Begin(connType, sourceID string) error {
	if cm.state != Idle {
		cm.Cancel()
	}
	src := cm.g.Node(sourceID)
	if src == nil {
		return fmt.Errorf("connect: unknown source node %q", sourceID)
	}
	cm.connType = connType
	cm.sourceID = sourceID
	cm.state = CreatingFromSource

	cm.line = cm.sc.NewObject("connect/temp", scene.LineShape)
	cm.line.Material.Color = cm.colors.LinkColor(connType)
	cm.line.Material.Dashed = true
	cm.line.Points = []math32.Vector3{cm.sourcePos(), cm.sourcePos()}

	ev := events.NewNode(events.ConnectionStarted, sourceID)
	ev.Data = connType
	cm.bus.Publish(ev)
	return nil
}

// PointerMoved updates the temporary line endpoint to the live world
// position and re-evaluates the hovered candidate target. An empty
// target id means the pointer is over free space.
func (cm *Manager) PointerMoved(world math32.Vector3, targetID string) {
	if cm.state != CreatingFromSource && cm.state != HoveringTarget {
		return
	}
	end := world
	if targetID != "" {
		if tv := cm.nodes.GetVisualByID(targetID); tv != nil {
			end = tv.WorldPos()
		}
	}
	cm.line.Points = []math32.Vector3{cm.sourcePos(), end}

	cm.targetID = targetID
	if targetID == "" {
		cm.state = CreatingFromSource
		cm.line.Material.Color = cm.colors.LinkColor(cm.connType)
	} else {
		cm.state = HoveringTarget
		if cm.validTarget(targetID) {
			cm.line.Material.Color = cm.colors.Scheme.ConnectionValid
		} else {
			cm.line.Material.Color = cm.colors.Scheme.ConnectionInvalid
		}
	}
	cm.sc.Updated(cm.line)
}

// Complete attempts to finish the connection on the given target.
// An invalid target emits an invalid event and keeps the attempt
// alive; a valid one either persists immediately or parks in
// ConfirmPending when confirmation is required.
func (cm *Manager) Complete(targetID string) {
	if cm.state != CreatingFromSource && cm.state != HoveringTarget {
		return
	}
	if !cm.validTarget(targetID) {
		ev := events.NewNode(events.ConnectionInvalid, targetID)
		ev.Data = cm.connType
		cm.bus.Publish(ev)
		return
	}
	cm.targetID = targetID
	if cm.Config.RequireConfirmation {
		cm.state = ConfirmPending
		return
	}
	cm.persist()
}

// Confirm persists a connection parked in ConfirmPending.
func (cm *Manager) Confirm() {
	if cm.state != ConfirmPending {
		return
	}
	cm.persist()
}

// Decline cancels a connection parked in ConfirmPending.
func (cm *Manager) Decline() {
	if cm.state != ConfirmPending {
		return
	}
	cm.Cancel()
}

// Cancel aborts the attempt from any state, tearing down the
// temporary line. Safe to call when idle.
func (cm *Manager) Cancel() {
	if cm.state == Idle {
		return
	}
	cm.reset()
	cm.bus.Publish(events.New(events.ConnectionCancelled))
}

// KeyDown feeds a key press into the state machine; Escape cancels
// the attempt.
func (cm *Manager) KeyDown(key string) {
	if key == "Escape" {
		cm.Cancel()
	}
}

// validTarget applies the adjacency table and the self-connection
// policy to a candidate target.
func (cm *Manager) validTarget(targetID string) bool {
	if targetID == "" {
		return false
	}
	if targetID == cm.sourceID && !cm.Config.AllowSelfConnections {
		return false
	}
	dst := cm.g.Node(targetID)
	if dst == nil {
		return false
	}
	src := cm.g.Node(cm.sourceID)
	return src != nil && cm.colors.Registry.CanConnect(src.Type, dst.Type)
}

// persist records the connection, adds the link to the graph, and
// resets to idle.
func (cm *Manager) persist() {
	author := cm.Config.Author
	if author == "" {
		author = "system"
	}
	conn := &Connection{
		ID:     uuid.NewString(),
		Source: cm.sourceID,
		Target: cm.targetID,
		Type:   cm.connType,
		Author: author,
	}
	cm.created = append(cm.created, conn)
	cm.g.AddLink(&graph.Link{
		ID:      conn.ID,
		Source:  conn.Source,
		Target:  conn.Target,
		Type:    conn.Type,
		Visible: true,
	})
	cm.reset()

	ev := events.New(events.ConnectionCreated)
	ev.NodeID = conn.Target
	ev.Data = conn
	cm.bus.Publish(ev)
}

// reset tears down the temporary line and returns to idle.
func (cm *Manager) reset() {
	if cm.line != nil {
		cm.sc.ReleaseObject(cm.line)
		cm.line = nil
	}
	cm.state = Idle
	cm.connType = ""
	cm.sourceID = ""
	cm.targetID = ""
}

// sourcePos is the source node's current visual position, falling back
// to its data position when the visual is missing.
func (cm *Manager) sourcePos() math32.Vector3 {
	if sv := cm.nodes.GetVisualByID(cm.sourceID); sv != nil {
		return sv.WorldPos()
	}
	if n := cm.g.Node(cm.sourceID); n != nil {
		return n.Position
	}
	return math32.Vector3{}
}
