// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package orrery is an interactive 3D graph visualization engine:
// typed nodes and relationships are laid out in 3D space, rendered as
// persistent visual objects, and manipulated through an orbit camera
// and pointer/touch gestures. The Engine facade wires the layout,
// renderer, camera, interaction, connection, and sphere components
// together behind an imperative API driven by a per-frame Tick.
package orrery

import (
	"fmt"

	"github.com/orrery-viz/orrery/camera"
	"github.com/orrery-viz/orrery/connect"
	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/interact"
	"github.com/orrery-viz/orrery/layout"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/render"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/sphere"
	"github.com/orrery-viz/orrery/style"
)

// Engine is the visualization engine facade. All mutation happens on
// one logical goroutine: input callbacks and API calls enqueue state
// changes that the next Tick consumes.
type Engine struct {

	// Graph is the node/link working set.
	Graph *graph.Graph

	// Registry is the node and relationship type vocabulary.
	Registry *graph.TypeRegistry

	// Colors resolves type and state styling.
	Colors *style.Colors

	// Scene owns the visual objects.
	Scene *scene.Scene

	// Nodes and Links are the reconciling renderers.
	Nodes *render.NodeRenderer
	Links *render.LinkRenderer

	// Layout computes target positions and drives transitions.
	Layout *layout.Engine

	// Camera is the orbit camera controller.
	Camera *camera.Controller

	// Interact turns raw input into semantic events.
	Interact *interact.Manager

	// Connect is the connection-authoring state machine.
	Connect *connect.Manager

	// Spheres manages multiple visualization contexts.
	Spheres *sphere.Manager

	// listeners receive the semantic event stream; register through
	// [Engine.Events].
	listeners events.Listeners

	bus events.Bus
}

// NewEngine builds a fully wired engine on the given scene host. The
// host is required; a nil bus defaults to the no-op bus; nil options
// use the defaults. Construction either returns a complete engine or
// an error, never a partially initialized one.
func NewEngine(host scene.Host, bus events.Bus, opts *Options) (*Engine, error) {
	if bus == nil {
		bus = events.NopBus{}
	}
	if opts == nil {
		opts = NewOptions()
	}

	e := &Engine{bus: bus}
	// every component publishes through the engine: listeners first,
	// then the external bus
	fan := events.BusFunc(func(ev *events.Event) {
		e.listeners.Call(ev)
		e.bus.Publish(ev)
	})

	sc, err := scene.NewScene(host)
	if err != nil {
		return nil, fmt.Errorf("orrery: %w", err)
	}
	e.Scene = sc
	e.Graph = graph.New()
	e.Registry = graph.NewTypeRegistry()
	e.Colors = style.NewColors(e.Registry)
	e.Colors.SetDark(opts.Dark)
	e.Scene.Background = e.Colors.Scheme.Background

	e.Nodes, err = render.NewNodeRenderer(sc, e.Colors)
	if err != nil {
		return nil, fmt.Errorf("orrery: %w", err)
	}
	e.Nodes.Params = opts.Nodes
	e.Links, err = render.NewLinkRenderer(sc, e.Colors, e.Nodes)
	if err != nil {
		return nil, fmt.Errorf("orrery: %w", err)
	}
	e.Links.Params = opts.Links

	e.Layout = layout.NewEngine()
	e.Layout.Params = opts.Layout
	e.Layout.Mode = layout.ModeFromName(opts.ViewMode)

	cam := &camera.Camera{}
	cam.Defaults()
	e.Camera, err = camera.NewController(cam, fan)
	if err != nil {
		return nil, fmt.Errorf("orrery: %w", err)
	}
	e.Camera.Params = opts.Camera

	e.Interact, err = interact.NewManager(sc, cam, fan, &opts.Interact)
	if err != nil {
		return nil, fmt.Errorf("orrery: %w", err)
	}
	e.Connect, err = connect.NewManager(e.Graph, e.Nodes, sc, e.Colors, fan)
	if err != nil {
		return nil, fmt.Errorf("orrery: %w", err)
	}
	e.Connect.Config = opts.Connect

	e.Spheres = sphere.NewManager(e.Camera, fan)
	e.Spheres.Params = opts.Spheres

	e.wireInput()
	return e, nil
}

// Events returns the listener registry for the semantic event stream.
func (e *Engine) Events() *events.Listeners {
	return &e.listeners
}

// LoadData replaces the graph working set and recomputes the layout
// under the current view mode.
func (e *Engine) LoadData(nodes []*graph.Node, links []*graph.Link) {
	e.Graph.SetNodes(nodes)
	e.Graph.SetLinks(links)
	e.Nodes.SetAll(e.Graph.NodeList())
	e.Links.SetAll(e.Graph.LinkList())
	e.refreshVisibility()
	e.relayout(e.Layout.Mode)
}

// SelectNode marks the node selected, clearing any previous selection.
// An empty id deselects.
func (e *Engine) SelectNode(id string) {
	if e.Nodes.Selected() == id {
		return
	}
	e.Nodes.SetSelected(id)
	ev := events.NewNode(events.NodeSelect, id)
	e.listeners.Call(ev)
	e.bus.Publish(ev)
}

// HoverNode marks the node hovered, clearing any previous hover.
func (e *Engine) HoverNode(id string) {
	e.Nodes.SetHovered(id)
}

// ExpandNode reveals a collapsed node's subtree.
func (e *Engine) ExpandNode(id string) {
	e.Graph.Expand(id)
	e.refreshVisibility()
}

// CollapseNode hides the node's descendant subtree. The node itself
// stays visible.
func (e *Engine) CollapseNode(id string) {
	e.Graph.Collapse(id)
	e.refreshVisibility()
}

// ZoomToNode animates the camera to frame the node's visual.
func (e *Engine) ZoomToNode(id string) error {
	obj := e.Nodes.GetVisualByID(id)
	if obj == nil {
		return fmt.Errorf("orrery: no visual for node %q", id)
	}
	e.Camera.FocusOnObject(obj)
	return nil
}

// ZoomToFit animates the camera to frame all visible node visuals.
func (e *Engine) ZoomToFit() {
	var objs []*scene.Object
	for _, id := range e.Graph.NodeOrder {
		if obj := e.Nodes.GetVisualByID(id); obj != nil && obj.IsVisible() {
			objs = append(objs, obj)
		}
	}
	e.Camera.FitToObjects(objs)
}

// ResetView animates the camera back to its home pose.
func (e *Engine) ResetView() {
	e.Camera.ResetView()
}

// SetViewMode switches the layout mode by name and recomputes the
// layout. Unknown names fall back to hierarchical.
func (e *Engine) SetViewMode(mode string) {
	e.relayout(layout.ModeFromName(mode))
}

// ActivateSphere makes the sphere the active context.
func (e *Engine) ActivateSphere(id string) error {
	return e.Spheres.ActivateSphere(id)
}

// NavigateBetweenSpheres flies the camera from one sphere to another.
func (e *Engine) NavigateBetweenSpheres(fromID, toID string) error {
	return e.Spheres.NavigateBetweenSpheres(fromID, toID)
}

// BeginConnection starts authoring a connection of the given
// relationship type from the currently selected node.
func (e *Engine) BeginConnection(connType string) error {
	src := e.Nodes.Selected()
	if src == "" {
		return fmt.Errorf("orrery: no node selected to connect from")
	}
	return e.Connect.Begin(connType, src)
}

// CancelConnection aborts any connection-authoring attempt.
func (e *Engine) CancelConnection() {
	e.Connect.Cancel()
}

// KeyDown feeds a key press into the engine; Escape cancels any
// connection-authoring attempt.
func (e *Engine) KeyDown(key string) {
	e.Connect.KeyDown(key)
}

// Tick advances one frame: layout transitions, link geometry, camera
// animation, gesture timers, and sphere fades, in that order.
func (e *Engine) Tick(dt float32) {
	if e.Layout.Tick(dt, e.Graph) {
		e.Nodes.UpdateAll(e.Graph.NodeList())
		e.refreshVisibility()
	}
	// link geometry is endpoint-derived; recompute every frame
	e.Links.UpdatePositions()
	e.Camera.Tick(dt)
	e.Interact.Tick(dt)
	e.Spheres.Tick(dt)
}

// relayout recomputes target positions and publishes the result.
func (e *Engine) relayout(mode layout.Modes) {
	e.Layout.CalculateLayout(e.Graph, mode)
	ev := events.New(events.LayoutCalculated)
	ev.Data = mode.String()
	e.listeners.Call(ev)
	e.bus.Publish(ev)
}

// refreshVisibility pushes collapse-derived effective visibility onto
// the node visuals; link visibility then follows on the next position
// pass.
func (e *Engine) refreshVisibility() {
	for _, id := range e.Graph.NodeOrder {
		if obj := e.Nodes.GetVisualByID(id); obj != nil {
			obj.Visible = e.Graph.IsNodeVisible(id)
		}
	}
	e.Links.UpdatePositions()
}

// wireInput applies the semantic gesture stream back onto the engine:
// clicks select, hovers highlight, empty-space drags orbit, and
// two-finger gestures pan/zoom/rotate the camera.
func (e *Engine) wireInput() {
	e.Interact.Listeners.Add(events.NodeClick, func(ev *events.Event) {
		e.SelectNode(ev.NodeID)
	})
	e.Interact.Listeners.Add(events.NodeDoubleClick, func(ev *events.Event) {
		if ev.NodeID != "" {
			e.ZoomToNode(ev.NodeID)
		}
	})
	e.Interact.Listeners.Add(events.NodeHover, func(ev *events.Event) {
		e.HoverNode(ev.NodeID)
	})
	e.Interact.Listeners.Add(events.Drag, func(ev *events.Event) {
		e.Camera.OrbitBy(ev.Delta)
	})
	e.Interact.Listeners.Add(events.NodeDrag, func(ev *events.Event) {
		obj := e.Nodes.GetVisualByID(ev.NodeID)
		n := e.Graph.Node(ev.NodeID)
		if obj == nil || n == nil {
			return
		}
		_, h := e.Scene.Host.ViewportSize()
		n.Position.SetAdd(e.Camera.Cam.DragDelta(ev.Delta, obj.WorldPos(), h))
		n.HasPosition = true
		e.Nodes.UpdateAll([]*graph.Node{n})
	})
	e.Interact.Listeners.Add(events.Pan, func(ev *events.Event) {
		e.Camera.PanBy(ev.Delta)
	})
	e.Interact.Listeners.Add(events.Zoom, func(ev *events.Event) {
		// Scale is a multiplicative factor; factors above 1 move closer
		e.Camera.ZoomBy((1 - ev.Scale) * 10)
	})
	e.Interact.Listeners.Add(events.Rotate, func(ev *events.Event) {
		if sp := e.Camera.Params.RotateSpeed; sp > 0 {
			e.Camera.OrbitBy(math32.Vec2(-math32.RadToDeg(ev.Scale)/sp, 0))
		}
	})

	// while authoring a connection, every pointer move feeds the
	// temporary line, through free space included, and clicks complete
	// or cancel the attempt instead of selecting; these run before the
	// handlers above since listeners are called in reverse registration
	// order
	e.Interact.Listeners.Add(events.PointerMove, func(ev *events.Event) {
		if e.Connect.State() == connect.Idle {
			return
		}
		e.Connect.PointerMoved(e.pointerWorld(ev.Pos), ev.NodeID)
	})
	e.Interact.Listeners.Add(events.NodeClick, func(ev *events.Event) {
		if e.Connect.State() == connect.Idle {
			return
		}
		if ev.NodeID == "" {
			e.Connect.Cancel()
		} else {
			e.Connect.Complete(ev.NodeID)
		}
		ev.SetHandled()
	})

	// a persisted connection needs a link visual
	e.listeners.Add(events.ConnectionCreated, func(ev *events.Event) {
		e.Links.UpdateAll(e.Graph.LinkList())
	})
}

// pointerWorld projects a screen position onto the plane through the
// camera target, perpendicular to the view direction.
func (e *Engine) pointerWorld(pos math32.Vector2) math32.Vector3 {
	w, h := e.Scene.Host.ViewportSize()
	ray := e.Camera.Cam.ScreenRay(pos.X, pos.Y, w, h)
	forward, _, _ := e.Camera.Cam.Basis()
	denom := ray.Dir.Dot(forward)
	if math32.Abs(denom) < 1e-6 {
		return e.Camera.Cam.Target
	}
	t := e.Camera.Cam.Target.Sub(ray.Origin).Dot(forward) / denom
	return ray.At(t)
}
