// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interact is the single authority turning raw pointer, touch,
// and keyboard input into semantic events. Disambiguation between
// click, double click, drag, long press, and two-finger gestures is
// driven by an internal clock advanced once per frame tick, so the
// state machine is fully deterministic under test.
package interact

import (
	"fmt"

	"github.com/orrery-viz/orrery/camera"
	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/scene"
)

// Params holds the gesture disambiguation constants.
type Params struct {

	// ClickMaxDuration is the longest press/release pair, in seconds,
	// still treated as a click.
	ClickMaxDuration float32 `toml:"click_max_duration"`

	// DragThreshold is the pointer movement in pixels beyond which a
	// press becomes a drag.
	DragThreshold float32 `toml:"drag_threshold"`

	// DoubleClickMaxDelay is the window in seconds after a click in
	// which a second click on the same hit promotes to a double click.
	DoubleClickMaxDelay float32 `toml:"double_click_max_delay"`

	// LongPressMinDuration is the stationary touch duration in seconds
	// that synthesizes a context-menu event.
	LongPressMinDuration float32 `toml:"long_press_min_duration"`

	// HitSlop is the extra pick radius in world units for line hits.
	HitSlop float32 `toml:"hit_slop"`

	// Mobile widens DragThreshold and HitSlop to compensate for touch
	// imprecision. Applied once at construction.
	Mobile bool `toml:"mobile"`
}

// Defaults sets the default gesture constants.
func (pr *Params) Defaults() {
	pr.ClickMaxDuration = 0.3
	pr.DragThreshold = 5
	pr.DoubleClickMaxDelay = 0.35
	pr.LongPressMinDuration = 0.5
	pr.HitSlop = 0.25
}

// Hit is the result of a ray cast against the scene.
type Hit struct {

	// Object is the visual object hit.
	Object *scene.Object

	// Dist is the ray parameter at the hit, for nearest-first ordering.
	Dist float32

	// NodeID and LinkID are the logical ids the hit resolves to by
	// walking up the object tree.
	NodeID string
	LinkID string
}

// Manager is the interaction state machine. It reads the scene and
// camera, never mutates them; semantic events go out through the
// listener map and the bus.
type Manager struct {

	// Params are the gesture constants, widened once at construction
	// when Params.Mobile is set.
	Params Params

	// Listeners receive semantic events before bus publication.
	Listeners events.Listeners

	sc  *scene.Scene
	cam *camera.Camera
	bus events.Bus

	now float32

	// pointer state
	down      bool
	dragging  bool
	downPos   math32.Vector2
	downTime  float32
	downHit   *Hit
	lastPos   math32.Vector2
	hoveredID string

	// pending single click awaiting double-click promotion
	pending *pendingClick

	// touch state
	touching  bool
	longPress bool
	touchPts  []math32.Vector2
}

type pendingClick struct {
	hit *Hit
	pos math32.Vector2
	at  float32
}

// NewManager returns an interaction manager over the given scene,
// camera, and bus. Scene and camera are required; a nil bus defaults
// to the no-op bus. The mobile heuristic in params is applied here,
// once, not per frame.
func NewManager(sc *scene.Scene, cam *camera.Camera, bus events.Bus, params *Params) (*Manager, error) {
	if sc == nil {
		return nil, fmt.Errorf("interact.NewManager: scene is required")
	}
	if cam == nil {
		return nil, fmt.Errorf("interact.NewManager: camera is required")
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	im := &Manager{
		Listeners: events.Listeners{},
		sc:        sc,
		cam:       cam,
		bus:       bus,
	}
	if params != nil {
		im.Params = *params
	} else {
		im.Params.Defaults()
	}
	if im.Params.Mobile {
		im.Params.DragThreshold *= 2
		im.Params.HitSlop *= 3
	}
	return im, nil
}

// Dragging returns whether a drag sequence is in progress.
func (im *Manager) Dragging() bool {
	return im.dragging
}

// Hovered returns the currently hovered node id, empty for none.
func (im *Manager) Hovered() string {
	return im.hoveredID
}

// Tick advances the internal clock by dt seconds, firing any pending
// single click whose double-click window expired and any long press
// whose timer elapsed.
func (im *Manager) Tick(dt float32) {
	im.now += dt

	if pc := im.pending; pc != nil && im.now-pc.at > im.Params.DoubleClickMaxDelay {
		im.pending = nil
		im.emitClick(events.NodeClick, pc.hit, pc.pos)
	}

	if im.touching && !im.longPress && !im.dragging &&
		im.down && im.now-im.downTime >= im.Params.LongPressMinDuration {
		im.longPress = true
		ev := events.New(events.NodeContextMenu)
		ev.Pos = im.lastPos
		if im.downHit != nil {
			ev.NodeID = im.downHit.NodeID
			ev.LinkID = im.downHit.LinkID
		}
		im.emit(ev)
	}
}

// PointerDown begins a press at the given pixel position.
func (im *Manager) PointerDown(pos math32.Vector2) {
	im.down = true
	im.dragging = false
	im.downPos = pos
	im.lastPos = pos
	im.downTime = im.now
	im.downHit = im.HitTest(pos)
}

// PointerMove updates the pointer position: hover detection and a
// continuous move event while up, drag events while down past the
// threshold.
func (im *Manager) PointerMove(pos math32.Vector2) {
	delta := pos.Sub(im.lastPos)
	im.lastPos = pos

	if !im.down {
		im.updateHover(pos)
		ev := events.New(events.PointerMove)
		ev.Pos = pos
		ev.NodeID = im.hoveredID
		im.emit(ev)
		return
	}
	if !im.dragging && pos.DistanceTo(im.downPos) > im.Params.DragThreshold {
		im.dragging = true
		im.longPress = true // movement aborts a pending long press
	}
	if !im.dragging {
		return
	}
	typ := events.Drag
	ev := events.New(typ)
	if im.downHit != nil && im.downHit.NodeID != "" {
		ev.Type = events.NodeDrag
		ev.NodeID = im.downHit.NodeID
	}
	ev.Pos = pos
	ev.Delta = delta
	im.emit(ev)
}

// PointerUp ends a press: a short, stationary press resolves to a
// click (or a double click when it lands within the promotion window
// of a pending click on the same hit); anything else just ends the
// drag sequence.
func (im *Manager) PointerUp(pos math32.Vector2) {
	if !im.down {
		return
	}
	wasDrag := im.dragging
	duration := im.now - im.downTime
	hit := im.downHit
	im.down = false
	im.dragging = false
	im.touching = false
	im.longPress = false

	if wasDrag || duration >= im.Params.ClickMaxDuration ||
		pos.DistanceTo(im.downPos) > im.Params.DragThreshold {
		return
	}

	if pc := im.pending; pc != nil && im.now-pc.at <= im.Params.DoubleClickMaxDelay &&
		sameHit(pc.hit, hit) {
		im.pending = nil
		im.emitClick(events.NodeDoubleClick, hit, pos)
		return
	}
	im.pending = &pendingClick{hit: hit, pos: pos, at: im.now}
}

// TouchStart begins a touch gesture with the given contact points.
// A single contact behaves like a pointer press and arms the long
// press timer.
func (im *Manager) TouchStart(pts []math32.Vector2) {
	im.touchPts = append(im.touchPts[:0], pts...)
	im.touching = true
	im.longPress = false
	if len(pts) == 1 {
		im.PointerDown(pts[0])
	}
}

// TouchMove updates a touch gesture. One contact behaves like pointer
// movement; two contacts drive zoom (pinch distance ratio), rotate
// (inter-finger angle delta), and pan (midpoint delta), all of which
// may fire in the same frame.
func (im *Manager) TouchMove(pts []math32.Vector2) {
	if !im.touching {
		return
	}
	prev := im.touchPts
	im.touchPts = append([]math32.Vector2{}, pts...)

	if len(pts) == 1 {
		im.PointerMove(pts[0])
		return
	}
	if len(pts) < 2 || len(prev) < 2 {
		return
	}

	d0 := prev[0].DistanceTo(prev[1])
	d1 := pts[0].DistanceTo(pts[1])
	if d0 > 1e-3 && math32.Abs(d1/d0-1) > 1e-3 {
		ev := events.New(events.Zoom)
		ev.Scale = d1 / d0
		im.emit(ev)
	}

	a0 := prev[1].Sub(prev[0]).Angle()
	a1 := pts[1].Sub(pts[0]).Angle()
	if da := angleDelta(a1, a0); math32.Abs(da) > 1e-3 {
		ev := events.New(events.Rotate)
		ev.Scale = da
		im.emit(ev)
	}

	m0 := prev[0].Add(prev[1]).MulScalar(0.5)
	m1 := pts[0].Add(pts[1]).MulScalar(0.5)
	if m1.DistanceTo(m0) > 1e-3 {
		ev := events.New(events.Pan)
		ev.Pos = m1
		ev.Delta = m1.Sub(m0)
		im.emit(ev)
	}
}

// TouchEnd ends a touch gesture. A single remaining contact resolves
// like a pointer release.
func (im *Manager) TouchEnd(pts []math32.Vector2) {
	if len(im.touchPts) == 1 && len(pts) >= 1 {
		im.PointerUp(pts[0])
	}
	im.touchPts = im.touchPts[:0]
	im.touching = false
	im.down = false
	im.dragging = false
	im.longPress = false
}

// Wheel emits a zoom event from a scroll step. Scale carries a
// multiplicative factor like pinch zoom does, so consumers handle
// wheel and pinch identically.
func (im *Manager) Wheel(step float32) {
	ev := events.New(events.Zoom)
	ev.Scale = 1 + step*0.1
	im.emit(ev)
}

// HitTest ray casts from the pixel position against currently visible
// objects only and returns the nearest hit, or nil. Hits resolve to
// logical ids by walking up to the nearest ancestor carrying one.
func (im *Manager) HitTest(pos math32.Vector2) *Hit {
	w, h := im.sc.Host.ViewportSize()
	ray := im.cam.ScreenRay(pos.X, pos.Y, w, h)

	var best *Hit
	for _, obj := range im.sc.Objects() {
		im.hitObject(ray, obj, &best)
	}
	return best
}

// hitObject tests one object and its children against the ray,
// keeping the nearest hit. Invisible subtrees are skipped entirely.
func (im *Manager) hitObject(ray math32.Ray, obj *scene.Object, best **Hit) {
	if !obj.IsVisible() {
		return
	}
	if dist, ok := im.intersect(ray, obj); ok {
		if *best == nil || dist < (*best).Dist {
			*best = &Hit{
				Object: obj,
				Dist:   dist,
				NodeID: obj.ResolveNodeID(),
				LinkID: obj.ResolveLinkID(),
			}
		}
	}
	for _, c := range obj.Children {
		im.hitObject(ray, c, best)
	}
}

// intersect tests the ray against one object's own geometry: bounding
// sphere for solid shapes, per-segment distance for lines. Labels and
// groups are not pickable.
func (im *Manager) intersect(ray math32.Ray, obj *scene.Object) (float32, bool) {
	switch obj.Shape {
	case scene.GroupShape, scene.LabelShape:
		return 0, false
	case scene.LineShape:
		pick := im.Params.HitSlop + obj.Material.Width*0.05
		for i := 1; i < len(obj.Points); i++ {
			distSq, rayT := ray.DistanceSquaredToSegment(obj.Points[i-1], obj.Points[i])
			if distSq <= pick*pick {
				return rayT, true
			}
		}
		return 0, false
	default:
		return ray.IntersectSphere(obj.BoundingSphere())
	}
}

// updateHover re-runs the hit test and emits a hover event whenever
// the hovered node changes, including the transition to none.
func (im *Manager) updateHover(pos math32.Vector2) {
	id := ""
	if hit := im.HitTest(pos); hit != nil {
		id = hit.NodeID
	}
	if id == im.hoveredID {
		return
	}
	im.hoveredID = id
	ev := events.NewNode(events.NodeHover, id)
	ev.Pos = pos
	im.emit(ev)
}

// emitClick fires a click-family event from a resolved hit.
func (im *Manager) emitClick(typ events.Types, hit *Hit, pos math32.Vector2) {
	ev := events.New(typ)
	ev.Pos = pos
	if hit != nil {
		ev.NodeID = hit.NodeID
		ev.LinkID = hit.LinkID
	}
	im.emit(ev)
}

func (im *Manager) emit(ev *events.Event) {
	im.Listeners.Call(ev)
	im.bus.Publish(ev)
}

func sameHit(a, b *Hit) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.NodeID == b.NodeID && a.LinkID == b.LinkID
}

// angleDelta returns the signed smallest difference between two angles
// in radians.
func angleDelta(a, b float32) float32 {
	d := math32.Mod(a-b, 2*math32.Pi)
	if d > math32.Pi {
		d -= 2 * math32.Pi
	}
	if d < -math32.Pi {
		d += 2 * math32.Pi
	}
	return d
}
