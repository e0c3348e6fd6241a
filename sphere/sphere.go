// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sphere manages multiple independent visualization contexts
// ("spheres"): each has its own node/link namespace anchored at a
// world position, at most one is active at a time, and navigation
// between two spheres flies the camera along a quadratic arc.
package sphere

import (
	"fmt"

	"github.com/orrery-viz/orrery/camera"
	"github.com/orrery-viz/orrery/events"
	"github.com/orrery-viz/orrery/math32"
)

// Params holds the sphere placement and animation constants.
type Params struct {

	// Radius is the circle radius spheres are anchored on.
	Radius float32 `toml:"radius"`

	// FadeDuration is the deactivation fade-out duration in seconds.
	FadeDuration float32 `toml:"fade_duration"`

	// NavDuration is the total arc navigation duration in seconds.
	NavDuration float32 `toml:"nav_duration"`

	// ArcHeight scales the arc midpoint elevation relative to the
	// distance between the two anchors.
	ArcHeight float32 `toml:"arc_height"`

	// Waypoints is the number of camera waypoints an arc is sampled
	// into.
	Waypoints int `toml:"waypoints"`

	// ViewDistance is the camera distance from a sphere anchor after
	// activation.
	ViewDistance float32 `toml:"view_distance"`
}

// Defaults sets the default sphere constants.
func (pr *Params) Defaults() {
	pr.Radius = 120
	pr.FadeDuration = 0.5
	pr.NavDuration = 2
	pr.ArcHeight = 0.5
	pr.Waypoints = 24
	pr.ViewDistance = 80
}

// Sphere is one visualization context: an independent node/link id
// namespace anchored in world space.
type Sphere struct {

	// ID uniquely identifies the sphere.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Anchor is the world-space anchor position, assigned from the
	// sphere's index on the placement circle.
	Anchor math32.Vector3 `json:"anchor"`

	// NodeIDs and LinkIDs are the ids belonging to this sphere's
	// namespace.
	NodeIDs map[string]bool `json:"-"`
	LinkIDs map[string]bool `json:"-"`

	// Active marks the current navigation target; at most one sphere
	// is active at steady state.
	Active bool `json:"active"`

	// Visible is whether the sphere's contents render at all.
	Visible bool `json:"visible"`

	// Opacity is the render opacity, driven by the deactivation fade.
	Opacity float32 `json:"opacity"`
}

// CrossConnection is a styled link between nodes of two different
// spheres, stored independently of either sphere's own link set.
type CrossConnection struct {
	ID             string `json:"id"`
	SourceNodeID   string `json:"sourceNodeId"`
	SourceSphereID string `json:"sourceSphereId"`
	TargetNodeID   string `json:"targetNodeId"`
	TargetSphereID string `json:"targetSphereId"`
	Style          string `json:"style,omitempty"`
}

// fade is an in-flight deactivation fade.
type fade struct {
	sp      *Sphere
	elapsed float32
}

// navigation is an in-flight arc flight between two spheres.
type navigation struct {
	waypoints   []math32.Vector3
	fromID      string
	toID        string
	elapsed     float32
	deactivated bool
	activated   bool
}

// Manager owns the sphere set, the activation state machine, and
// cross-sphere connections.
type Manager struct {

	// Params are the sphere constants.
	Params Params

	// Cam is the optional camera controller; without one activation
	// and navigation still update sphere state, they just move no
	// camera.
	Cam *camera.Controller

	bus     events.Bus
	order   []string
	spheres map[string]*Sphere
	fades   []*fade
	nav     *navigation

	cross        []*CrossConnection
	crossVisible bool
}

// NewManager returns a sphere manager. The camera controller is
// optional; a nil bus defaults to the no-op bus.
func NewManager(cam *camera.Controller, bus events.Bus) *Manager {
	if bus == nil {
		bus = events.NopBus{}
	}
	sm := &Manager{
		Cam:     cam,
		bus:     bus,
		spheres: map[string]*Sphere{},
	}
	sm.Params.Defaults()
	return sm
}

// AddSphere registers a new sphere and re-anchors the whole set evenly
// around the placement circle. Duplicate ids return the existing
// sphere unchanged.
func (sm *Manager) AddSphere(id, name string) *Sphere {
	if sp, has := sm.spheres[id]; has {
		return sp
	}
	sp := &Sphere{
		ID:      id,
		Name:    name,
		NodeIDs: map[string]bool{},
		LinkIDs: map[string]bool{},
		Opacity: 1,
	}
	sm.spheres[id] = sp
	sm.order = append(sm.order, id)
	sm.reanchor()
	return sp
}

// Sphere returns the sphere with the given id, or nil.
func (sm *Manager) Sphere(id string) *Sphere {
	return sm.spheres[id]
}

// Spheres returns the spheres in registration order.
func (sm *Manager) Spheres() []*Sphere {
	sps := make([]*Sphere, 0, len(sm.order))
	for _, id := range sm.order {
		sps = append(sps, sm.spheres[id])
	}
	return sps
}

// Active returns the active sphere, or nil.
func (sm *Manager) Active() *Sphere {
	for _, id := range sm.order {
		if sp := sm.spheres[id]; sp.Active {
			return sp
		}
	}
	return nil
}

// ActivateSphere makes the target sphere visible and active,
// deactivating any previously active sphere with a fade-out, and
// animates the camera to the target's anchor when a controller is
// attached. Activation is mutually exclusive.
func (sm *Manager) ActivateSphere(id string) error {
	sp := sm.spheres[id]
	if sp == nil {
		return fmt.Errorf("sphere: unknown sphere %q", id)
	}
	if prev := sm.Active(); prev != nil && prev != sp {
		prev.Active = false
		sm.fades = append(sm.fades, &fade{sp: prev})
	}
	sp.Active = true
	sp.Visible = true
	sp.Opacity = 1

	if sm.Cam != nil {
		sm.Cam.ZoomToPosition(sp.Anchor, sm.Params.ViewDistance)
	}
	ev := events.New(events.SphereActivated)
	ev.SphereID = id
	ev.WorldPos = sp.Anchor
	sm.bus.Publish(ev)
	return nil
}

// NavigateBetweenSpheres flies the camera from one sphere to another
// along a quadratic arc sampled into waypoints. The source sphere is
// deactivated early in the flight and the destination activated near
// the end. A navigation already in flight is superseded.
func (sm *Manager) NavigateBetweenSpheres(fromID, toID string) error {
	from := sm.spheres[fromID]
	to := sm.spheres[toID]
	if from == nil || to == nil {
		return fmt.Errorf("sphere: unknown navigation endpoint %q -> %q", fromID, toID)
	}
	sm.nav = &navigation{
		waypoints: ArcWaypoints(from.Anchor, to.Anchor, sm.Params.ArcHeight, sm.Params.Waypoints),
		fromID:    fromID,
		toID:      toID,
	}
	return nil
}

// Navigating returns whether an arc flight is in progress.
func (sm *Manager) Navigating() bool {
	return sm.nav != nil
}

// Tick advances deactivation fades and any arc navigation by dt
// seconds.
func (sm *Manager) Tick(dt float32) {
	sm.tickFades(dt)
	sm.tickNav(dt)
}

func (sm *Manager) tickFades(dt float32) {
	keep := sm.fades[:0]
	for _, fd := range sm.fades {
		fd.elapsed += dt
		if fd.sp.Active {
			// reactivated mid-fade: abort the fade
			fd.sp.Opacity = 1
			continue
		}
		t := float32(1)
		if sm.Params.FadeDuration > 0 {
			t = math32.Clamp(fd.elapsed/sm.Params.FadeDuration, 0, 1)
		}
		fd.sp.Opacity = 1 - t
		if t >= 1 {
			fd.sp.Visible = false
			continue
		}
		keep = append(keep, fd)
	}
	sm.fades = keep
}

func (sm *Manager) tickNav(dt float32) {
	nav := sm.nav
	if nav == nil {
		return
	}
	nav.elapsed += dt
	t := float32(1)
	if sm.Params.NavDuration > 0 {
		t = math32.Clamp(nav.elapsed/sm.Params.NavDuration, 0, 1)
	}

	// deactivate the source early, activate the destination near the end
	if !nav.deactivated && t >= 0.2 {
		nav.deactivated = true
		if from := sm.spheres[nav.fromID]; from != nil && from.Active {
			from.Active = false
			sm.fades = append(sm.fades, &fade{sp: from})
		}
	}
	if !nav.activated && t >= 0.8 {
		nav.activated = true
		if err := sm.ActivateSphere(nav.toID); err == nil && sm.Cam != nil {
			// the activation zoom takes over for the final approach
			sm.nav = nil
			return
		}
	}

	if sm.Cam != nil && len(nav.waypoints) > 0 {
		idx := int(t * float32(len(nav.waypoints)-1))
		wp := nav.waypoints[idx]
		dir := sm.Cam.Cam.ViewVector().Normal()
		sm.Cam.Cam.Target = wp
		sm.Cam.Cam.Pos = wp.Add(dir.MulScalar(sm.Params.ViewDistance))
	}
	if t >= 1 {
		sm.nav = nil
	}
}

// AddCrossConnection stores a cross-sphere connection. It is never
// added to either sphere's own link set.
func (sm *Manager) AddCrossConnection(cc *CrossConnection) {
	sm.cross = append(sm.cross, cc)
}

// CrossConnections returns all cross-sphere connections.
func (sm *Manager) CrossConnections() []*CrossConnection {
	return sm.cross
}

// CrossConnectionsFor returns the cross-sphere connections touching
// the given sphere on either end.
func (sm *Manager) CrossConnectionsFor(sphereID string) []*CrossConnection {
	var out []*CrossConnection
	for _, cc := range sm.cross {
		if cc.SourceSphereID == sphereID || cc.TargetSphereID == sphereID {
			out = append(out, cc)
		}
	}
	return out
}

// SetCrossVisible toggles the cross-sphere connection group and
// publishes the change so subscribers can show or hide the group's
// visuals. Setting the current value publishes nothing.
func (sm *Manager) SetCrossVisible(visible bool) {
	if sm.crossVisible == visible {
		return
	}
	sm.crossVisible = visible
	ev := events.New(events.CrossConnectionsToggled)
	ev.Data = visible
	sm.bus.Publish(ev)
}

// CrossVisible returns whether the cross-sphere connection group is
// visible.
func (sm *Manager) CrossVisible() bool {
	return sm.crossVisible
}

// reanchor distributes all spheres evenly around the placement circle
// in registration order.
func (sm *Manager) reanchor() {
	n := len(sm.order)
	for i, id := range sm.order {
		angle := 2 * math32.Pi * float32(i) / float32(n)
		sm.spheres[id].Anchor = math32.Vec3(
			sm.Params.Radius*math32.Cos(angle),
			0,
			sm.Params.Radius*math32.Sin(angle),
		)
	}
}

// ArcWaypoints samples a quadratic arc from start to end into n
// waypoints: the control point is the elevated midpoint, raised in
// proportion to the endpoint distance.
func ArcWaypoints(start, end math32.Vector3, height float32, n int) []math32.Vector3 {
	if n < 2 {
		n = 2
	}
	mid := start.Add(end).MulScalar(0.5)
	mid.Y += start.DistanceTo(end) * height
	wps := make([]math32.Vector3, n)
	for i := range wps {
		t := float32(i) / float32(n-1)
		u := 1 - t
		wps[i] = start.MulScalar(u * u).
			Add(mid.MulScalar(2 * u * t)).
			Add(end.MulScalar(t * t))
	}
	return wps
}
