// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"

	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/style"
)

// LinkParams holds the link rendering constants.
type LinkParams struct {

	// CurveSegments is the sample count for curved links.
	CurveSegments int `toml:"curve_segments"`

	// Curvature scales the perpendicular midpoint offset of a curved
	// link relative to the endpoint span.
	Curvature float32 `toml:"curvature"`

	// ShowArrows renders a direction arrow on each link.
	ShowArrows bool `toml:"show_arrows"`

	// ArrowFraction is the arrow position along the path, in [0, 1].
	ArrowFraction float32 `toml:"arrow_fraction"`

	// ArrowSize is the arrow primitive scale.
	ArrowSize float32 `toml:"arrow_size"`
}

// Defaults sets the default link rendering constants.
func (pr *LinkParams) Defaults() {
	pr.CurveSegments = 16
	pr.Curvature = 0.2
	pr.ShowArrows = true
	pr.ArrowFraction = 0.6
	pr.ArrowSize = 0.6
}

// LinkRenderer owns one visual object per graph link: a line or curve
// with an optional arrow child. Link geometry is derived from the
// endpoints' node visuals by id lookup on every position pass; the
// renderer never owns node positions.
type LinkRenderer struct {

	// Scene is the scene visual objects are created in.
	Scene *scene.Scene

	// Colors resolves link colors and line styles.
	Colors *style.Colors

	// Nodes resolves link endpoints to node visuals.
	Nodes *NodeRenderer

	// Params are the link rendering constants.
	Params LinkParams

	visuals map[string]*scene.Object
	links   map[string]*graph.Link
}

// NewLinkRenderer returns a link renderer over the given scene, color
// resolver, and node renderer. All three are required.
func NewLinkRenderer(sc *scene.Scene, cs *style.Colors, nodes *NodeRenderer) (*LinkRenderer, error) {
	if sc == nil {
		return nil, fmt.Errorf("render.NewLinkRenderer: scene is required")
	}
	if cs == nil {
		return nil, fmt.Errorf("render.NewLinkRenderer: colors is required")
	}
	if nodes == nil {
		return nil, fmt.Errorf("render.NewLinkRenderer: node renderer is required")
	}
	lr := &LinkRenderer{
		Scene:   sc,
		Colors:  cs,
		Nodes:   nodes,
		visuals: map[string]*scene.Object{},
		links:   map[string]*graph.Link{},
	}
	lr.Params.Defaults()
	return lr, nil
}

// SetAll replaces the full working set: visuals for links no longer
// present are disposed, the rest are updated in place.
func (lr *LinkRenderer) SetAll(links []*graph.Link) {
	wanted := make(map[string]bool, len(links))
	for _, l := range links {
		wanted[l.ID] = true
	}
	for id, obj := range lr.visuals {
		if !wanted[id] {
			lr.Scene.ReleaseObject(obj)
			delete(lr.visuals, id)
			delete(lr.links, id)
		}
	}
	lr.UpdateAll(links)
}

// UpdateAll updates or creates visuals for the given links without
// removing visuals the list does not mention.
func (lr *LinkRenderer) UpdateAll(links []*graph.Link) {
	for _, l := range links {
		lr.update(l)
	}
}

// GetVisualByID returns the visual object for a link id, or nil.
func (lr *LinkRenderer) GetVisualByID(id string) *scene.Object {
	return lr.visuals[id]
}

// UpdatePositions recomputes every link's geometry from its endpoint
// visuals and re-derives visibility. A link whose endpoint visual is
// missing or invisible is hidden; this is evaluated fresh on every
// pass, never cached.
func (lr *LinkRenderer) UpdatePositions() {
	for id, obj := range lr.visuals {
		lr.reposition(lr.links[id], obj)
	}
}

// update reconciles a single link against its visual, creating it on
// first sight, then repositions it.
func (lr *LinkRenderer) update(l *graph.Link) {
	obj := lr.visuals[l.ID]
	if obj == nil {
		obj = lr.Scene.NewObject("link/"+l.ID, scene.LineShape)
		obj.LinkID = l.ID
		if lr.Params.ShowArrows {
			arrow := obj.NewChild("arrow", scene.ArrowShape)
			arrow.Pose.Scale.SetScalar(lr.Params.ArrowSize)
		}
		lr.visuals[l.ID] = obj
	}
	lr.links[l.ID] = l

	obj.Material.Color = lr.Colors.LinkColor(l.Type)
	obj.Material.Width = lr.Colors.LinkWidth(l.Type)
	obj.Material.Dashed = lr.Colors.LinkDashed(l.Type)
	if arrow := obj.ChildByName("arrow"); arrow != nil {
		arrow.Material.Color = obj.Material.Color
	}
	lr.reposition(l, obj)
}

// reposition rebuilds the path geometry and visibility of one link
// from its endpoint visuals.
func (lr *LinkRenderer) reposition(l *graph.Link, obj *scene.Object) {
	if l == nil {
		obj.Visible = false
		return
	}
	src := lr.Nodes.GetVisualByID(l.Source)
	dst := lr.Nodes.GetVisualByID(l.Target)
	if src == nil || dst == nil || !src.IsVisible() || !dst.IsVisible() {
		obj.Visible = false
		lr.Scene.Updated(obj)
		return
	}
	obj.Visible = l.Visible

	a := src.WorldPos()
	b := dst.WorldPos()
	if lr.Colors.LinkCurved(l.Type) {
		obj.Points = CurvePoints(a, b, lr.Params.Curvature, lr.Params.CurveSegments)
	} else {
		obj.Points = []math32.Vector3{a, b}
	}

	if arrow := obj.ChildByName("arrow"); arrow != nil {
		pos, tangent := PointAlong(obj.Points, lr.Params.ArrowFraction)
		arrow.Pose.Pos = pos
		arrow.Pose.Quat = math32.NewQuatFromUnitVectors(math32.Vec3(0, 1, 0), tangent)
	}
	lr.Scene.Updated(obj)
}

// CurvePoints samples a quadratic curve between a and b: the control
// point is the midpoint offset perpendicular to the span, proportional
// to the span length.
func CurvePoints(a, b math32.Vector3, curvature float32, segments int) []math32.Vector3 {
	if segments < 2 {
		segments = 2
	}
	span := b.Sub(a)
	perp := span.Cross(math32.Vec3(0, 0, 1))
	if perp.LengthSquared() < 1e-6 {
		perp = span.Cross(math32.Vec3(0, 1, 0))
	}
	ctrl := a.Add(b).MulScalar(0.5).Add(perp.Normal().MulScalar(span.Length() * curvature))

	pts := make([]math32.Vector3, segments+1)
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		u := 1 - t
		pts[i] = a.MulScalar(u * u).
			Add(ctrl.MulScalar(2 * u * t)).
			Add(b.MulScalar(t * t))
	}
	return pts
}

// PointAlong returns the position at the given fraction of a polyline's
// arc length, and the unit tangent there.
func PointAlong(pts []math32.Vector3, frac float32) (math32.Vector3, math32.Vector3) {
	if len(pts) == 0 {
		return math32.Vector3{}, math32.Vec3(0, 1, 0)
	}
	if len(pts) == 1 {
		return pts[0], math32.Vec3(0, 1, 0)
	}
	total := float32(0)
	for i := 1; i < len(pts); i++ {
		total += pts[i].DistanceTo(pts[i-1])
	}
	if total == 0 {
		return pts[0], math32.Vec3(0, 1, 0)
	}
	want := math32.Clamp(frac, 0, 1) * total
	run := float32(0)
	for i := 1; i < len(pts); i++ {
		seg := pts[i].DistanceTo(pts[i-1])
		if run+seg >= want && seg > 0 {
			t := (want - run) / seg
			tangent := pts[i].Sub(pts[i-1]).Normal()
			return pts[i-1].Lerp(pts[i], t), tangent
		}
		run += seg
	}
	tangent := pts[len(pts)-1].Sub(pts[len(pts)-2]).Normal()
	return pts[len(pts)-1], tangent
}
