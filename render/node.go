// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render reconciles the graph data model against persistent
// visual objects. The renderers own the visual-object lifecycle: an
// object is created on first sight of a node or link id, updated in
// place on subsequent passes, and disposed when its data counterpart
// disappears. No visual object outlives its data.
package render

import (
	"fmt"

	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
	"github.com/orrery-viz/orrery/scene"
	"github.com/orrery-viz/orrery/style"
)

// NodeParams holds the node rendering constants.
type NodeParams struct {

	// GlobalScale multiplies every node size.
	GlobalScale float32 `toml:"global_scale"`

	// LevelShrink is the per-level size multiplier, in (0, 1].
	LevelShrink float32 `toml:"level_shrink"`

	// MinSize is the size floor after level shrinking, before
	// GlobalScale.
	MinSize float32 `toml:"min_size"`

	// ShowLabels renders a label billboard above each node.
	ShowLabels bool `toml:"show_labels"`

	// LabelOffset is the label height above the mesh, in multiples of
	// the node size.
	LabelOffset float32 `toml:"label_offset"`
}

// Defaults sets the default node rendering constants.
func (pr *NodeParams) Defaults() {
	pr.GlobalScale = 1
	pr.LevelShrink = 0.85
	pr.MinSize = 0.5
	pr.ShowLabels = true
	pr.LabelOffset = 1.4
}

// NodeRenderer owns one visual object per graph node: a group carrying
// the node id, with a mesh child shaped per the node's type and an
// optional label child.
type NodeRenderer struct {

	// Scene is the scene visual objects are created in.
	Scene *scene.Scene

	// Colors resolves node colors and state emphasis.
	Colors *style.Colors

	// Params are the node rendering constants.
	Params NodeParams

	visuals  map[string]*scene.Object
	selected string
	hovered  string
}

// NewNodeRenderer returns a node renderer over the given scene and
// color resolver. Both are required.
func NewNodeRenderer(sc *scene.Scene, cs *style.Colors) (*NodeRenderer, error) {
	if sc == nil {
		return nil, fmt.Errorf("render.NewNodeRenderer: scene is required")
	}
	if cs == nil {
		return nil, fmt.Errorf("render.NewNodeRenderer: colors is required")
	}
	nr := &NodeRenderer{
		Scene:   sc,
		Colors:  cs,
		visuals: map[string]*scene.Object{},
	}
	nr.Params.Defaults()
	return nr, nil
}

// SetAll replaces the full working set: visuals for nodes no longer
// present are disposed, existing ones are updated in place, and new
// ones are created. Calling it twice with identical input produces no
// object churn.
func (nr *NodeRenderer) SetAll(nodes []*graph.Node) {
	wanted := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		wanted[n.ID] = true
	}
	for id, obj := range nr.visuals {
		if !wanted[id] {
			nr.Scene.ReleaseObject(obj)
			delete(nr.visuals, id)
		}
	}
	nr.UpdateAll(nodes)
}

// UpdateAll updates or creates visuals for the given nodes without
// removing visuals the list does not mention.
func (nr *NodeRenderer) UpdateAll(nodes []*graph.Node) {
	for _, n := range nodes {
		nr.update(n)
	}
}

// GetVisualByID returns the visual object for a node id, or nil.
func (nr *NodeRenderer) GetVisualByID(id string) *scene.Object {
	return nr.visuals[id]
}

// Selected returns the currently selected node id, empty for none.
func (nr *NodeRenderer) Selected() string {
	return nr.selected
}

// Hovered returns the currently hovered node id, empty for none.
func (nr *NodeRenderer) Hovered() string {
	return nr.hovered
}

// SetSelected marks the given node selected, clearing any previous
// selection. An empty id clears selection entirely.
func (nr *NodeRenderer) SetSelected(id string) {
	if id == nr.selected {
		return
	}
	prev := nr.selected
	nr.selected = id
	nr.restyle(prev)
	nr.restyle(id)
}

// SetHovered marks the given node hovered, clearing any previous
// hover. An empty id clears the hover entirely.
func (nr *NodeRenderer) SetHovered(id string) {
	if id == nr.hovered {
		return
	}
	prev := nr.hovered
	nr.hovered = id
	nr.restyle(prev)
	nr.restyle(id)
}

// HighlightSubset applies emphasis to the given node ids. With
// exclusive set, all other visuals are dimmed; otherwise they keep
// their normal appearance. Passing no ids restores everything.
func (nr *NodeRenderer) HighlightSubset(ids []string, exclusive bool) {
	in := make(map[string]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}
	for id, obj := range nr.visuals {
		mesh := obj.ChildByName("mesh")
		if mesh == nil {
			continue
		}
		switch {
		case in[id]:
			mesh.Material.Emissive = nr.Colors.Scheme.HoveredEmissive
			mesh.Material.Opacity = 1
		case exclusive && len(ids) > 0:
			mesh.Material.Emissive = nr.Colors.StateEmissive(id == nr.selected, id == nr.hovered)
			mesh.Material.Opacity = 0.25
		default:
			mesh.Material.Emissive = nr.Colors.StateEmissive(id == nr.selected, id == nr.hovered)
			mesh.Material.Opacity = 1
		}
		nr.Scene.Updated(obj)
	}
}

// NodeSize returns the rendered size for a node of the given type and
// level: the type's base size shrunk per level with a floor, times the
// global scale.
func (nr *NodeRenderer) NodeSize(typ string, level int) float32 {
	ti := nr.Colors.Registry.NodeType(typ)
	base := ti.Size
	if base <= 0 {
		base = 1
	}
	size := base * math32.Pow(nr.Params.LevelShrink, float32(level))
	return math32.Max(size, nr.Params.MinSize) * nr.Params.GlobalScale
}

// update reconciles a single node against its visual, creating it on
// first sight. A type shape change rebuilds the visual.
func (nr *NodeRenderer) update(n *graph.Node) {
	shape := scene.ShapeFromName(nr.Colors.Registry.NodeType(n.Type).Shape)

	obj := nr.visuals[n.ID]
	if obj != nil {
		if mesh := obj.ChildByName("mesh"); mesh == nil || mesh.Shape != shape {
			nr.Scene.ReleaseObject(obj)
			obj = nil
		}
	}
	if obj == nil {
		obj = nr.Scene.NewObject("node/"+n.ID, scene.GroupShape)
		obj.NodeID = n.ID
		mesh := obj.NewChild("mesh", shape)
		mesh.Material.Defaults()
		if nr.Params.ShowLabels {
			label := obj.NewChild("label", scene.LabelShape)
			label.Material.Defaults()
		}
		nr.visuals[n.ID] = obj
	}

	size := nr.NodeSize(n.Type, n.Level)
	obj.Pose.Pos = n.Position
	obj.Visible = n.Visible

	mesh := obj.ChildByName("mesh")
	mesh.Pose.Scale.SetScalar(size)
	mesh.Material.Color = nr.Colors.NodeColor(n.ID, n.Type)
	mesh.Material.Emissive = nr.Colors.StateEmissive(n.ID == nr.selected, n.ID == nr.hovered)

	if label := obj.ChildByName("label"); label != nil {
		label.Text = n.Name
		if label.Text == "" {
			label.Text = n.ID
		}
		label.Pose.Pos = math32.Vec3(0, size*nr.Params.LabelOffset, 0)
		label.Material.Color = nr.Colors.Scheme.Label
	}
	nr.Scene.Updated(obj)
}

// restyle refreshes the state emphasis of one visual.
func (nr *NodeRenderer) restyle(id string) {
	obj := nr.visuals[id]
	if obj == nil {
		return
	}
	if mesh := obj.ChildByName("mesh"); mesh != nil {
		mesh.Material.Emissive = nr.Colors.StateEmissive(id == nr.selected, id == nr.hovered)
	}
	nr.Scene.Updated(obj)
}
