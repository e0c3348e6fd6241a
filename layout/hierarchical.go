// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
)

// hierarchical computes tree positions by recursive subtree widths:
// a leaf occupies one NodeWidth slot, an internal node the sum of its
// children plus inter-sibling spacing. Positions are assigned top-down
// from accumulated offsets, so sibling subtrees never overlap.
func (le *Engine) hierarchical(g *graph.Graph) map[string]math32.Vector3 {
	targets := make(map[string]math32.Vector3, len(g.Nodes))
	roots := g.Roots()
	if len(roots) == 0 {
		return targets
	}

	widths := make(map[string]float32, len(g.Nodes))
	var width func(id string) float32
	width = func(id string) float32 {
		kids := g.Children(id)
		if len(kids) == 0 {
			widths[id] = le.Params.NodeWidth
			return widths[id]
		}
		w := float32(0)
		for i, cid := range kids {
			if i > 0 {
				w += le.Params.SiblingSpacing
			}
			w += width(cid)
		}
		widths[id] = w
		return w
	}

	total := float32(0)
	for i, rid := range roots {
		if i > 0 {
			total += le.Params.SiblingSpacing
		}
		total += width(rid)
	}

	place := le.hierarchicalPlacer(total)
	var walk func(id string, level int, x0 float32)
	walk = func(id string, level int, x0 float32) {
		w := widths[id]
		targets[id] = place(x0+w/2, level)
		cx := x0
		for _, cid := range g.Children(id) {
			walk(cid, level+1, cx)
			cx += widths[cid] + le.Params.SiblingSpacing
		}
	}

	x0 := -total / 2
	for _, rid := range roots {
		walk(rid, 0, x0)
		x0 += widths[rid] + le.Params.SiblingSpacing
	}
	return targets
}

// hierarchicalPlacer maps a subtree center offset and level to a world
// position per the configured direction. For the radial direction the
// offset is interpreted as an angle fraction of the total width.
func (le *Engine) hierarchicalPlacer(total float32) func(center float32, level int) math32.Vector3 {
	sep := le.Params.LevelSeparation
	switch le.Params.Direction {
	case "vertical":
		return func(center float32, level int) math32.Vector3 {
			return math32.Vec3(float32(level)*sep, center, 0)
		}
	case "radial":
		return func(center float32, level int) math32.Vector3 {
			if level == 0 {
				return math32.Vector3{}
			}
			angle := le.Params.StartAngle
			if total > 0 {
				angle += (center/total + 0.5) * le.Params.AngleSpread
			}
			r := float32(level) * sep
			return math32.Vec3(r*math32.Cos(angle), r*math32.Sin(angle), 0)
		}
	default: // horizontal
		return func(center float32, level int) math32.Vector3 {
			return math32.Vec3(center, -float32(level)*sep, 0)
		}
	}
}
