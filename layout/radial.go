// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
)

// radial groups nodes by level and places each level on a circle of
// radius level * LevelSeparation, spreading the nodes of a level
// evenly across AngleSpread starting at StartAngle.
func (le *Engine) radial(g *graph.Graph) map[string]math32.Vector3 {
	targets := make(map[string]math32.Vector3, len(g.Nodes))

	levels := map[int][]string{}
	maxLevel := 0
	for _, id := range g.NodeOrder {
		lv := g.Node(id).Level
		levels[lv] = append(levels[lv], id)
		maxLevel = max(maxLevel, lv)
	}

	for lv := 0; lv <= maxLevel; lv++ {
		ids := levels[lv]
		if len(ids) == 0 {
			continue
		}
		r := float32(lv) * le.Params.LevelSeparation
		for i, id := range ids {
			angle := le.Params.StartAngle + float32(i)/float32(len(ids))*le.Params.AngleSpread
			targets[id] = math32.Vec3(r*math32.Cos(angle), r*math32.Sin(angle), 0)
		}
	}
	return targets
}
