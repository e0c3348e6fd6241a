// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
)

// cluster groups nodes by type. Cluster centers are arranged on a
// circle for up to 6 clusters and on a grid beyond that; members are
// placed on a small circle for up to 10 nodes and on a grid beyond.
func (le *Engine) cluster(g *graph.Graph) map[string]math32.Vector3 {
	targets := make(map[string]math32.Vector3, len(g.Nodes))

	// group by type, preserving first-appearance order
	var keys []string
	groups := map[string][]string{}
	for _, id := range g.NodeOrder {
		typ := g.Node(id).Type
		if _, has := groups[typ]; !has {
			keys = append(keys, typ)
		}
		groups[typ] = append(groups[typ], id)
	}

	centers := arrange(len(keys), le.Params.ClusterRadius, 6)
	for ki, key := range keys {
		members := groups[key]
		offsets := arrange(len(members), le.Params.MemberRadius, 10)
		for mi, id := range members {
			targets[id] = centers[ki].Add(offsets[mi])
		}
	}
	return targets
}

// arrange returns n positions on the Z=0 plane: a single circle of the
// given radius while n <= circleMax, a centered grid beyond that.
func arrange(n int, radius float32, circleMax int) []math32.Vector3 {
	ps := make([]math32.Vector3, n)
	if n == 0 {
		return ps
	}
	if n == 1 {
		return ps // single item sits at the center
	}
	if n <= circleMax {
		for i := range ps {
			angle := float32(i) / float32(n) * 2 * math32.Pi
			ps[i] = math32.Vec3(radius*math32.Cos(angle), radius*math32.Sin(angle), 0)
		}
		return ps
	}
	cols := int(math32.Ceil(math32.Sqrt(float32(n))))
	rows := (n + cols - 1) / cols
	step := radius
	x0 := -float32(cols-1) * step / 2
	y0 := -float32(rows-1) * step / 2
	for i := range ps {
		ps[i] = math32.Vec3(x0+float32(i%cols)*step, y0+float32(i/cols)*step, 0)
	}
	return ps
}
