// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
)

// force runs a bounded force-directed simulation: pairwise
// inverse-square repulsion, Hooke's-law spring attraction along links,
// uniform centering gravity, and velocity damping. The whole loop runs
// to completion within this call; it stops when the largest per-node
// movement of an iteration drops below Epsilon, or after MaxIterations,
// whichever comes first.
func (le *Engine) force(g *graph.Graph) map[string]math32.Vector3 {
	ids := g.NodeOrder
	n := len(ids)
	targets := make(map[string]math32.Vector3, n)
	if n == 0 {
		return targets
	}

	pos := make([]math32.Vector3, n)
	vel := make([]math32.Vector3, n)
	index := make(map[string]int, n)
	for i, id := range ids {
		pos[i] = g.Node(id).Position
		index[id] = i
	}

	// resolve link endpoints once; dangling links exert no force
	type spring struct{ a, b int }
	var springs []spring
	for _, id := range g.LinkOrder {
		l := g.Link(id)
		ai, aok := index[l.Source]
		bi, bok := index[l.Target]
		if aok && bok && ai != bi {
			springs = append(springs, spring{ai, bi})
		}
	}

	pr := &le.Params
	for iter := 0; iter < pr.MaxIterations; iter++ {
		force := make([]math32.Vector3, n)

		// pairwise repulsion, inverse square
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				diff := pos[i].Sub(pos[j])
				d2 := diff.LengthSquared()
				if d2 < 1e-4 {
					// coincident nodes: push apart along a fixed axis
					diff = math32.Vec3(0.01*float32(i-j), 0.01, 0)
					d2 = diff.LengthSquared()
				}
				f := diff.MulScalar(pr.Charge / (d2 * math32.Sqrt(d2)))
				force[i].SetAdd(f)
				force[j].SetSub(f)
			}
		}

		// spring attraction toward rest length
		for _, sp := range springs {
			diff := pos[sp.b].Sub(pos[sp.a])
			d := diff.Length()
			if d < 1e-4 {
				continue
			}
			f := diff.MulScalar(pr.SpringStrength * (d - pr.SpringLength) / d)
			force[sp.a].SetAdd(f)
			force[sp.b].SetSub(f)
		}

		// centering gravity
		for i := 0; i < n; i++ {
			force[i].SetSub(pos[i].MulScalar(pr.Gravity))
		}

		maxMove := float32(0)
		for i := 0; i < n; i++ {
			vel[i] = vel[i].Add(force[i]).MulScalar(pr.Friction)
			pos[i].SetAdd(vel[i])
			maxMove = math32.Max(maxMove, vel[i].Length())
		}
		if maxMove < pr.Epsilon {
			break
		}
	}

	for i, id := range ids {
		targets[id] = pos[i]
	}
	return targets
}
