// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout computes target 3D positions for graph nodes under a
// selected layout mode and drives the animated transitions toward them.
// Calculation is synchronous; transitions advance once per external
// frame tick until every per-node tween completes or a new calculation
// supersedes them.
package layout

import (
	"hash/fnv"
	"log/slog"

	"github.com/orrery-viz/orrery/graph"
	"github.com/orrery-viz/orrery/math32"
)

// Modes enumerates the layout algorithms.
type Modes int32

const (
	// Hierarchical lays the tree out by recursive subtree widths.
	Hierarchical Modes = iota

	// Radial places each tree level on a circle around the root.
	Radial

	// Force runs a bounded force-directed simulation.
	Force

	// Cluster groups nodes by type around cluster centers.
	Cluster
)

var modeNames = map[string]Modes{
	"hierarchical": Hierarchical,
	"radial":       Radial,
	"force":        Force,
	"cluster":      Cluster,
}

// ModeFromName resolves a layout mode name. Unknown names log a warning
// and fall back to Hierarchical.
func ModeFromName(name string) Modes {
	if m, has := modeNames[name]; has {
		return m
	}
	slog.Warn("layout: unknown mode, falling back to hierarchical", "mode", name)
	return Hierarchical
}

func (m Modes) String() string {
	switch m {
	case Hierarchical:
		return "hierarchical"
	case Radial:
		return "radial"
	case Force:
		return "force"
	case Cluster:
		return "cluster"
	}
	return "unknown"
}

// States enumerates the engine states. Calculating is synchronous and
// only observable from within a CalculateLayout call; externally the
// engine is either Idle or Transitioning.
type States int32

const (
	// Idle means no layout activity.
	Idle States = iota

	// Calculating means target positions are being computed.
	Calculating

	// Transitioning means per-node tweens are advancing toward targets.
	Transitioning
)

// Params holds the layout constants for all modes.
type Params struct {

	// LevelSeparation is the world-space distance between tree levels,
	// and the per-level circle radius step in radial mode.
	LevelSeparation float32 `toml:"level_separation"`

	// SiblingSpacing is the world-space gap between adjacent sibling
	// subtrees in hierarchical mode.
	SiblingSpacing float32 `toml:"sibling_spacing"`

	// NodeWidth is the world-space width of a leaf subtree slot.
	NodeWidth float32 `toml:"node_width"`

	// Direction is the hierarchical placement axis:
	// "horizontal", "vertical", or "radial".
	Direction string `toml:"direction"`

	// AngleSpread is the total angle in radians the nodes of one level
	// occupy in radial mode.
	AngleSpread float32 `toml:"angle_spread"`

	// StartAngle is the radial mode starting angle in radians.
	StartAngle float32 `toml:"start_angle"`

	// Charge scales the pairwise inverse-square repulsion force.
	Charge float32 `toml:"charge"`

	// SpringLength is the link rest length for the spring force.
	SpringLength float32 `toml:"spring_length"`

	// SpringStrength is the Hooke's-law spring constant.
	SpringStrength float32 `toml:"spring_strength"`

	// Gravity is the uniform centering force strength.
	Gravity float32 `toml:"gravity"`

	// Friction is the per-iteration velocity damping factor in (0, 1).
	Friction float32 `toml:"friction"`

	// MaxIterations bounds the force simulation. The simulation also
	// stops early once the largest per-iteration movement drops
	// below Epsilon.
	MaxIterations int `toml:"max_iterations"`

	// Epsilon is the convergence and skip threshold: force iteration
	// stops when max movement is below it, and position tweens whose
	// total delta is below it are skipped.
	Epsilon float32 `toml:"epsilon"`

	// ClusterRadius is the circle radius for arranging cluster centers.
	ClusterRadius float32 `toml:"cluster_radius"`

	// MemberRadius is the within-cluster circle radius.
	MemberRadius float32 `toml:"member_radius"`

	// TransitionDuration is the position transition duration in seconds.
	TransitionDuration float32 `toml:"transition_duration"`
}

// Defaults sets the default layout constants.
func (pr *Params) Defaults() {
	pr.LevelSeparation = 12
	pr.SiblingSpacing = 3
	pr.NodeWidth = 4
	pr.Direction = "horizontal"
	pr.AngleSpread = 2 * math32.Pi
	pr.StartAngle = 0
	pr.Charge = 120
	pr.SpringLength = 8
	pr.SpringStrength = 0.08
	pr.Gravity = 0.02
	pr.Friction = 0.85
	pr.MaxIterations = 300
	pr.Epsilon = 0.01
	pr.ClusterRadius = 30
	pr.MemberRadius = 8
	pr.TransitionDuration = 0.8
}

// Engine computes layouts and owns the position tweens.
type Engine struct {

	// Params are the layout constants.
	Params Params

	// Mode is the current layout mode.
	Mode Modes

	state  States
	tweens map[string]*Tween
}

// NewEngine returns a layout engine with default params, in
// hierarchical mode.
func NewEngine() *Engine {
	le := &Engine{tweens: map[string]*Tween{}}
	le.Params.Defaults()
	return le
}

// State returns the current engine state.
func (le *Engine) State() States {
	if len(le.tweens) > 0 {
		return Transitioning
	}
	return le.state
}

// CalculateLayout computes target positions for all nodes of the graph
// under the given mode, synchronously, and starts position tweens from
// each node's current position. Any tweens still in flight from a
// previous calculation are cancelled first. Nodes without a position
// are seeded deterministically away from the origin before targets
// are computed. The computed target map is returned.
func (le *Engine) CalculateLayout(g *graph.Graph, mode Modes) map[string]math32.Vector3 {
	le.Mode = mode
	le.state = Calculating

	// superseding calculation cancels all active tweens immediately
	for id, tw := range le.tweens {
		tw.Cancel()
		delete(le.tweens, id)
	}

	le.seedMissing(g)

	var targets map[string]math32.Vector3
	switch mode {
	case Radial:
		targets = le.radial(g)
	case Force:
		targets = le.force(g)
	case Cluster:
		targets = le.cluster(g)
	default:
		targets = le.hierarchical(g)
	}

	for id, end := range targets {
		n := g.Node(id)
		if n == nil {
			continue
		}
		if n.Position.DistanceTo(end) < le.Params.Epsilon {
			n.Position = end
			continue
		}
		le.tweens[id] = NewTween(n.Position, end, le.Params.TransitionDuration)
	}
	if len(le.tweens) > 0 {
		le.state = Transitioning
	} else {
		le.state = Idle
	}
	return targets
}

// Tick advances all position tweens by dt seconds, writing current
// positions back to the nodes. It returns true when any tween was
// advanced this call, including the call that finishes the last one,
// so callers never miss the frame that wrote the final positions.
func (le *Engine) Tick(dt float32, g *graph.Graph) bool {
	active := len(le.tweens) != 0
	for id, tw := range le.tweens {
		pos := tw.Update(dt)
		if n := g.Node(id); n != nil {
			n.Position = pos
			n.HasPosition = true
		}
		if tw.Done() {
			delete(le.tweens, id)
		}
	}
	if len(le.tweens) == 0 {
		le.state = Idle
	}
	return active
}

// seedMissing assigns a deterministic level-biased pseudo-random
// position to every node that has none, so nothing renders at the
// origin on first load.
func (le *Engine) seedMissing(g *graph.Graph) {
	for _, n := range g.NodeList() {
		if n.HasPosition {
			continue
		}
		n.Position = le.seedPosition(n.ID, n.Level)
		n.HasPosition = true
	}
}

// seedPosition hashes the node id into spherical coordinates at a
// radius proportional to the node's level.
func (le *Engine) seedPosition(id string, level int) math32.Vector3 {
	h := fnv.New64a()
	h.Write([]byte(id))
	s := h.Sum64()
	u := float32(s&0xffff) / 0xffff
	v := float32((s>>16)&0xffff) / 0xffff
	w := float32((s>>32)&0xffff) / 0xffff

	radius := (float32(level) + 0.5) * le.Params.LevelSeparation * 0.5
	theta := u * 2 * math32.Pi
	phi := math32.Acos(2*v - 1)
	r := radius * (0.75 + 0.5*w)
	return math32.Vec3(
		r*math32.Sin(phi)*math32.Cos(theta),
		r*math32.Sin(phi)*math32.Sin(theta),
		r*math32.Cos(phi),
	)
}
