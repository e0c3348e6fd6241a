// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph defines the data model for the visualization engine:
// typed nodes forming a tree, typed links between them, and the
// type registry governing styling and connection validity.
// The data provider owns node and link lifecycle; the engine only
// derives visual state from it.
package graph

import "github.com/orrery-viz/orrery/math32"

// Node is an entity in the graph. Nodes form a tree through the
// optional Parent id. The Level is the depth in that tree and may be
// provided by the data source or derived by [Graph.UpdateLevels].
type Node struct {

	// ID uniquely identifies the node across the graph.
	ID string `json:"id" toml:"id"`

	// Type is the node type name, resolved against a [TypeRegistry]
	// for styling and connection rules. Unknown types fall back to
	// default styling; they are never an error.
	Type string `json:"type" toml:"type"`

	// Name is the human-readable display label. Renderers fall back
	// to the ID when empty.
	Name string `json:"name,omitempty" toml:"name,omitempty"`

	// Description is optional display metadata carried for detail views.
	Description string `json:"description,omitempty" toml:"description,omitempty"`

	// Parent is the id of the parent node, empty for roots.
	Parent string `json:"parent,omitempty" toml:"parent,omitempty"`

	// Level is the depth of the node in the tree (root = 0).
	Level int `json:"level,omitempty" toml:"level,omitempty"`

	// Position is the current target position in world space.
	// The layout engine is the only mutator after load.
	Position math32.Vector3 `json:"position,omitzero" toml:"position,omitempty"`

	// HasPosition indicates that Position was provided by the data
	// source or computed by a layout pass. Nodes without a position
	// are seeded by the layout engine so nothing lands at the origin.
	// The flag is not serialized; [Graph.SetNodes] derives it for
	// nodes loaded with a non-zero Position.
	HasPosition bool `json:"-" toml:"-"`

	// Visible is the data-level visibility flag. Effective visibility
	// also accounts for collapsed ancestors; see [Graph.IsNodeVisible].
	Visible bool `json:"visible" toml:"visible"`
}

// Link is a directed relationship between two nodes. A link whose
// endpoints are missing from the graph is rendered invisible rather
// than treated as an error.
type Link struct {

	// ID uniquely identifies the link.
	ID string `json:"id" toml:"id"`

	// Source and Target are node ids. They may dangle.
	Source string `json:"source" toml:"source"`
	Target string `json:"target" toml:"target"`

	// Type is the relationship type name, controlling line style.
	Type string `json:"type" toml:"type"`

	// Visible is the data-level visibility flag.
	Visible bool `json:"visible" toml:"visible"`
}
