// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "slices"

// Graph is the working set of nodes and links, keyed by id with
// stable insertion order. It also tracks the collapsed state of
// subtrees, which derives effective visibility without mutating
// the data-level Visible flags.
type Graph struct {

	// NodeOrder is the stable ordering of node ids, as loaded.
	NodeOrder []string

	// Nodes is the id-keyed node set.
	Nodes map[string]*Node

	// LinkOrder is the stable ordering of link ids, as loaded.
	LinkOrder []string

	// Links is the id-keyed link set.
	Links map[string]*Link

	// Collapsed holds ids of nodes whose descendant subtrees are hidden.
	Collapsed map[string]bool

	// children caches child ids per parent id, rebuilt on SetNodes.
	children map[string][]string
}

// New returns a new empty Graph.
func New() *Graph {
	return &Graph{
		Nodes:     map[string]*Node{},
		Links:     map[string]*Link{},
		Collapsed: map[string]bool{},
		children:  map[string][]string{},
	}
}

// SetNodes replaces the node working set, preserving the given order,
// rebuilding the child index, and deriving levels for nodes that did
// not provide one. Collapsed state for ids that no longer exist is dropped.
func (g *Graph) SetNodes(nodes []*Node) {
	g.NodeOrder = g.NodeOrder[:0]
	g.Nodes = make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		if _, has := g.Nodes[n.ID]; has {
			continue
		}
		// HasPosition is not serialized; a non-zero loaded position
		// counts as provided so the layout does not re-seed it
		if !n.HasPosition && !n.Position.IsNil() {
			n.HasPosition = true
		}
		g.NodeOrder = append(g.NodeOrder, n.ID)
		g.Nodes[n.ID] = n
	}
	g.rebuildChildren()
	g.UpdateLevels()
	for id := range g.Collapsed {
		if _, has := g.Nodes[id]; !has {
			delete(g.Collapsed, id)
		}
	}
}

// SetLinks replaces the link working set, preserving the given order.
func (g *Graph) SetLinks(links []*Link) {
	g.LinkOrder = g.LinkOrder[:0]
	g.Links = make(map[string]*Link, len(links))
	for _, l := range links {
		if _, has := g.Links[l.ID]; has {
			continue
		}
		g.LinkOrder = append(g.LinkOrder, l.ID)
		g.Links[l.ID] = l
	}
}

// AddLink appends a single link to the working set.
func (g *Graph) AddLink(l *Link) {
	if _, has := g.Links[l.ID]; has {
		return
	}
	g.LinkOrder = append(g.LinkOrder, l.ID)
	g.Links[l.ID] = l
}

// DeleteLink removes a link by id.
func (g *Graph) DeleteLink(id string) {
	if _, has := g.Links[id]; !has {
		return
	}
	delete(g.Links, id)
	if i := slices.Index(g.LinkOrder, id); i >= 0 {
		g.LinkOrder = slices.Delete(g.LinkOrder, i, i+1)
	}
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	return g.Nodes[id]
}

// Link returns the link with the given id, or nil.
func (g *Graph) Link(id string) *Link {
	return g.Links[id]
}

// NodeList returns the nodes in stable order.
func (g *Graph) NodeList() []*Node {
	nl := make([]*Node, 0, len(g.NodeOrder))
	for _, id := range g.NodeOrder {
		nl = append(nl, g.Nodes[id])
	}
	return nl
}

// LinkList returns the links in stable order.
func (g *Graph) LinkList() []*Link {
	ll := make([]*Link, 0, len(g.LinkOrder))
	for _, id := range g.LinkOrder {
		ll = append(ll, g.Links[id])
	}
	return ll
}

// Children returns the child ids of the given node, in load order.
func (g *Graph) Children(id string) []string {
	return g.children[id]
}

// Roots returns the ids of all nodes without a (present) parent.
func (g *Graph) Roots() []string {
	var roots []string
	for _, id := range g.NodeOrder {
		n := g.Nodes[id]
		if n.Parent == "" || g.Nodes[n.Parent] == nil {
			roots = append(roots, id)
		}
	}
	return roots
}

func (g *Graph) rebuildChildren() {
	g.children = make(map[string][]string, len(g.Nodes))
	for _, id := range g.NodeOrder {
		n := g.Nodes[id]
		if n.Parent == "" {
			continue
		}
		if _, has := g.Nodes[n.Parent]; !has {
			continue
		}
		g.children[n.Parent] = append(g.children[n.Parent], id)
	}
}

// UpdateLevels derives tree depth for every node reachable from a root.
// Provided levels are overwritten so that depth is always consistent
// with the Parent tree. Nodes in parent cycles keep their loaded level.
func (g *Graph) UpdateLevels() {
	for _, rid := range g.Roots() {
		g.setLevels(rid, 0, map[string]bool{})
	}
}

func (g *Graph) setLevels(id string, level int, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true
	g.Nodes[id].Level = level
	for _, cid := range g.children[id] {
		g.setLevels(cid, level+1, visited)
	}
}

// Collapse hides the descendant subtree of the given node.
// The node itself stays visible.
func (g *Graph) Collapse(id string) {
	if _, has := g.Nodes[id]; !has {
		return
	}
	g.Collapsed[id] = true
}

// Expand reveals the direct subtree of the given node again.
// Descendants that are themselves collapsed stay collapsed.
func (g *Graph) Expand(id string) {
	delete(g.Collapsed, id)
}

// IsNodeVisible returns the effective visibility of a node:
// its own Visible flag, and no collapsed ancestor.
func (g *Graph) IsNodeVisible(id string) bool {
	n := g.Nodes[id]
	if n == nil || !n.Visible {
		return false
	}
	seen := map[string]bool{id: true}
	for p := n.Parent; p != ""; {
		if g.Collapsed[p] {
			return false
		}
		pn := g.Nodes[p]
		if pn == nil || seen[p] {
			break
		}
		seen[p] = true
		p = pn.Parent
	}
	return true
}

// IsLinkVisible returns the effective visibility of a link: its own
// Visible flag and both endpoints present and visible. Dangling links
// are invisible, never an error.
func (g *Graph) IsLinkVisible(id string) bool {
	l := g.Links[id]
	if l == nil || !l.Visible {
		return false
	}
	return g.IsNodeVisible(l.Source) && g.IsNodeVisible(l.Target)
}
