// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// TypeInfo describes a node type and its visual configuration.
type TypeInfo struct {

	// Type is the type name, e.g. "component", "capability".
	Type string `json:"type" toml:"type"`

	// Label is the human-readable display name.
	Label string `json:"label" toml:"label"`

	// Color is the hex color code for nodes of this type.
	Color string `json:"color,omitempty" toml:"color,omitempty"`

	// Shape is the primitive shape name used by the node renderer
	// ("sphere", "box", "octahedron", "cone", "cylinder").
	// Empty resolves to "sphere".
	Shape string `json:"shape,omitempty" toml:"shape,omitempty"`

	// Size is the base size for nodes of this type, before level
	// shrinking and global scale.
	Size float32 `json:"size,omitempty" toml:"size,omitempty"`

	// AllowedTargets lists the node types this type may author
	// connections to. "*" allows any target type.
	AllowedTargets []string `json:"allowed_targets,omitempty" toml:"allowed_targets,omitempty"`
}

// RelationshipTypeInfo describes a relationship type and its line styling.
type RelationshipTypeInfo struct {

	// Type is the relationship type name, e.g. "contains", "implements".
	Type string `json:"type" toml:"type"`

	// Label is the human-readable display name.
	Label string `json:"label" toml:"label"`

	// Color is the hex color code for links of this type.
	Color string `json:"color,omitempty" toml:"color,omitempty"`

	// Width is the line width for links of this type.
	Width float32 `json:"width,omitempty" toml:"width,omitempty"`

	// Dashed renders the link with a dash pattern instead of solid.
	Dashed bool `json:"dashed,omitempty" toml:"dashed,omitempty"`

	// Curved renders the link as a quadratic curve instead of a
	// straight segment.
	Curved bool `json:"curved,omitempty" toml:"curved,omitempty"`
}

// TypeRegistry resolves node and relationship type names to their
// configuration, falling back to defaults for unknown names.
type TypeRegistry struct {

	// NodeTypes is the id-keyed node type set.
	NodeTypes map[string]*TypeInfo

	// RelTypes is the id-keyed relationship type set.
	RelTypes map[string]*RelationshipTypeInfo
}

// NewTypeRegistry returns a registry populated with [DefaultNodeTypes]
// and [DefaultRelationshipTypes].
func NewTypeRegistry() *TypeRegistry {
	tr := &TypeRegistry{
		NodeTypes: map[string]*TypeInfo{},
		RelTypes:  map[string]*RelationshipTypeInfo{},
	}
	for _, ti := range DefaultNodeTypes() {
		tr.AddNodeType(ti)
	}
	for _, ri := range DefaultRelationshipTypes() {
		tr.AddRelationshipType(ri)
	}
	return tr
}

// AddNodeType registers or overrides a node type.
func (tr *TypeRegistry) AddNodeType(ti *TypeInfo) {
	tr.NodeTypes[ti.Type] = ti
}

// AddRelationshipType registers or overrides a relationship type.
func (tr *TypeRegistry) AddRelationshipType(ri *RelationshipTypeInfo) {
	tr.RelTypes[ri.Type] = ri
}

// NodeType returns the configuration for the given node type name,
// falling back to [UnknownNodeType] for unregistered names.
func (tr *TypeRegistry) NodeType(typ string) *TypeInfo {
	if ti, has := tr.NodeTypes[typ]; has {
		return ti
	}
	return UnknownNodeType
}

// RelationshipType returns the configuration for the given relationship
// type name, falling back to [UnknownRelationshipType].
func (tr *TypeRegistry) RelationshipType(typ string) *RelationshipTypeInfo {
	if ri, has := tr.RelTypes[typ]; has {
		return ri
	}
	return UnknownRelationshipType
}

// CanConnect reports whether a connection authored from a node of type
// src may target a node of type dst, per the source type's adjacency list.
func (tr *TypeRegistry) CanConnect(src, dst string) bool {
	ti := tr.NodeType(src)
	for _, at := range ti.AllowedTargets {
		if at == "*" || at == dst {
			return true
		}
	}
	return false
}

// UnknownNodeType is the fallback style for unregistered node types.
var UnknownNodeType = &TypeInfo{
	Type:  "unknown",
	Label: "Unknown",
	Color: "#95a5a6",
	Shape: "sphere",
	Size:  1,
}

// UnknownRelationshipType is the fallback style for unregistered
// relationship types.
var UnknownRelationshipType = &RelationshipTypeInfo{
	Type:  "unknown",
	Label: "Unknown",
	Color: "#7f8c8d",
	Width: 1,
}

// DefaultNodeTypes returns the standard node type vocabulary:
// a strict containment hierarchy from component groups down to
// application inputs and outputs.
func DefaultNodeTypes() []*TypeInfo {
	return []*TypeInfo{
		{Type: "component_group", Label: "Component Group", Color: "#9b59b6", Shape: "sphere", Size: 3, AllowedTargets: []string{"component"}},
		{Type: "component", Label: "Component", Color: "#3498db", Shape: "sphere", Size: 2.5, AllowedTargets: []string{"subcomponent"}},
		{Type: "subcomponent", Label: "Subcomponent", Color: "#2ecc71", Shape: "sphere", Size: 2, AllowedTargets: []string{"capability"}},
		{Type: "capability", Label: "Capability", Color: "#f1c40f", Shape: "box", Size: 1.8, AllowedTargets: []string{"function"}},
		{Type: "function", Label: "Function", Color: "#e67e22", Shape: "box", Size: 1.5, AllowedTargets: []string{"specification"}},
		{Type: "specification", Label: "Specification", Color: "#e74c3c", Shape: "octahedron", Size: 1.3, AllowedTargets: []string{"integration"}},
		{Type: "integration", Label: "Integration", Color: "#1abc9c", Shape: "octahedron", Size: 1.2, AllowedTargets: []string{"technique"}},
		{Type: "technique", Label: "Technique", Color: "#34495e", Shape: "cone", Size: 1.1, AllowedTargets: []string{"application"}},
		{Type: "application", Label: "Application", Color: "#16a085", Shape: "cone", Size: 1, AllowedTargets: []string{"input", "output"}},
		{Type: "input", Label: "Input", Color: "#27ae60", Shape: "cylinder", Size: 0.8},
		{Type: "output", Label: "Output", Color: "#2980b9", Shape: "cylinder", Size: 0.8},
	}
}

// DefaultRelationshipTypes returns the standard relationship vocabulary.
func DefaultRelationshipTypes() []*RelationshipTypeInfo {
	return []*RelationshipTypeInfo{
		{Type: "contains", Label: "Contains", Color: "#bdc3c7", Width: 1},
		{Type: "implements", Label: "Implements", Color: "#3498db", Width: 1.5, Curved: true},
		{Type: "depends_on", Label: "Depends On", Color: "#e67e22", Width: 1.5, Dashed: true, Curved: true},
		{Type: "relates_to", Label: "Relates To", Color: "#95a5a6", Width: 1, Dashed: true, Curved: true},
	}
}
