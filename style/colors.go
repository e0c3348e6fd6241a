// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import (
	"image/color"
	"log/slog"

	"github.com/orrery-viz/orrery/graph"
)

// Colors resolves colors and line styles for nodes and links.
// It owns the single precedence function per lookup:
// explicit override > registered type color > scheme default.
// State emphasis (selected, hovered) is expressed as an emissive
// boost on top of the base color, never a replacement, so the base
// hue stays recognizable.
type Colors struct {

	// Registry is the type registry colors are resolved against.
	Registry *graph.TypeRegistry

	// Scheme is the active color scheme, switched by [Colors.SetDark].
	Scheme *Scheme

	// NodeOverrides maps node ids to explicit color overrides.
	NodeOverrides map[string]color.RGBA

	dark bool
}

// NewColors returns a new color resolver over the given type registry,
// starting on the light scheme.
func NewColors(reg *graph.TypeRegistry) *Colors {
	return &Colors{
		Registry:      reg,
		Scheme:        &SchemeLight,
		NodeOverrides: map[string]color.RGBA{},
	}
}

// SetDark switches between the dark and light schemes.
func (cs *Colors) SetDark(dark bool) {
	cs.dark = dark
	if dark {
		cs.Scheme = &SchemeDark
	} else {
		cs.Scheme = &SchemeLight
	}
}

// IsDark returns whether the dark scheme is active.
func (cs *Colors) IsDark() bool {
	return cs.dark
}

// NodeColor returns the base color for a node of the given id and type.
// Precedence: per-node override > registered type color > scheme default.
func (cs *Colors) NodeColor(id, typ string) color.RGBA {
	if c, has := cs.NodeOverrides[id]; has {
		return c
	}
	ti := cs.Registry.NodeType(typ)
	if ti.Color != "" {
		c, err := FromHex(ti.Color)
		if err == nil {
			return c
		}
		slog.Warn("style: invalid type color", "type", typ, "color", ti.Color)
	}
	return cs.Scheme.NodeDefault
}

// StateEmissive returns the emissive boost for the given node state.
// Selected wins over hovered; the zero color means no boost.
func (cs *Colors) StateEmissive(selected, hovered bool) color.RGBA {
	switch {
	case selected:
		return cs.Scheme.SelectedEmissive
	case hovered:
		return cs.Scheme.HoveredEmissive
	default:
		return color.RGBA{}
	}
}

// LinkColor returns the color for a link of the given type.
func (cs *Colors) LinkColor(typ string) color.RGBA {
	ri := cs.Registry.RelationshipType(typ)
	if ri.Color != "" {
		c, err := FromHex(ri.Color)
		if err == nil {
			return c
		}
		slog.Warn("style: invalid relationship color", "type", typ, "color", ri.Color)
	}
	return cs.Scheme.LinkDefault
}

// LinkWidth returns the line width for a link of the given type.
func (cs *Colors) LinkWidth(typ string) float32 {
	ri := cs.Registry.RelationshipType(typ)
	if ri.Width > 0 {
		return ri.Width
	}
	return 1
}

// LinkDashed returns whether links of the given type render dashed.
func (cs *Colors) LinkDashed(typ string) bool {
	return cs.Registry.RelationshipType(typ).Dashed
}

// LinkCurved returns whether links of the given type render as curves.
func (cs *Colors) LinkCurved(typ string) bool {
	return cs.Registry.RelationshipType(typ).Curved
}
