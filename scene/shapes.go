// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the visual-object model the renderers build on:
// objects with a primitive shape, material, and pose, owned by a Scene
// that accounts for geometry and material resources and attaches
// primitives to an abstract Host. Rendering backends are outside the
// engine; the Host only sees lifecycle notifications.
package scene

import "github.com/orrery-viz/orrery/math32"

// Shapes enumerates the primitive shapes an object can take.
type Shapes int32

const (
	// SphereShape is a unit sphere, the default node shape.
	SphereShape Shapes = iota

	// BoxShape is a unit cube.
	BoxShape

	// OctahedronShape is a unit octahedron.
	OctahedronShape

	// ConeShape is a unit cone pointing along +Y.
	ConeShape

	// CylinderShape is a unit cylinder along Y.
	CylinderShape

	// LineShape is a polyline through the object's Points.
	LineShape

	// ArrowShape is a small cone marker oriented along the object's
	// quaternion, used for link direction markers.
	ArrowShape

	// LabelShape is a billboard text label, always facing the camera.
	LabelShape

	// GroupShape is an empty grouping object with no geometry of its own.
	GroupShape
)

var shapeNames = map[string]Shapes{
	"sphere":     SphereShape,
	"box":        BoxShape,
	"octahedron": OctahedronShape,
	"cone":       ConeShape,
	"cylinder":   CylinderShape,
}

// ShapeFromName resolves a shape name from a node type table to a
// primitive shape. Unknown names resolve to a sphere.
func ShapeFromName(name string) Shapes {
	if sh, has := shapeNames[name]; has {
		return sh
	}
	return SphereShape
}

func (sh Shapes) String() string {
	switch sh {
	case SphereShape:
		return "sphere"
	case BoxShape:
		return "box"
	case OctahedronShape:
		return "octahedron"
	case ConeShape:
		return "cone"
	case CylinderShape:
		return "cylinder"
	case LineShape:
		return "line"
	case ArrowShape:
		return "arrow"
	case LabelShape:
		return "label"
	case GroupShape:
		return "group"
	}
	return "unknown"
}

// HasGeometry returns whether the shape allocates geometry resources.
func (sh Shapes) HasGeometry() bool {
	return sh != GroupShape
}

// unitBounds returns the local-space bounding box of the unit shape.
func (sh Shapes) unitBounds() math32.Box3 {
	switch sh {
	case GroupShape:
		return math32.B3Empty()
	case LabelShape:
		// labels are screen-facing decorations; give them a thin slab
		return math32.B3(-0.5, -0.25, -0.05, 0.5, 0.25, 0.05)
	default:
		return math32.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)
	}
}
