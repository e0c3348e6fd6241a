// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "image/color"

// Material describes the surface properties of an object. The main
// color is the base surface color; Emissive is an additive glow used
// for selection and hover emphasis so the base hue stays visible.
type Material struct {

	// Color is the main surface color.
	Color color.RGBA

	// Emissive is the color the surface emits independent of lighting.
	// The zero value means no emission.
	Emissive color.RGBA

	// Opacity is the overall opacity in [0, 1], multiplied into the
	// color alpha at render time. Used by fade transitions.
	Opacity float32

	// Width is the line width for line shapes.
	Width float32

	// Dashed renders line shapes with a dash pattern.
	Dashed bool
}

// Defaults sets default material parameters: opaque mid gray.
func (mt *Material) Defaults() {
	mt.Color = color.RGBA{128, 128, 128, 255}
	mt.Emissive = color.RGBA{}
	mt.Opacity = 1
	mt.Width = 1
	mt.Dashed = false
}

// IsTransparent returns whether the material needs transparent rendering.
func (mt *Material) IsTransparent() bool {
	return mt.Opacity < 1 || mt.Color.A < 255
}
