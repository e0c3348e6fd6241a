// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package style

import "image/color"

// Scheme holds the engine-level colors that are not type-specific.
type Scheme struct {

	// Background is the scene background color.
	Background color.RGBA

	// NodeDefault is the color for nodes whose type has no color.
	NodeDefault color.RGBA

	// LinkDefault is the color for links whose type has no color.
	LinkDefault color.RGBA

	// SelectedEmissive is the emissive boost applied to selected nodes.
	SelectedEmissive color.RGBA

	// HoveredEmissive is the emissive boost applied to hovered nodes.
	HoveredEmissive color.RGBA

	// ConnectionValid is the temporary-line color over a valid
	// connection target.
	ConnectionValid color.RGBA

	// ConnectionInvalid is the temporary-line color over an invalid
	// connection target.
	ConnectionInvalid color.RGBA

	// Label is the label billboard text color.
	Label color.RGBA
}

// SchemeLight is the light color scheme.
var SchemeLight = Scheme{
	Background:        FromRGB(245, 246, 250),
	NodeDefault:       MustHex("#95a5a6"),
	LinkDefault:       MustHex("#7f8c8d"),
	SelectedEmissive:  MustHex("#ffd54f"),
	HoveredEmissive:   MustHex("#90caf9"),
	ConnectionValid:   MustHex("#2ecc71"),
	ConnectionInvalid: MustHex("#e74c3c"),
	Label:             FromRGB(33, 33, 33),
}

// SchemeDark is the dark color scheme.
var SchemeDark = Scheme{
	Background:        FromRGB(18, 20, 24),
	NodeDefault:       MustHex("#7f8c8d"),
	LinkDefault:       MustHex("#566573"),
	SelectedEmissive:  MustHex("#ffb300"),
	HoveredEmissive:   MustHex("#64b5f6"),
	ConnectionValid:   MustHex("#27ae60"),
	ConnectionInvalid: MustHex("#c0392b"),
	Label:             FromRGB(235, 235, 235),
}
