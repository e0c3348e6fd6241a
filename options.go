// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package orrery

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/orrery-viz/orrery/camera"
	"github.com/orrery-viz/orrery/connect"
	"github.com/orrery-viz/orrery/interact"
	"github.com/orrery-viz/orrery/layout"
	"github.com/orrery-viz/orrery/render"
	"github.com/orrery-viz/orrery/sphere"
)

// Options collects the tunable constants of every engine component.
// The zero value is not usable; start from [NewOptions] or a TOML file.
type Options struct {

	// Dark selects the dark color scheme.
	Dark bool `toml:"dark"`

	// ViewMode is the initial layout mode name: "hierarchical",
	// "radial", "force", or "cluster".
	ViewMode string `toml:"view_mode"`

	// Layout are the layout engine constants.
	Layout layout.Params `toml:"layout"`

	// Nodes are the node rendering constants.
	Nodes render.NodeParams `toml:"nodes"`

	// Links are the link rendering constants.
	Links render.LinkParams `toml:"links"`

	// Camera are the camera controller constants.
	Camera camera.Params `toml:"camera"`

	// Interact are the gesture disambiguation constants.
	Interact interact.Params `toml:"interact"`

	// Connect is the connection-authoring policy.
	Connect connect.Config `toml:"connect"`

	// Spheres are the sphere placement and navigation constants.
	Spheres sphere.Params `toml:"spheres"`
}

// NewOptions returns options with every component at its defaults.
func NewOptions() *Options {
	o := &Options{ViewMode: "hierarchical"}
	o.Layout.Defaults()
	o.Nodes.Defaults()
	o.Links.Defaults()
	o.Camera.Defaults()
	o.Interact.Defaults()
	o.Spheres.Defaults()
	return o
}

// OpenOptions reads options from a TOML file, layered over the
// defaults so partial files work.
func OpenOptions(filename string) (*Options, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("orrery: reading options: %w", err)
	}
	o := NewOptions()
	if err := toml.Unmarshal(b, o); err != nil {
		return nil, fmt.Errorf("orrery: parsing options %q: %w", filename, err)
	}
	return o, nil
}

// Save writes the options to a TOML file.
func (o *Options) Save(filename string) error {
	b, err := toml.Marshal(o)
	if err != nil {
		return fmt.Errorf("orrery: encoding options: %w", err)
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return fmt.Errorf("orrery: writing options: %w", err)
	}
	return nil
}
