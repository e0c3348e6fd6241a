// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package style resolves node and link visual styling: color schemes,
// the per-type color tables, and the state precedence rules
// (selected > hovered > base type color). There is exactly one
// precedence function per lookup; collaborating components never
// chain their own fallbacks.
package style

import (
	"fmt"
	"image/color"
	"strconv"
)

// FromHex parses a hex color string such as "#3498db" or "3498db",
// with an optional alpha pair ("#3498dbff"). Invalid strings return
// an error and transparent black.
func FromHex(hex string) (color.RGBA, error) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b, a uint64
	a = 255
	var err error
	switch len(hex) {
	case 8:
		a, err = strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("style.FromHex: invalid hex color %q", hex)
		}
		fallthrough
	case 6:
		r, err = strconv.ParseUint(hex[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(hex[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(hex[4:6], 16, 8)
		}
		if err != nil {
			return color.RGBA{}, fmt.Errorf("style.FromHex: invalid hex color %q", hex)
		}
	default:
		return color.RGBA{}, fmt.Errorf("style.FromHex: invalid hex color %q", hex)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
}

// MustHex is [FromHex] for known-good literals; invalid input panics.
func MustHex(hex string) color.RGBA {
	c, err := FromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// FromRGB returns an opaque color from the given components.
func FromRGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// WithAlpha returns the color with the alpha component replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}

// Blend returns the linear interpolation between two colors,
// where t = 0 is a and t = 1 is b.
func Blend(a, b color.RGBA, t float32) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return color.RGBA{
		lerp(a.R, b.R),
		lerp(a.G, b.G),
		lerp(a.B, b.B),
		lerp(a.A, b.A),
	}
}
