// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/orrery-viz/orrery/math32"

// Easing maps normalized time t in [0, 1] to an interpolation amount.
type Easing func(t float32) float32

// EaseLinear is constant-rate interpolation.
func EaseLinear(t float32) float32 {
	return t
}

// EaseOutCubic decelerates toward the end.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutCubic accelerates then decelerates, the default for
// position transitions.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Tween is a timed interpolation between two positions with an easing
// curve, advanced once per frame tick.
type Tween struct {

	// Start and End are the interpolation endpoints.
	Start math32.Vector3
	End   math32.Vector3

	// Duration is the total duration in seconds.
	Duration float32

	// Ease is the easing curve; nil means [EaseInOutCubic].
	Ease Easing

	// Elapsed is the accumulated time in seconds.
	Elapsed float32

	done bool
}

// NewTween returns a tween from start to end over the given duration.
func NewTween(start, end math32.Vector3, duration float32) *Tween {
	return &Tween{Start: start, End: end, Duration: duration}
}

// Update advances the tween by dt seconds and returns the current
// position. Done becomes true once the end is reached; a zero or
// negative duration completes immediately.
func (tw *Tween) Update(dt float32) math32.Vector3 {
	if tw.done {
		return tw.End
	}
	tw.Elapsed += dt
	if tw.Duration <= 0 || tw.Elapsed >= tw.Duration {
		tw.done = true
		return tw.End
	}
	t := tw.Elapsed / tw.Duration
	ease := tw.Ease
	if ease == nil {
		ease = EaseInOutCubic
	}
	return tw.Start.Lerp(tw.End, ease(t))
}

// Done returns whether the tween has reached its end.
func (tw *Tween) Done() bool {
	return tw.done
}

// Cancel marks the tween as done at its current state.
func (tw *Tween) Cancel() {
	tw.done = true
}
