// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Bus publishes engine events to an external subscriber, e.g. a
// websocket bridge. The engine always holds a non-nil Bus; absence of
// a real channel is expressed with [NopBus], so internal behavior
// never depends on whether anyone is listening.
type Bus interface {

	// Publish delivers the event to the external channel.
	// Implementations must not call back into the engine.
	Publish(ev *Event)
}

// NopBus is a Bus that discards all events.
type NopBus struct{}

func (NopBus) Publish(ev *Event) {}

// BusFunc adapts a function to the Bus interface.
type BusFunc func(ev *Event)

func (f BusFunc) Publish(ev *Event) {
	f(ev)
}
