// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "log/slog"

// Listeners registers lists of event listener functions to receive
// different event types. Listeners are closure methods with all
// context captured, registered on specific objects.
type Listeners map[Types][]func(ev *Event)

// Init ensures that the map is constructed.
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Types][]func(*Event))
}

// Add adds a function for the given type.
func (ls *Listeners) Add(typ Types, fun func(ev *Event)) {
	ls.Init()
	(*ls)[typ] = append((*ls)[typ], fun)
}

// Call calls all functions for the given event. It goes in reverse
// order so the last functions added are the first called, and it stops
// when the event is marked as handled. A panicking listener is
// recovered and logged so one failing listener cannot break the
// frame tick.
func (ls *Listeners) Call(ev *Event) {
	if ev.IsHandled() {
		return
	}
	ets := (*ls)[ev.Type]
	for i := len(ets) - 1; i >= 0; i-- {
		callRecover(ets[i], ev)
		if ev.IsHandled() {
			break
		}
	}
}

func callRecover(fun func(ev *Event), ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("events: listener panic", "type", ev.Type, "panic", r)
		}
	}()
	fun(ev)
}
