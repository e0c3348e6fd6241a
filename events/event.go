// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"time"

	"github.com/orrery-viz/orrery/math32"
)

// Event is a semantic event emitted by the engine. Fields are
// populated per type; unused fields are zero.
type Event struct {

	// Type is the semantic event type.
	Type Types `json:"type"`

	// NodeID is the logical node the event resolves to, if any.
	NodeID string `json:"nodeId,omitempty"`

	// LinkID is the logical link the event resolves to, if any.
	LinkID string `json:"linkId,omitempty"`

	// SphereID is the sphere context for sphere events.
	SphereID string `json:"sphereId,omitempty"`

	// Pos is the screen-space pointer position.
	Pos math32.Vector2 `json:"pos,omitzero"`

	// Delta is the screen-space movement since the previous event
	// in a drag or pan sequence.
	Delta math32.Vector2 `json:"delta,omitzero"`

	// WorldPos is the world-space position for events that carry one.
	WorldPos math32.Vector3 `json:"worldPos,omitzero"`

	// Scale carries the zoom factor for Zoom and the angle delta in
	// radians for Rotate.
	Scale float32 `json:"scale,omitempty"`

	// Time is when the event occurred.
	Time time.Time `json:"time"`

	// Data carries event-specific payload, e.g. the connection record
	// for ConnectionCreated.
	Data any `json:"data,omitempty"`

	// handled stops propagation to remaining listeners.
	handled bool
}

// New returns a new event of the given type, stamped with the current time.
func New(typ Types) *Event {
	return &Event{Type: typ, Time: time.Now()}
}

// NewNode returns a new node-scoped event of the given type.
func NewNode(typ Types, nodeID string) *Event {
	ev := New(typ)
	ev.NodeID = nodeID
	return ev
}

// SetHandled marks the event as handled, stopping propagation to any
// remaining listeners.
func (ev *Event) SetHandled() {
	ev.handled = true
}

// IsHandled returns whether the event was marked handled.
func (ev *Event) IsHandled() bool {
	return ev.handled
}

func (ev *Event) String() string {
	return fmt.Sprintf("%v{Node: %q, Pos: %v}", ev.Type, ev.NodeID, ev.Pos)
}
