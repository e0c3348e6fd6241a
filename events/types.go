// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the semantic event stream produced by the
// visualization engine, the listener registry for subscribing to it,
// and the Bus interface for publishing it outward.
package events

// Types enumerates the semantic event types the engine emits.
// Raw pointer/touch/keyboard input never escapes the interaction
// manager; consumers only ever see these.
type Types int32

const (
	// UnknownType is the zero value, never emitted.
	UnknownType Types = iota

	// NodeClick is a press/release pair on a node within the click
	// time and movement thresholds.
	NodeClick

	// NodeDoubleClick is a second click on the same node within the
	// double-click delay. It cancels the pending NodeClick.
	NodeDoubleClick

	// NodeContextMenu is a right click or long press on a node.
	NodeContextMenu

	// NodeHover is emitted when the hovered node changes; the id is
	// empty when the pointer leaves all nodes.
	NodeHover

	// NodeSelect is emitted when the selected node changes; the id is
	// empty on deselection.
	NodeSelect

	// NodeDrag is a continuous drag with a node under the initial press.
	NodeDrag

	// Drag is a continuous drag on empty space.
	Drag

	// PointerMove is the continuous pointer position stream while no
	// button is down; NodeID carries the currently hovered node, empty
	// over free space. Unlike NodeHover it fires on every move.
	PointerMove

	// Zoom is a scroll-wheel or pinch zoom; Scale carries the factor.
	Zoom

	// Pan is a two-finger or modified-drag pan; Delta carries the
	// screen-space movement.
	Pan

	// Rotate is a two-finger rotation; Scale carries the angle delta
	// in radians.
	Rotate

	// LayoutCalculated is emitted after a layout pass computes new
	// target positions.
	LayoutCalculated

	// CameraMoved is emitted when the camera pose changes, whether by
	// user input or by an animated transition.
	CameraMoved

	// ConnectionStarted is emitted when connection authoring begins
	// from a source node.
	ConnectionStarted

	// ConnectionCreated is emitted when an authored connection is
	// persisted.
	ConnectionCreated

	// ConnectionInvalid is emitted when a connection attempt targets
	// a node the adjacency table rejects, or the source itself.
	ConnectionInvalid

	// ConnectionCancelled is emitted when connection authoring is
	// torn down without creating a connection.
	ConnectionCancelled

	// SphereActivated is emitted when a sphere becomes the active
	// navigation target.
	SphereActivated

	// CrossConnectionsToggled is emitted when cross-sphere connection
	// visibility changes; Data carries the new bool.
	CrossConnectionsToggled
)

var typeNames = map[Types]string{
	UnknownType:         "unknown",
	NodeClick:           "nodeClick",
	NodeDoubleClick:     "nodeDoubleClick",
	NodeContextMenu:     "nodeContextMenu",
	NodeHover:           "nodeHover",
	NodeSelect:          "nodeSelect",
	NodeDrag:            "nodeDrag",
	Drag:                "drag",
	PointerMove:         "pointerMove",
	Zoom:                "zoom",
	Pan:                 "pan",
	Rotate:              "rotate",
	LayoutCalculated:    "layoutCalculated",
	CameraMoved:         "cameraMoved",
	ConnectionStarted:   "connectionStarted",
	ConnectionCreated:   "connectionCreated",
	ConnectionInvalid:   "connectionInvalid",
	ConnectionCancelled: "connectionCancelled",
	SphereActivated:     "sphereActivated",

	CrossConnectionsToggled: "crossConnectionsToggled",
}

func (t Types) String() string {
	if nm, has := typeNames[t]; has {
		return nm
	}
	return "unknown"
}

// TypeFromName resolves a wire name back to its event type;
// unrecognized names resolve to UnknownType.
func TypeFromName(name string) Types {
	for t, nm := range typeNames {
		if nm == name {
			return t
		}
	}
	return UnknownType
}

// MarshalJSON emits the wire name so external subscribers see
// "nodeClick" rather than an enum ordinal.
func (t Types) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON resolves a wire name.
func (t *Types) UnmarshalJSON(data []byte) error {
	nm := string(data)
	if len(nm) >= 2 && nm[0] == '"' {
		nm = nm[1 : len(nm)-1]
	}
	*t = TypeFromName(nm)
	return nil
}
