// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Host is the abstract rendering backend the scene attaches to.
// It mirrors the object set into whatever rendering system the
// application embeds the engine in, and reports the viewport size
// for camera math. Hosts must not mutate objects.
type Host interface {

	// ObjectAdded is called when an object enters the scene.
	ObjectAdded(obj *Object)

	// ObjectRemoved is called after an object's resources have been
	// released and it has left the scene.
	ObjectRemoved(obj *Object)

	// ObjectUpdated is called when an object's pose, material, or
	// geometry changed.
	ObjectUpdated(obj *Object)

	// ViewportSize returns the viewport size in pixels.
	ViewportSize() (width, height int)
}

// NopHost is a Host that renders nothing, counting lifecycle calls.
// It is the host used in tests and in headless operation.
type NopHost struct {

	// Added, Removed, Updated count the lifecycle notifications.
	Added, Removed, Updated int

	// Width and Height are the reported viewport size.
	Width, Height int
}

// NewNopHost returns a NopHost with a standard 1280x800 viewport.
func NewNopHost() *NopHost {
	return &NopHost{Width: 1280, Height: 800}
}

func (nh *NopHost) ObjectAdded(obj *Object)   { nh.Added++ }
func (nh *NopHost) ObjectRemoved(obj *Object) { nh.Removed++ }
func (nh *NopHost) ObjectUpdated(obj *Object) { nh.Updated++ }

func (nh *NopHost) ViewportSize() (int, int) {
	return nh.Width, nh.Height
}
