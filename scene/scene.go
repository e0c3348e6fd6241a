// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"image/color"
)

// Resources counts live geometry and material allocations, making
// disposal completeness testable: after removing a set of objects the
// counts must return to their prior baseline.
type Resources struct {

	// Geometries is the number of live geometry allocations.
	Geometries int

	// Materials is the number of live material allocations.
	Materials int
}

func (rs *Resources) allocGeometry()   { rs.Geometries++ }
func (rs *Resources) releaseGeometry() { rs.Geometries-- }
func (rs *Resources) allocMaterial()   { rs.Materials++ }
func (rs *Resources) releaseMaterial() { rs.Materials-- }

// Scene owns the visual objects and their resource accounting, and
// notifies the Host of object lifecycle so a rendering backend can
// mirror the object set. The renderers are the only mutators of the
// object set; everything else reads.
type Scene struct {

	// Host is the attached rendering host.
	Host Host

	// Background is the background color.
	Background color.RGBA

	// Resources is the live resource accounting.
	Resources Resources

	// objects is the name-keyed set of top-level objects.
	objects map[string]*Object

	// order preserves top-level object insertion order.
	order []string
}

// NewScene returns a new scene attached to the given host.
// A nil host is a hard initialization failure: the engine cannot
// operate partially without a scene to attach primitives to.
func NewScene(host Host) (*Scene, error) {
	if host == nil {
		return nil, fmt.Errorf("scene.NewScene: host is required")
	}
	return &Scene{
		Host:    host,
		objects: map[string]*Object{},
	}, nil
}

// NewObject creates a new top-level object with the given name and
// shape, registers it, and notifies the host. Creating an object with
// an existing name releases the old one first.
func (sc *Scene) NewObject(name string, shape Shapes) *Object {
	if old, has := sc.objects[name]; has {
		sc.ReleaseObject(old)
	}
	obj := sc.newObject(name, shape)
	sc.objects[name] = obj
	sc.order = append(sc.order, name)
	sc.Host.ObjectAdded(obj)
	return obj
}

// newObject allocates an object and its resources without registering
// it at the top level; used for both top-level objects and children.
func (sc *Scene) newObject(name string, shape Shapes) *Object {
	obj := &Object{
		Scene:   sc,
		Name:    name,
		Shape:   shape,
		Visible: true,
	}
	obj.Pose.Defaults()
	obj.Material.Defaults()
	if shape.HasGeometry() {
		sc.Resources.allocGeometry()
	}
	sc.Resources.allocMaterial()
	return obj
}

// Object returns the top-level object with the given name, or nil.
func (sc *Scene) Object(name string) *Object {
	return sc.objects[name]
}

// Objects returns the top-level objects in insertion order.
func (sc *Scene) Objects() []*Object {
	objs := make([]*Object, 0, len(sc.order))
	for _, nm := range sc.order {
		if obj, has := sc.objects[nm]; has {
			objs = append(objs, obj)
		}
	}
	return objs
}

// ReleaseObject disposes the object's resources (children included),
// removes it from the scene, and notifies the host. Resources are
// always released before the reference is dropped.
func (sc *Scene) ReleaseObject(obj *Object) {
	if obj == nil || obj.IsDisposed() {
		return
	}
	obj.dispose()
	if sc.objects[obj.Name] == obj {
		delete(sc.objects, obj.Name)
		for i, nm := range sc.order {
			if nm == obj.Name {
				sc.order = append(sc.order[:i], sc.order[i+1:]...)
				break
			}
		}
	}
	sc.Host.ObjectRemoved(obj)
}

// Updated notifies the host that the given object's pose, material, or
// geometry changed.
func (sc *Scene) Updated(obj *Object) {
	sc.Host.ObjectUpdated(obj)
}
