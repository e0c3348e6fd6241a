// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/orrery-viz/orrery/math32"
)

// Pose is the spatial transform of an object: position, rotation
// and per-axis scale.
type Pose struct {

	// Pos is the position in the parent's space.
	Pos math32.Vector3

	// Quat is the rotation.
	Quat math32.Quat

	// Scale is the per-axis scale applied to the unit shape.
	Scale math32.Vector3
}

// Defaults sets the default pose: origin, identity rotation, unit scale.
func (ps *Pose) Defaults() {
	ps.Pos.SetZero()
	ps.Quat.SetIdentity()
	ps.Scale.SetScalar(1)
}

// Object is a visual object in the scene: a primitive shape with a
// material and pose, optionally carrying the id of the logical node or
// link it represents. Objects form a shallow tree (a node group owns
// its mesh and label children); hit testing resolves to the nearest
// ancestor carrying a node id.
type Object struct {

	// Scene is the owning scene.
	Scene *Scene

	// Parent is the parent object, nil for top-level objects.
	Parent *Object

	// Children are the child objects.
	Children []*Object

	// Name uniquely identifies the object within the scene.
	Name string

	// NodeID is the logical graph node this object (or subtree)
	// represents. Empty for decorative children and link objects.
	NodeID string

	// LinkID is the logical graph link this object represents.
	LinkID string

	// Shape is the primitive shape.
	Shape Shapes

	// Material is the surface properties.
	Material Material

	// Pose is the spatial transform.
	Pose Pose

	// Points is the polyline geometry for line shapes, in world space.
	Points []math32.Vector3

	// Text is the label text for label shapes.
	Text string

	// Visible is this object's own visibility flag; effective
	// visibility also requires all ancestors visible, see [Object.IsVisible].
	Visible bool

	// disposed guards against double release of resources.
	disposed bool
}

// NewChild creates and returns a new child object with the given name
// and shape, allocating its resources on the owning scene.
func (o *Object) NewChild(name string, shape Shapes) *Object {
	child := o.Scene.newObject(name, shape)
	child.Parent = o
	o.Children = append(o.Children, child)
	return child
}

// ChildByName returns the direct child with the given name, or nil.
func (o *Object) ChildByName(name string) *Object {
	for _, c := range o.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// IsVisible returns the effective visibility: this object and all
// ancestors visible, and not disposed.
func (o *Object) IsVisible() bool {
	if o.disposed || !o.Visible {
		return false
	}
	if o.Parent != nil {
		return o.Parent.IsVisible()
	}
	return true
}

// WorldPos returns the world-space position, accumulating parent
// positions up the chain.
func (o *Object) WorldPos() math32.Vector3 {
	pos := o.Pose.Pos
	for p := o.Parent; p != nil; p = p.Parent {
		pos.SetAdd(p.Pose.Pos)
	}
	return pos
}

// ResolveNodeID walks up from this object to the nearest ancestor
// (including itself) carrying a logical node id; empty if none.
func (o *Object) ResolveNodeID() string {
	for obj := o; obj != nil; obj = obj.Parent {
		if obj.NodeID != "" {
			return obj.NodeID
		}
	}
	return ""
}

// ResolveLinkID walks up from this object to the nearest ancestor
// (including itself) carrying a logical link id; empty if none.
func (o *Object) ResolveLinkID() string {
	for obj := o; obj != nil; obj = obj.Parent {
		if obj.LinkID != "" {
			return obj.LinkID
		}
	}
	return ""
}

// BoundingBox returns the world-space bounding box of this object's
// own geometry (children are not aggregated; see [Object.TotalBoundingBox]).
func (o *Object) BoundingBox() math32.Box3 {
	if o.Shape == LineShape {
		bb := math32.B3Empty()
		for _, p := range o.Points {
			bb.ExpandByPoint(p)
		}
		return bb
	}
	ub := o.Shape.unitBounds()
	if ub.IsEmpty() {
		return ub
	}
	bb := math32.Box3{Min: ub.Min.Mul(o.Pose.Scale), Max: ub.Max.Mul(o.Pose.Scale)}
	return bb.Translate(o.WorldPos())
}

// TotalBoundingBox returns the world-space bounding box of this object
// and all of its children.
func (o *Object) TotalBoundingBox() math32.Box3 {
	bb := o.BoundingBox()
	for _, c := range o.Children {
		cb := c.TotalBoundingBox()
		if !cb.IsEmpty() {
			if bb.IsEmpty() {
				bb = cb
			} else {
				bb = bb.Union(cb)
			}
		}
	}
	return bb
}

// BoundingSphere returns the world-space bounding sphere of this
// object's own geometry.
func (o *Object) BoundingSphere() math32.Sphere {
	return o.BoundingBox().GetBoundingSphere()
}

// IsDisposed returns whether this object's resources have been released.
func (o *Object) IsDisposed() bool {
	return o.disposed
}

// dispose releases this object's geometry and material resources and
// recursively disposes children. Safe to call more than once.
func (o *Object) dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	for _, c := range o.Children {
		c.dispose()
	}
	o.Children = nil
	if o.Shape.HasGeometry() {
		o.Scene.Resources.releaseGeometry()
	}
	o.Scene.Resources.releaseMaterial()
	o.Points = nil
}
