package scene

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Collider is the collision volume attached to an object.
// Implementations live in the collision package.
type Collider interface {
	Owner() *Object
	Box() core.BoundingBox
	IsActive() bool
	Init()
	Update()
}

// Role selects which component set the game attaches to an object.
// The scene package never interprets it.
type Role uint8

// Object is a node of the tree plus the spatial state of an entity.
//
// Position is local: relative to the parent. Rotation only changes the
// object's own footprint, never the frame its children are expressed in.
type Object struct {
	tree     *Tree
	handle   Handle
	parent   Handle
	children []Handle
	removed  bool

	Position   core.Vector
	Rotation   core.Rotation
	Dimensions core.Dimensions
	Tags       Tags
	Collider   Collider
	Role       Role
	Visual     any
}

// Handle returns the object's stable handle.
func (o *Object) Handle() Handle {
	return o.handle
}

// Tree returns the arena the object belongs to, or nil once reclaimed.
func (o *Object) Tree() *Tree {
	return o.tree
}

// Parent returns the parent object or nil for a detached object.
func (o *Object) Parent() *Object {
	if o.tree == nil {
		return nil
	}
	return o.tree.Get(o.parent)
}

// IsRemoved returns true once the object has been removed from the tree.
func (o *Object) IsRemoved() bool {
	return o.removed
}

// Children returns the live children in order. The slice is a copy.
func (o *Object) Children() []*Object {
	if o.tree == nil {
		return nil
	}
	out := make([]*Object, 0, len(o.children))
	for _, h := range o.children {
		if c := o.child(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// child resolves a child handle, ignoring anything no longer attached here.
func (o *Object) child(h Handle) *Object {
	c := o.tree.Get(h)
	if c == nil || c.parent != o.handle {
		return nil
	}
	return c
}

// Add attaches children in order. It panics on a structural violation:
// adding the object to itself, adding one of its ancestors, adding an object
// that already has a parent or belongs to another tree, or reviving a
// removed object.
func (o *Object) Add(children ...*Object) {
	for _, c := range children {
		o.assertAdoptable(c)
		c.parent = o.handle
		// Full slice expression: append always copies, so a traversal holding
		// the old slice keeps a consistent snapshot.
		o.children = append(o.children[:len(o.children):len(o.children)], c.handle)
	}
}

func (o *Object) assertAdoptable(c *Object) {
	switch {
	case c == nil:
		panic("scene: add of nil object")
	case c == o:
		panic("scene: object added to itself")
	case c.tree != o.tree:
		panic("scene: object belongs to another tree")
	case c.removed || o.removed:
		panic("scene: add involving a removed object")
	case !c.parent.IsZero():
		panic("scene: object already has a parent")
	}
	o.TraverseAncestors(func(a *Object) bool {
		if a == c {
			panic("scene: adding an ancestor would create a cycle")
		}
		return true
	})
}

// Remove detaches child from o and marks its subtree for reclamation.
// Removing an object that is not a child of o is a no-op.
func (o *Object) Remove(child *Object) {
	if child == nil || child.parent != o.handle || child.tree != o.tree {
		return
	}
	o.detach(child)
	o.tree.markRemoved(child)
}

// RemoveSelf removes the object from its parent. A root object is only
// marked for reclamation.
func (o *Object) RemoveSelf() {
	if o.tree == nil || o.removed {
		return
	}
	if p := o.Parent(); p != nil {
		p.Remove(o)
		return
	}
	o.tree.markRemoved(o)
}

// ReplaceSelf puts other in this object's slot of the parent's child list
// and removes this object. Other must be detached.
func (o *Object) ReplaceSelf(other *Object) {
	p := o.Parent()
	if p == nil {
		panic("scene: replace of an object without parent")
	}
	p.assertAdoptable(other)

	next := make([]Handle, len(p.children))
	copy(next, p.children)
	for i, h := range next {
		if h == o.handle {
			next[i] = other.handle
		}
	}
	p.children = next
	other.parent = p.handle
	o.parent = Handle{}
	o.tree.markRemoved(o)
}

func (o *Object) detach(child *Object) {
	next := make([]Handle, 0, len(o.children))
	for _, h := range o.children {
		if h != child.handle {
			next = append(next, h)
		}
	}
	o.children = next
	child.parent = Handle{}
}

// Traverse visits o and its subtree in pre-order. Returning false from the
// visitor skips the visited object's children. Children are iterated from a
// snapshot of the child list; anything detached mid-walk is skipped.
func (o *Object) Traverse(visit func(*Object) bool) {
	if !visit(o) {
		return
	}
	o.TraverseDescendants(visit)
}

// TraverseDescendants is Traverse without o itself.
func (o *Object) TraverseDescendants(visit func(*Object) bool) {
	if o.tree == nil {
		return
	}
	snapshot := o.children
	for _, h := range snapshot {
		if c := o.child(h); c != nil {
			c.Traverse(visit)
		}
	}
}

// TraverseAncestors walks from the parent toward the root. Returning false
// stops the walk. It panics if the chain is longer than the arena, which
// means the tree contains a cycle.
func (o *Object) TraverseAncestors(visit func(*Object) bool) {
	if o.tree == nil {
		return
	}
	limit := len(o.tree.slots)
	steps := 0
	for p := o.Parent(); p != nil; p = p.Parent() {
		steps++
		if steps > limit {
			panic("scene: ancestor chain longer than arena, tree has a cycle")
		}
		if !visit(p) {
			return
		}
	}
}

// Root returns the topmost ancestor, or o itself when detached.
func (o *Object) Root() *Object {
	root := o
	o.TraverseAncestors(func(a *Object) bool {
		root = a
		return true
	})
	return root
}

// WorldPosition returns the local position plus every ancestor's local
// position.
func (o *Object) WorldPosition() core.Vector {
	pos := o.Position
	o.TraverseAncestors(func(a *Object) bool {
		pos = pos.Add(a.Position)
		return true
	})
	return pos
}

// SetWorldPosition stores the local position that yields v in world space.
func (o *Object) SetWorldPosition(v core.Vector) {
	o.TraverseAncestors(func(a *Object) bool {
		v = v.Sub(a.Position)
		return true
	})
	o.Position = v
}

// Translate moves the object by v in local space.
func (o *Object) Translate(v core.Vector) {
	o.Position = o.Position.Add(v)
}

// Rotate sets the facing.
func (o *Object) Rotate(r core.Rotation) {
	o.Rotation = r
}

// ComputedDimensions returns the footprint as rotated.
func (o *Object) ComputedDimensions() core.Dimensions {
	return o.Dimensions.Rotated(o.Rotation)
}

// BoundingBox returns the footprint in local space.
func (o *Object) BoundingBox() core.BoundingBox {
	return core.BoxAt(o.Position, o.ComputedDimensions())
}

// WorldBoundingBox returns the footprint in world space.
func (o *Object) WorldBoundingBox() core.BoundingBox {
	return core.BoxAt(o.WorldPosition(), o.ComputedDimensions())
}

// Center returns the local center.
func (o *Object) Center() core.Vector {
	return o.BoundingBox().Center()
}

// WorldCenter returns the center in world space.
func (o *Object) WorldCenter() core.Vector {
	return o.WorldBoundingBox().Center()
}

// SetCenter moves the object so its local center is v.
func (o *Object) SetCenter(v core.Vector) {
	d := o.ComputedDimensions()
	o.Position = core.Vec(v.X-d.Width/2, v.Y-d.Height/2)
}

// SetCenterFrom centers the object on other's local center.
func (o *Object) SetCenterFrom(other *Object) {
	o.SetCenter(other.Center())
}

// SetWorldCenter moves the object so its world center is v.
func (o *Object) SetWorldCenter(v core.Vector) {
	d := o.ComputedDimensions()
	o.SetWorldPosition(core.Vec(v.X-d.Width/2, v.Y-d.Height/2))
}

// ChildrenWithTag returns every object in the subtree, o included, that
// carries all the given tags.
func (o *Object) ChildrenWithTag(tags Tags) []*Object {
	var out []*Object
	o.Traverse(func(n *Object) bool {
		if n.Tags.Has(tags) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// HasChildrenWithTag returns true if any object in the subtree carries the
// given tags.
func (o *Object) HasChildrenWithTag(tags Tags) bool {
	found := false
	o.Traverse(func(n *Object) bool {
		if found {
			return false
		}
		if n.Tags.Has(tags) {
			found = true
			return false
		}
		return true
	})
	return found
}
