// Package scene implements the object tree every game entity lives in.
//
// Objects are owned by a Tree arena and addressed by generation-checked
// handles. Child lists store handles, never pointers, so a handle kept by a
// component after its object died resolves to nil instead of a recycled
// object. Removing an object detaches it at once but its slot is only freed
// by Reclaim, which the world calls after the collision resolution pass.
package scene

import (
	"fmt"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Handle is a stable reference to an object slot in a Tree.
// The zero Handle never refers to a live object.
type Handle struct {
	Index uint32
	Gen   uint32
}

// IsZero returns true for the null handle.
func (h Handle) IsZero() bool {
	return h.Gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.Index, h.Gen)
}

type slot struct {
	obj *Object
	gen uint32
}

// Tree is an arena of objects.
type Tree struct {
	slots   []slot
	free    []uint32
	pending []Handle
	live    int

	// OnDetach runs once for every object of a removed subtree, at the moment
	// the subtree leaves the tree. Used to unregister colliders.
	OnDetach func(*Object)
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// New allocates a detached object. Attach it with Add on a parent.
func (t *Tree) New(pos core.Vector, dims core.Dimensions) *Object {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.slots = append(t.slots, slot{})
		idx = uint32(len(t.slots) - 1)
	}

	s := &t.slots[idx]
	s.gen++
	obj := &Object{
		tree:       t,
		handle:     Handle{Index: idx, Gen: s.gen},
		Position:   pos,
		Dimensions: dims,
	}
	s.obj = obj
	t.live++
	return obj
}

// Get resolves a handle. It returns nil for the zero handle and for handles
// whose slot has been reclaimed.
func (t *Tree) Get(h Handle) *Object {
	if h.IsZero() || int(h.Index) >= len(t.slots) {
		return nil
	}
	s := t.slots[h.Index]
	if s.gen != h.Gen {
		return nil
	}
	return s.obj
}

// Len returns the number of allocated objects, including removed objects
// that are still waiting for Reclaim.
func (t *Tree) Len() int {
	return t.live
}

// Pending returns the number of removed objects waiting for Reclaim.
func (t *Tree) Pending() int {
	return len(t.pending)
}

// Reclaim frees the slots of every object removed since the last call and
// returns how many were freed. Handles to them resolve to nil afterwards.
func (t *Tree) Reclaim() int {
	n := 0
	for _, h := range t.pending {
		s := &t.slots[h.Index]
		if s.gen != h.Gen {
			continue
		}
		s.obj.tree = nil
		s.obj = nil
		// Bump so stale handles never match a recycled slot.
		s.gen++
		t.free = append(t.free, h.Index)
		t.live--
		n++
	}
	t.pending = t.pending[:0]
	return n
}

// markRemoved flags a whole subtree for reclamation and fires OnDetach.
func (t *Tree) markRemoved(root *Object) {
	root.Traverse(func(o *Object) bool {
		if o.removed {
			return false
		}
		o.removed = true
		t.pending = append(t.pending, o.handle)
		if t.OnDetach != nil {
			t.OnDetach(o)
		}
		return true
	})
}
