// Package collision finds overlapping objects once per tick.
//
// Colliders are registered with a System; the Detector tests every active
// participant against every participant and returns one Collision per
// source. Resolution is left to the caller.
package collision

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// BoxCollider uses the owner's world bounding box as its volume.
// Suitable for walls and anything else that moves less than its own extent
// in a tick.
type BoxCollider struct {
	owner  *scene.Object
	box    core.BoundingBox
	active bool
}

// NewBoxCollider creates an active collider and attaches it to owner.
func NewBoxCollider(owner *scene.Object) *BoxCollider {
	c := &BoxCollider{owner: owner, active: true}
	owner.Collider = c
	c.box = owner.WorldBoundingBox()
	return c
}

func (c *BoxCollider) Owner() *scene.Object { return c.owner }
func (c *BoxCollider) Box() core.BoundingBox { return c.box }
func (c *BoxCollider) IsActive() bool        { return c.active }

// SetActive controls whether the collider is offered as a source.
func (c *BoxCollider) SetActive(active bool) {
	c.active = active
}

// Init snapshots the owner's current world box.
func (c *BoxCollider) Init() {
	c.box = c.owner.WorldBoundingBox()
}

// Update recomputes the box from the owner's final position this tick.
func (c *BoxCollider) Update() {
	c.box = c.owner.WorldBoundingBox()
}
