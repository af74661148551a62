package collision

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// SweptBoxCollider tracks the owner's box at the end of the previous tick
// and at the current one. Its query volume is their union, so an object that
// moves further than its own size in one tick still overlaps anything it
// passed through.
type SweptBoxCollider struct {
	owner   *scene.Object
	prev    core.BoundingBox
	current core.BoundingBox
	active  bool
}

// NewSweptBoxCollider creates an active swept collider and attaches it to
// owner. Both boxes start at the owner's current world box.
func NewSweptBoxCollider(owner *scene.Object) *SweptBoxCollider {
	c := &SweptBoxCollider{owner: owner, active: true}
	owner.Collider = c
	c.Init()
	return c
}

func (c *SweptBoxCollider) Owner() *scene.Object { return c.owner }
func (c *SweptBoxCollider) IsActive() bool        { return c.active }

// SetActive controls whether the collider is offered as a source.
func (c *SweptBoxCollider) SetActive(active bool) {
	c.active = active
}

// PrevBox returns the box at the end of the previous tick.
func (c *SweptBoxCollider) PrevBox() core.BoundingBox {
	return c.prev
}

// CurrentBox returns the box computed this tick.
func (c *SweptBoxCollider) CurrentBox() core.BoundingBox {
	return c.current
}

// Box returns the swept volume: the union of the previous and current box.
func (c *SweptBoxCollider) Box() core.BoundingBox {
	return c.prev.Union(c.current)
}

// Direction returns the displacement between the two box centers.
func (c *SweptBoxCollider) Direction() core.Vector {
	return c.current.Center().Sub(c.prev.Center())
}

// Init seeds both boxes to the live box, giving a zero sweep on the first
// tick.
func (c *SweptBoxCollider) Init() {
	c.current = c.owner.WorldBoundingBox()
	c.prev = c.current
}

// Update must run once per tick after the owner's position is final.
func (c *SweptBoxCollider) Update() {
	c.prev = c.current
	c.current = c.owner.WorldBoundingBox()
}

// Refresh re-reads the current box after the owner moved during
// resolution. The previous box is kept, so the sweep still starts where the
// owner was at the end of the last tick.
func (c *SweptBoxCollider) Refresh() {
	c.current = c.owner.WorldBoundingBox()
}

// Reset collapses the sweep onto the live box. Use after teleporting the
// owner, or after a resolution moved it back, so the next tick does not sweep
// through the correction.
func (c *SweptBoxCollider) Reset() {
	c.Init()
}
