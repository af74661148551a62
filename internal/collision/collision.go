package collision

import (
	"math"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// Contact is one target overlapping a source's query volume.
type Contact struct {
	Collider scene.Collider
	// Box is the target volume used for the overlap test: the swept union for
	// swept colliders, the plain world box otherwise.
	Box core.BoundingBox
}

// Owner returns the object the contacted collider belongs to.
func (c Contact) Owner() *scene.Object {
	return c.Collider.Owner()
}

// Collision aggregates every contact found for one source this tick.
type Collision struct {
	Source   scene.Collider
	Owner    *scene.Object
	Contacts []Contact
}

// Filter returns the contacts whose owner carries all the given tags.
func (c Collision) Filter(tags scene.Tags) []Contact {
	var out []Contact
	for _, ct := range c.Contacts {
		if ct.Owner().Tags.Has(tags) {
			out = append(out, ct)
		}
	}
	return out
}

// Has returns true if any contact's owner carries all the given tags.
func (c Collision) Has(tags scene.Tags) bool {
	for _, ct := range c.Contacts {
		if ct.Owner().Tags.Has(tags) {
			return true
		}
	}
	return false
}

// ClosestTo returns the contacts whose box center is nearest to box's center.
// Ties are all kept, in contact order.
func ClosestTo(box core.BoundingBox, contacts []Contact) []Contact {
	best := math.Inf(1)
	var out []Contact
	for _, ct := range contacts {
		d := box.DistanceCenterToCenter(ct.Box)
		switch {
		case d < best:
			best = d
			out = append(out[:0], ct)
		case d == best:
			out = append(out, ct)
		}
	}
	return out
}
