package collision

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// IntersectObjects tests every active source against every target and
// returns one Collision per source that overlaps anything. Inactive
// colliders are still valid targets. Self pairs are skipped. Collisions
// follow source order and contacts follow target order.
func IntersectObjects(sources, targets []scene.Collider) []Collision {
	var collisions []Collision
	for _, src := range sources {
		if !src.IsActive() {
			continue
		}
		box := src.Box()

		var contacts []Contact
		for _, tgt := range targets {
			if tgt == src {
				continue
			}
			tbox := tgt.Box()
			if box.Intersects(tbox) {
				contacts = append(contacts, Contact{Collider: tgt, Box: tbox})
			}
		}

		if len(contacts) > 0 {
			collisions = append(collisions, Collision{
				Source:   src,
				Owner:    src.Owner(),
				Contacts: contacts,
			})
		}
	}
	return collisions
}

// Detector runs the broad phase over a System's participants.
type Detector struct {
	system *System
	logger *log.Logger
	passes int
}

// NewDetector creates a detector over system. A nil logger discards output.
func NewDetector(system *System, logger *log.Logger) *Detector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Detector{system: system, logger: logger}
}

// System returns the participant set.
func (d *Detector) System() *System {
	return d.system
}

// Detect runs one pass. When order is non-nil it is used as both the source
// and target list, which lets the caller impose the tick's traversal order;
// otherwise participants are tested in registration order.
func (d *Detector) Detect(order []scene.Collider) []Collision {
	if order == nil {
		order = d.system.Participants()
	}
	collisions := IntersectObjects(order, order)
	d.passes++

	if d.logger.GetLevel() <= log.DebugLevel {
		contacts := 0
		for _, c := range collisions {
			contacts += len(c.Contacts)
		}
		d.logger.Debug("broad phase",
			"pass", d.passes,
			"participants", len(order),
			"collisions", len(collisions),
			"contacts", contacts,
		)
	}
	return collisions
}
