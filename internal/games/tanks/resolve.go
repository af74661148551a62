package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// handler resolves one source against the live contacts of one target role.
type handler func(w *World, src *scene.Object, contacts []collision.Contact)

// dispatch is indexed by (source role, target role). Every pair is listed;
// a missing entry is a bug caught by the tests, not a silent no-op.
var dispatch = [roleCount][roleCount]handler{
	RoleNone: {
		RoleNone: ignore, RoleTank: ignore, RoleBullet: ignore, RoleWall: ignore,
		RoleBase: ignore, RolePowerup: ignore, RoleEffect: ignore,
	},
	RoleTank: {
		RoleNone:    ignore,
		RoleTank:    tankBlocked,
		RoleBullet:  tankShot,
		RoleWall:    tankBlocked,
		RoleBase:    tankBlocked,
		RolePowerup: tankPickup,
		RoleEffect:  ignore,
	},
	RoleBullet: {
		RoleNone:    ignore,
		RoleTank:    ignore, // Resolved from the tank's side
		RoleBullet:  bulletVsBullet,
		RoleWall:    bulletVsWall,
		RoleBase:    bulletVsBase,
		RolePowerup: ignore,
		RoleEffect:  ignore,
	},
	RoleWall: {
		RoleNone: ignore, RoleTank: ignore, RoleBullet: ignore, RoleWall: ignore,
		RoleBase: ignore, RolePowerup: ignore, RoleEffect: ignore,
	},
	RoleBase: {
		RoleNone: ignore, RoleTank: ignore, RoleBullet: ignore, RoleWall: ignore,
		RoleBase: ignore, RolePowerup: ignore, RoleEffect: ignore,
	},
	RolePowerup: {
		RoleNone: ignore, RoleTank: ignore, RoleBullet: ignore, RoleWall: ignore,
		RoleBase: ignore, RolePowerup: ignore, RoleEffect: ignore,
	},
	RoleEffect: {
		RoleNone:    ignore,
		RoleTank:    ignore,
		RoleBullet:  ignore,
		RoleWall:    destroyerVsWall,
		RoleBase:    ignore,
		RolePowerup: ignore,
		RoleEffect:  ignore,
	},
}

// targetOrder is the order target groups are resolved in. Bullets go first
// so a bullet cancelled by another bullet never reaches a wall.
var targetOrder = [...]scene.Role{RoleBullet, RoleTank, RoleWall, RoleBase, RolePowerup, RoleEffect, RoleNone}

// resolve runs every collision of the pass through the dispatch table.
// A source removed earlier in the pass is skipped, and so are removed
// targets. Resolution of a source stops once the source itself is removed.
func (w *World) resolve(collisions []collision.Collision) {
	for _, col := range collisions {
		src := col.Owner
		if src == nil || src.IsRemoved() || src.Role >= roleCount {
			continue
		}
		for _, role := range targetOrder {
			if src.IsRemoved() {
				break
			}
			group := liveContacts(col.Contacts, role)
			if len(group) == 0 {
				continue
			}
			dispatch[src.Role][role](w, src, group)
		}
	}
}

func liveContacts(contacts []collision.Contact, role scene.Role) []collision.Contact {
	var out []collision.Contact
	for _, c := range contacts {
		o := c.Owner()
		if o != nil && !o.IsRemoved() && o.Role == role {
			out = append(out, c)
		}
	}
	return out
}

func ignore(*World, *scene.Object, []collision.Contact) {}

// tankBlocked pushes the tank out of anything that blocks movement.
func tankBlocked(w *World, src *scene.Object, contacts []collision.Contact) {
	t := w.tanks[src.Handle()]
	if t == nil {
		return
	}
	for _, c := range contacts {
		o := c.Owner()
		if !o.Tags.Has(scene.TagBlockMove) {
			continue
		}
		t.pushBack(o.WorldBoundingBox())
	}
}

// tankShot applies the bullet rules to a tank: its own bullets pass, a
// shield swallows hostile bullets, friendly fire does nothing, anything else
// costs a hit point.
func tankShot(w *World, src *scene.Object, contacts []collision.Contact) {
	t := w.tanks[src.Handle()]
	if t == nil {
		return
	}
	for _, c := range contacts {
		b := w.bullets[c.Owner().Handle()]
		switch {
		case b == nil || b.spent:
			continue
		case b.shooter == src.Handle():
			continue
		case b.party == t.party:
			continue
		case t.Shielded(w):
			w.nullifyBullet(b)
			continue
		}

		w.nullifyBullet(b)
		if !t.hit() {
			w.outbox.Push(TankHit{Handle: src.Handle(), Party: t.party, Health: t.health})
			continue
		}
		w.killTank(t, DeathByBullet)
		return
	}
}

// tankPickup lets the player collect powerups.
func tankPickup(w *World, src *scene.Object, contacts []collision.Contact) {
	t := w.tanks[src.Handle()]
	if t == nil || t.party != PartyPlayer {
		return
	}
	for _, c := range contacts {
		p := w.powerups[c.Owner().Handle()]
		if p == nil || p.taken {
			continue
		}
		p.taken = true
		p.obj.RemoveSelf()
		w.outbox.Push(PowerupPicked{Type: p.kind, By: src.Handle()})
	}
}

// bulletVsBullet cancels opposing bullets. Neither explodes.
func bulletVsBullet(w *World, src *scene.Object, contacts []collision.Contact) {
	b := w.bullets[src.Handle()]
	if b == nil || b.spent {
		return
	}
	for _, c := range contacts {
		other := w.bullets[c.Owner().Handle()]
		if other == nil || other.spent || other.party == b.party {
			continue
		}
		w.nullifyBullet(other)
		w.nullifyBullet(b)
		return
	}
}

// bulletVsWall stops the bullet on the wall piece closest to where it came
// from, leaves a destroyer over the hit area and explodes the bullet.
func bulletVsWall(w *World, src *scene.Object, contacts []collision.Contact) {
	b := w.bullets[src.Handle()]
	if b == nil || b.spent {
		return
	}
	var walls []collision.Contact
	for _, c := range contacts {
		if c.Owner().Tags.Has(scene.TagWall) {
			walls = append(walls, c)
		}
	}
	closest := collision.ClosestTo(b.collider.PrevBox(), walls)
	if len(closest) == 0 {
		return
	}

	wall := closest[0].Owner().WorldBoundingBox()
	b.alignTo(wall)
	w.spawnDestroyer(destroyerBox(b.obj.WorldBoundingBox(), wall, b.obj.Rotation, b.damage), b.damage)
	w.explodeBullet(b)
}

// bulletVsBase destroys the base.
func bulletVsBase(w *World, src *scene.Object, _ []collision.Contact) {
	b := w.bullets[src.Handle()]
	if b == nil || b.spent || w.base == nil {
		return
	}
	if w.base.destroy() {
		w.outbox.Push(BaseDestroyed{})
	}
	w.explodeBullet(b)
}

// destroyerVsWall crumbles bricks, and steel when the bullet bit hard
// enough. Borders and water never break.
func destroyerVsWall(w *World, src *scene.Object, contacts []collision.Contact) {
	e := w.effects[src.Handle()]
	if e == nil || e.kind != EffectDestroyer {
		return
	}
	for _, c := range contacts {
		o := c.Owner()
		switch {
		case o.Tags.Has(scene.TagBrick):
			o.RemoveSelf()
		case o.Tags.Has(scene.TagSteel) && e.damage >= WallDamageHigh:
			o.RemoveSelf()
		}
	}
	src.RemoveSelf()
}
