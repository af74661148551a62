package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// Bullet is the component of a bullet object. Bullets outrun the bricks they
// hit, so they carry a swept collider.
type Bullet struct {
	obj      *scene.Object
	collider *collision.SweptBoxCollider

	shooter scene.Handle
	party   Party
	speed   float64
	damage  WallDamage
	spent   bool // Already delivered its hit
}

func newBullet(obj *scene.Object, shooter *Tank) *Bullet {
	b := &Bullet{
		obj:     obj,
		shooter: shooter.obj.Handle(),
		party:   shooter.party,
		speed:   shooter.stats.BulletSpeed,
		damage:  shooter.wallDamage(),
	}
	obj.Role = RoleBullet
	obj.Tags = scene.TagBullet | shooter.party.Tag()
	obj.Rotate(shooter.obj.Rotation)
	obj.Visual = &Sprite{Glyph: '•', Color: core.ColorBrightWhite, Layer: layerBullet}
	b.collider = collision.NewSweptBoxCollider(obj)
	return b
}

// Object returns the bullet's scene object.
func (b *Bullet) Object() *scene.Object { return b.obj }

// Party returns the side that fired the bullet.
func (b *Bullet) Party() Party { return b.party }

// Shooter returns the handle of the tank that fired the bullet.
func (b *Bullet) Shooter() scene.Handle { return b.shooter }

func (b *Bullet) update(_ *World) {
	b.obj.Translate(b.obj.Rotation.Vector().Scale(b.speed))
}

// alignTo repositions the bullet along its movement axis against the wall
// box it hit. Moving up, the bullet's bottom edge lands on the wall's bottom
// edge; the other facings mirror that. The perpendicular axis is kept.
func (b *Bullet) alignTo(wall core.BoundingBox) {
	b.obj.SetWorldPosition(alignedMin(b.obj.WorldBoundingBox(), wall, b.obj.Rotation))
}

// alignedMin returns the new min corner of box after aligning it to wall
// along facing r.
func alignedMin(box, wall core.BoundingBox, r core.Rotation) core.Vector {
	pos := box.Min
	switch r {
	case core.Up:
		pos.Y = wall.Max.Y - box.Height()
	case core.Down:
		pos.Y = wall.Min.Y
	case core.Left:
		pos.X = wall.Max.X - box.Width()
	case core.Right:
		pos.X = wall.Min.X
	}
	return pos
}
