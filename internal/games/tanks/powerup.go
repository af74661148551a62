package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// PowerupType is the bonus a powerup grants.
type PowerupType uint8

const (
	PowerupWipeout PowerupType = iota // Destroys every enemy on the field
	PowerupFreeze
	PowerupShield
	PowerupUpgrade
	PowerupLife

	powerupTypeCount
)

func (p PowerupType) String() string {
	switch p {
	case PowerupWipeout:
		return "wipeout"
	case PowerupFreeze:
		return "freeze"
	case PowerupShield:
		return "shield"
	case PowerupUpgrade:
		return "upgrade"
	case PowerupLife:
		return "life"
	default:
		return "unknown"
	}
}

func (p PowerupType) glyph() rune {
	switch p {
	case PowerupWipeout:
		return '✹'
	case PowerupFreeze:
		return '◷'
	case PowerupShield:
		return '⛨'
	case PowerupUpgrade:
		return '★'
	default:
		return '♥'
	}
}

// Powerup is the component of a bonus lying on the field.
type Powerup struct {
	obj   *scene.Object
	kind  PowerupType
	ticks int // Ticks left before it vanishes
	taken bool
}

func newPowerup(obj *scene.Object, kind PowerupType, ticks int) *Powerup {
	p := &Powerup{obj: obj, kind: kind, ticks: ticks}
	obj.Role = RolePowerup
	obj.Tags = scene.TagPowerup
	obj.Visual = &Sprite{Glyph: kind.glyph(), Color: core.ColorBrightGreen, Layer: layerPowerup}
	c := collision.NewBoxCollider(obj)
	c.SetActive(false)
	return p
}

// Type returns the bonus kind.
func (p *Powerup) Type() PowerupType { return p.kind }

func (p *Powerup) update(_ *World) {
	p.ticks--
	if p.ticks <= 0 {
		p.obj.RemoveSelf()
		return
	}
	if s := spriteOf(p.obj); s != nil {
		s.Hidden = (p.ticks/16)%2 == 1
	}
}
