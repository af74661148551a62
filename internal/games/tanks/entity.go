package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// Roles select the component set of an object and key the dispatch table.
const (
	RoleNone scene.Role = iota
	RoleTank
	RoleBullet
	RoleWall
	RoleBase
	RolePowerup
	RoleEffect

	roleCount
)

func roleName(r scene.Role) string {
	switch r {
	case RoleTank:
		return "tank"
	case RoleBullet:
		return "bullet"
	case RoleWall:
		return "wall"
	case RoleBase:
		return "base"
	case RolePowerup:
		return "powerup"
	case RoleEffect:
		return "effect"
	default:
		return "none"
	}
}

// Party is the side a tank or bullet fights for.
type Party uint8

const (
	PartyPlayer Party = iota
	PartyEnemy
)

// Tag returns the scene tag carried by members of the party.
func (p Party) Tag() scene.Tags {
	if p == PartyEnemy {
		return scene.TagEnemy
	}
	return scene.TagPlayer
}

func (p Party) String() string {
	if p == PartyEnemy {
		return "enemy"
	}
	return "player"
}

// Tier is a tank grade, A (weakest) through D.
type Tier uint8

const (
	TierA Tier = iota
	TierB
	TierC
	TierD
)

// Next returns the following tier, staying at D.
func (t Tier) Next() Tier {
	if t >= TierD {
		return TierD
	}
	return t + 1
}

// IsMax returns true for tier D.
func (t Tier) IsMax() bool {
	return t == TierD
}

func (t Tier) String() string {
	return string(rune('A' + t))
}

// WallDamage is how deep a bullet bites into terrain. High also breaks steel.
type WallDamage uint8

const (
	WallDamageLow  WallDamage = 1
	WallDamageHigh WallDamage = 2
)

// Sprite is the drawable attached to every visible object.
type Sprite struct {
	Glyph  rune
	Accent rune // Drawn over the center cell when set
	Color  core.Color
	Layer  int
	// Hidden skips drawing, used for blinking.
	Hidden bool
}

// Draw layers, lowest first.
const (
	layerTerrain = iota
	layerPowerup
	layerTank
	layerBullet
	layerEffect
)

func spriteOf(o *scene.Object) *Sprite {
	s, _ := o.Visual.(*Sprite)
	return s
}
