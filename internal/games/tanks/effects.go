package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// EffectKind is what an effect object does.
type EffectKind uint8

const (
	EffectSpawn EffectKind = iota
	EffectSmallExplosion
	EffectLargeExplosion
	EffectDestroyer
	EffectShield
)

func (k EffectKind) String() string {
	switch k {
	case EffectSpawn:
		return "spawn"
	case EffectSmallExplosion:
		return "small_explosion"
	case EffectLargeExplosion:
		return "large_explosion"
	case EffectDestroyer:
		return "destroyer"
	case EffectShield:
		return "shield"
	default:
		return "unknown"
	}
}

// destroyerSpan is the width of terrain a bullet bites away, across its
// movement axis.
const destroyerSpan = 64

var (
	spawnFrames     = []rune{'·', '+', '✦', '✶'}
	explosionFrames = []rune{'*', '✺', '░'}
	shieldFrames    = []rune{'◇', '◆'}
)

// Effect is the component of a timed visual, or of a destroyer: the
// invisible one-pass collider that crumbles the terrain a bullet hit.
type Effect struct {
	obj    *scene.Object
	kind   EffectKind
	ticks  int
	age    int
	frames []rune

	// Spawn payload.
	party   Party
	tier    Tier
	hasDrop bool
	index   int

	damage WallDamage // Destroyer only
}

func newEffect(obj *scene.Object, kind EffectKind, ticks int) *Effect {
	e := &Effect{obj: obj, kind: kind, ticks: max(1, ticks)}
	obj.Role = RoleEffect
	switch kind {
	case EffectSpawn:
		e.frames = spawnFrames
		obj.Visual = &Sprite{Glyph: spawnFrames[0], Color: core.ColorBrightCyan, Layer: layerEffect}
	case EffectSmallExplosion, EffectLargeExplosion:
		e.frames = explosionFrames
		obj.Visual = &Sprite{Glyph: explosionFrames[0], Color: core.ColorBrightYellow, Layer: layerEffect}
	case EffectShield:
		e.frames = shieldFrames
		obj.Visual = &Sprite{Glyph: shieldFrames[0], Color: core.ColorBrightCyan, Layer: layerEffect}
	case EffectDestroyer:
		collision.NewBoxCollider(obj)
	}
	return e
}

// withPayload sets what a spawn effect turns into.
func (e *Effect) withPayload(p Party, t Tier, hasDrop bool, index int) *Effect {
	e.party = p
	e.tier = t
	e.hasDrop = hasDrop
	e.index = index
	return e
}

// Kind returns the effect kind.
func (e *Effect) Kind() EffectKind { return e.kind }

// Done reports whether the effect has run its course.
func (e *Effect) Done() bool { return e.age >= e.ticks }

func (e *Effect) update(w *World) {
	e.age++
	if len(e.frames) > 0 {
		if s := spriteOf(e.obj); s != nil {
			s.Glyph = e.frames[(e.age*len(e.frames)/e.ticks)%len(e.frames)]
			if e.kind == EffectShield {
				s.Hidden = (e.age/6)%2 == 1
			}
		}
	}

	// A destroyer spawned during resolution takes part in exactly one
	// detection pass, the next one; its age reaches 2 only after that.
	if e.kind == EffectDestroyer {
		if e.age > 1 {
			e.obj.RemoveSelf()
		}
		return
	}
	if !e.Done() {
		return
	}

	center := e.obj.WorldCenter()
	switch e.kind {
	case EffectSpawn:
		w.outbox.Push(SpawnCompleted{Party: e.party, Tier: e.tier, HasDrop: e.hasDrop, Center: center, Index: e.index})
	case EffectSmallExplosion, EffectLargeExplosion:
		w.outbox.Push(ExplosionCompleted{Center: center})
	}
	e.obj.RemoveSelf()
}

// destroyerBox returns the box a destroyer covers for a bullet that hit wall:
// destroyerSpan across the movement axis centered on the bullet, 16px per
// damage level along it, aligned to the wall the way the bullet is.
func destroyerBox(bullet, wall core.BoundingBox, r core.Rotation, damage WallDamage) core.BoundingBox {
	depth := 16 * float64(damage)
	dims := core.Dims(destroyerSpan, depth).Rotated(r)
	c := bullet.Center()
	box := core.BoxAt(core.Vec(c.X-dims.Width/2, c.Y-dims.Height/2), dims)
	return core.BoxAt(alignedMin(box, wall, r), dims)
}
