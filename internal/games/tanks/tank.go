package tanks

import (
	"math"

	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// TankState is the movement state of a tank.
type TankState uint8

const (
	TankUninitialized TankState = iota
	TankIdle
	TankMoving
	TankDead
)

func (s TankState) String() string {
	switch s {
	case TankIdle:
		return "idle"
	case TankMoving:
		return "moving"
	case TankDead:
		return "dead"
	default:
		return "uninitialized"
	}
}

// turnGrid is the half-tile grid a tank snaps onto when it turns.
const turnGrid = 32

// Skin is the tread animation of a tank. Each state has its own frames.
type Skin struct {
	frames []rune
	frame  int
	period int
	count  int
}

var (
	idleFrames   = []rune{'█'}
	movingFrames = []rune{'█', '▓'}
)

// Swap switches to another animation, restarting it.
func (s *Skin) Swap(frames []rune, period int) {
	s.frames = frames
	s.frame = 0
	s.period = max(1, period)
	s.count = 0
}

// Tick advances the animation by one tick.
func (s *Skin) Tick() {
	if len(s.frames) < 2 {
		return
	}
	s.count++
	if s.count >= s.period {
		s.count = 0
		s.frame = (s.frame + 1) % len(s.frames)
	}
}

// Glyph returns the current frame.
func (s *Skin) Glyph() rune {
	if len(s.frames) == 0 {
		return '█'
	}
	return s.frames[s.frame]
}

// Tank is the component of a tank object.
type Tank struct {
	obj      *scene.Object
	collider *collision.SweptBoxCollider
	behavior Behavior

	party   Party
	tier    Tier
	stats   config.TanksTier
	speed   float64
	health  int
	hasDrop bool
	state   TankState
	skin    Skin

	shield   scene.Handle
	bullets  int // Bullets alive
	cooldown int
	blocked  bool // Pushed back during the last resolution pass
}

func newTank(obj *scene.Object, party Party, tier Tier, stats config.TanksTier, b Behavior) *Tank {
	t := &Tank{
		obj:      obj,
		behavior: b,
		party:    party,
		tier:     tier,
		stats:    stats,
		speed:    stats.MoveSpeed,
		health:   max(1, stats.Health),
	}
	t.collider = collision.NewSweptBoxCollider(obj)
	obj.Role = RoleTank
	obj.Tags = scene.TagTank | scene.TagBlockMove | party.Tag()
	obj.Visual = &Sprite{Glyph: '█', Accent: barrelGlyph(obj.Rotation), Color: tankColor(party, tier), Layer: layerTank}
	t.enter(TankIdle)
	return t
}

func tankColor(p Party, t Tier) core.Color {
	if p == PartyPlayer {
		return core.ColorBrightYellow
	}
	switch t {
	case TierB:
		return core.ColorCyan
	case TierC:
		return core.ColorGreen
	case TierD:
		return core.ColorBrightRed
	default:
		return core.ColorWhite
	}
}

// Object returns the tank's scene object.
func (t *Tank) Object() *scene.Object { return t.obj }

// Party returns the side the tank fights for.
func (t *Tank) Party() Party { return t.party }

// Tier returns the tank grade.
func (t *Tank) Tier() Tier { return t.tier }

// State returns the movement state.
func (t *Tank) State() TankState { return t.state }

// Health returns the remaining hit points.
func (t *Tank) Health() int { return t.health }

// Blocked reports whether the tank was pushed back on the last tick.
func (t *Tank) Blocked() bool { return t.blocked }

// enter moves the state machine. Entering a state swaps the skin; the dead
// state is terminal.
func (t *Tank) enter(s TankState) {
	if t.state == s || t.state == TankDead {
		return
	}
	t.state = s
	switch s {
	case TankIdle:
		t.skin.Swap(idleFrames, 1)
	case TankMoving:
		t.skin.Swap(movingFrames, 4)
	}
}

// Shielded reports whether a shield effect is attached.
func (t *Tank) Shielded(w *World) bool {
	o := w.tree.Get(t.shield)
	return o != nil && !o.IsRemoved()
}

// setTier changes the grade and the stats that come with it.
func (t *Tank) setTier(tier Tier, stats config.TanksTier) {
	t.tier = tier
	t.stats = stats
	t.speed = stats.MoveSpeed
	if s := spriteOf(t.obj); s != nil {
		s.Color = tankColor(t.party, tier)
	}
}

// wallDamage returns how deep the tank's bullets bite into walls.
func (t *Tank) wallDamage() WallDamage {
	if t.stats.HighWallDamage {
		return WallDamageHigh
	}
	return WallDamageLow
}

func (t *Tank) update(w *World) {
	if t.state == TankDead {
		return
	}
	if t.cooldown > 0 {
		t.cooldown--
	}

	intent := t.behavior.Decide(t, w.behaviorContext(t))
	t.blocked = false

	if intent.Rotation != t.obj.Rotation {
		t.turn(intent.Rotation)
	}
	if intent.Move {
		t.obj.Translate(t.obj.Rotation.Vector().Scale(t.speed))
		t.enter(TankMoving)
	} else {
		t.enter(TankIdle)
	}
	if intent.Fire {
		t.fire(w)
	}

	t.skin.Tick()
	if s := spriteOf(t.obj); s != nil {
		s.Glyph = t.skin.Glyph()
		s.Accent = barrelGlyph(t.obj.Rotation)
	}
}

func barrelGlyph(r core.Rotation) rune {
	switch r {
	case core.Up:
		return '▲'
	case core.Down:
		return '▼'
	case core.Left:
		return '◀'
	default:
		return '▶'
	}
}

// turn rotates the tank. Changing axis snaps the tank's center onto the
// half-tile grid along the new perpendicular axis.
func (t *Tank) turn(r core.Rotation) {
	axisChanged := r.IsHorizontal() != t.obj.Rotation.IsHorizontal()
	t.obj.Rotate(r)
	if !axisChanged {
		return
	}
	c := t.obj.Center()
	if r.IsHorizontal() {
		c.Y = math.Round(c.Y/turnGrid) * turnGrid
	} else {
		c.X = math.Round(c.X/turnGrid) * turnGrid
	}
	t.obj.SetCenter(c)
}

func (t *Tank) fire(w *World) {
	if t.cooldown > 0 || t.bullets >= max(1, t.stats.BulletMax) {
		return
	}
	w.spawnBullet(t)
	t.bullets++
	t.cooldown = w.cfg.Player.FireCooldownTicks
	if t.party == PartyEnemy {
		t.cooldown = w.cfg.Enemy.FireCooldownTicks
	}
}

// muzzle returns the world point a new bullet is centered on: the middle of
// the tank's front edge.
func (t *Tank) muzzle() core.Vector {
	box := t.obj.WorldBoundingBox()
	c := box.Center()
	switch t.obj.Rotation {
	case core.Up:
		c.Y = box.Min.Y
	case core.Down:
		c.Y = box.Max.Y
	case core.Left:
		c.X = box.Min.X
	case core.Right:
		c.X = box.Max.X
	}
	return c
}

// pushBack moves the tank out of blocker along its facing so the leading
// edge sits flush on the blocker's near face. Only a blocker ahead of the
// tank is resolved: it must reach at least as far forward as the leading
// edge did at the end of the last tick, and the leading edge must now be
// past its near face. Using the previous box catches blockers the tank
// passed through in one tick. The perpendicular axis is left alone and the
// tank only ever moves backward.
func (t *Tank) pushBack(blocker core.BoundingBox) bool {
	box := t.obj.WorldBoundingBox()
	prev := t.collider.PrevBox()
	if !box.Union(prev).Intersects(blocker) {
		return false
	}

	pos := box.Min
	d := t.obj.ComputedDimensions()
	var ahead bool
	switch t.obj.Rotation {
	case core.Up:
		ahead = blocker.Min.Y <= prev.Min.Y && blocker.Max.Y > box.Min.Y
		pos.Y = blocker.Max.Y
	case core.Down:
		ahead = blocker.Max.Y >= prev.Max.Y && blocker.Min.Y < box.Max.Y
		pos.Y = blocker.Min.Y - d.Height
	case core.Left:
		ahead = blocker.Min.X <= prev.Min.X && blocker.Max.X > box.Min.X
		pos.X = blocker.Max.X
	case core.Right:
		ahead = blocker.Max.X >= prev.Max.X && blocker.Min.X < box.Max.X
		pos.X = blocker.Min.X - d.Width
	}
	if !ahead {
		return false
	}

	t.obj.SetWorldPosition(pos)
	t.collider.Refresh()
	t.blocked = true
	return true
}

// hit applies one point of damage and returns true when the tank died.
func (t *Tank) hit() bool {
	t.health--
	return t.health <= 0
}
