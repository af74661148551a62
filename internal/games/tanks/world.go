package tanks

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/collision"
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// World owns the scene tree of one level and runs the per-tick pipeline:
// entity updates, collider refresh, one detection pass, resolution,
// reclamation and event dispatch. It is single threaded.
type World struct {
	cfg    config.TanksConfig
	logger *log.Logger
	rng    *rand.Rand

	tree      *scene.Tree
	root      *scene.Object
	field     *scene.Object
	fieldSize float64

	system   *collision.System
	detector *collision.Detector
	outbox   Outbox
	bus      Bus

	tick       uint64
	input      core.InputFrame
	difficulty *config.DifficultyManager
	score      int
	frozen     int // Ticks left on a Freeze powerup

	tanks    map[scene.Handle]*Tank
	bullets  map[scene.Handle]*Bullet
	powerups map[scene.Handle]*Powerup
	effects  map[scene.Handle]*Effect
	base     *Base
	player   scene.Handle
	dead     []scene.Handle
	scripts  []script
}

// script runs at the start of every tick, before the entities.
type script interface {
	update(w *World)
}

// NewWorld builds the world for a map. A nil logger discards.
func NewWorld(cfg config.TanksConfig, m *maps.Map, seed int64, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &World{
		cfg:        cfg,
		logger:     logger,
		rng:        rand.New(rand.NewSource(seed)),
		tree:       scene.NewTree(),
		system:     collision.NewSystem(),
		input:      core.NewInputFrame(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		tanks:      make(map[scene.Handle]*Tank),
		bullets:    make(map[scene.Handle]*Bullet),
		powerups:   make(map[scene.Handle]*Powerup),
		effects:    make(map[scene.Handle]*Effect),
	}
	w.detector = collision.NewDetector(w.system, logger)
	w.tree.OnDetach = w.onDetach
	w.bus.Subscribe(EventBulletDied, w.onBulletDied)

	w.fieldSize = cfg.Field.TileSize * float64(m.Size)
	w.root = w.tree.New(core.Vector{}, core.Dims(w.fieldSize, w.fieldSize))
	w.field = w.tree.New(core.Vector{}, core.Dims(w.fieldSize, w.fieldSize))
	w.root.Add(w.field)
	w.buildBorders()
	w.buildTerrain(m)
	return w
}

// Tree returns the scene tree.
func (w *World) Tree() *scene.Tree { return w.tree }

// Field returns the object every entity is attached under.
func (w *World) Field() *scene.Object { return w.field }

// FieldSize returns the field edge length in pixels.
func (w *World) FieldSize() float64 { return w.fieldSize }

// Bus returns the event bus drained at the end of every tick.
func (w *World) Bus() *Bus { return &w.bus }

// Tick returns the number of steps run.
func (w *World) Tick() uint64 { return w.tick }

// Base returns the base, or nil when the map has none.
func (w *World) Base() *Base { return w.base }

// Player returns the live player tank, or nil.
func (w *World) Player() *Tank {
	t := w.tanks[w.player]
	if t == nil || t.state == TankDead {
		return nil
	}
	return t
}

// Score returns the points collected on this world.
func (w *World) Score() int { return w.score }

// Frozen reports whether enemies are stopped by a Freeze powerup.
func (w *World) Frozen() bool { return w.frozen > 0 }

// Tank returns the tank component of h, or nil.
func (w *World) Tank(h scene.Handle) *Tank { return w.tanks[h] }

// Bullet returns the bullet component of h, or nil.
func (w *World) Bullet(h scene.Handle) *Bullet { return w.bullets[h] }

// Tanks returns the live tanks in tree order.
func (w *World) Tanks() []*Tank {
	var out []*Tank
	w.root.Traverse(func(o *scene.Object) bool {
		if t := w.tanks[o.Handle()]; t != nil && !o.IsRemoved() {
			out = append(out, t)
		}
		return true
	})
	return out
}

// Step runs one tick.
func (w *World) Step(in core.InputFrame) {
	w.tick++
	w.input = in
	if w.frozen > 0 {
		w.frozen--
	}

	for _, s := range w.scripts {
		s.update(w)
	}
	for _, o := range w.liveObjects() {
		if !o.IsRemoved() {
			w.updateObject(o)
		}
	}

	order := w.colliderOrder()
	for _, c := range order {
		c.Update()
	}
	w.resolve(w.detector.Detect(order))

	w.tree.Reclaim()
	w.prune()
	w.bus.Dispatch(w.outbox.Drain())
}

// liveObjects snapshots the entities in tree order so updates that spawn or
// remove objects do not disturb the walk.
func (w *World) liveObjects() []*scene.Object {
	var out []*scene.Object
	w.root.Traverse(func(o *scene.Object) bool {
		if o.Role != RoleNone {
			out = append(out, o)
		}
		return true
	})
	return out
}

func (w *World) updateObject(o *scene.Object) {
	h := o.Handle()
	switch o.Role {
	case RoleTank:
		if t := w.tanks[h]; t != nil {
			t.update(w)
		}
	case RoleBullet:
		if b := w.bullets[h]; b != nil {
			b.update(w)
		}
	case RolePowerup:
		if p := w.powerups[h]; p != nil {
			p.update(w)
		}
	case RoleEffect:
		if e := w.effects[h]; e != nil {
			e.update(w)
		}
	}
}

// colliderOrder returns the registered colliders in pre-order. This is the
// source and target order of the detection pass.
func (w *World) colliderOrder() []scene.Collider {
	order := make([]scene.Collider, 0, w.system.Len())
	w.root.Traverse(func(o *scene.Object) bool {
		if o.Collider != nil && w.system.Registered(o.Collider) {
			order = append(order, o.Collider)
		}
		return true
	})
	return order
}

func (w *World) onDetach(o *scene.Object) {
	if o.Collider != nil {
		w.system.Unregister(o.Collider)
	}
	w.dead = append(w.dead, o.Handle())
}

// prune drops the components of reclaimed objects.
func (w *World) prune() {
	for _, h := range w.dead {
		delete(w.tanks, h)
		delete(w.bullets, h)
		delete(w.powerups, h)
		delete(w.effects, h)
	}
	w.dead = w.dead[:0]
}

func (w *World) behaviorContext(t *Tank) BehaviorContext {
	return BehaviorContext{
		Input:        w.input,
		Tick:         w.tick,
		Frozen:       t.party == PartyEnemy && w.frozen > 0,
		FireInterval: w.difficulty.FireInterval(w.cfg.Enemy.FireIntervalTicks, w.score, int(w.tick)),
	}
}

// spawnTank puts a tank centered at c.
func (w *World) spawnTank(party Party, tier Tier, hasDrop bool, c core.Vector) *Tank {
	tiers := w.cfg.Enemy.Tiers
	size := w.cfg.Enemy.Size
	var b Behavior
	if party == PartyPlayer {
		tiers = w.cfg.Player.Tiers
		size = w.cfg.Player.Size
		b = NewPlayerBehavior(w.cfg.Player.InputHoldTicks)
	} else {
		b = NewSimpleAIBehavior(w.rng.Int63(), w.cfg.Enemy.TurnChance)
	}
	stats := tiers[min(int(tier), len(tiers)-1)]

	o := w.tree.New(core.Vector{}, core.Dims(size, size))
	if party == PartyEnemy {
		o.Rotate(core.Down)
	}
	t := newTank(o, party, tier, stats, b)
	t.hasDrop = hasDrop
	if party == PartyEnemy {
		t.speed = w.difficulty.Speed(stats.MoveSpeed, w.score, int(w.tick))
	}
	w.field.Add(o)
	o.SetWorldCenter(c)
	w.system.Register(t.collider)
	w.tanks[o.Handle()] = t
	if party == PartyPlayer {
		w.player = o.Handle()
	}
	w.logger.Debug("tank spawned", "party", party, "tier", tier, "drop", hasDrop, "handle", o.Handle())
	return t
}

// killTank replaces the tank by a large explosion.
func (w *World) killTank(t *Tank, reason DeathReason) {
	if t.state == TankDead {
		return
	}
	center := t.obj.WorldCenter()
	t.state = TankDead
	ex := w.newEffectObject(EffectLargeExplosion, t.obj.Dimensions, w.cfg.Effects.LargeExplosionTicks)
	t.obj.ReplaceSelf(ex.obj)
	ex.obj.SetWorldCenter(center)

	w.outbox.Push(TankDied{
		Handle:  t.obj.Handle(),
		Party:   t.party,
		Tier:    t.tier,
		HasDrop: t.hasDrop,
		Center:  center,
		Reason:  reason,
	})
	w.logger.Debug("tank died", "party", t.party, "tier", t.tier, "reason", reason, "tick", w.tick)
}

// shieldTank attaches a shield effect to the tank, replacing any current one.
func (w *World) shieldTank(t *Tank, ticks int) {
	if old := w.tree.Get(t.shield); old != nil {
		old.RemoveSelf()
	}
	e := w.newEffectObject(EffectShield, t.obj.Dimensions, ticks)
	t.obj.Add(e.obj)
	t.shield = e.obj.Handle()
}

func (w *World) spawnBullet(t *Tank) *Bullet {
	dims := core.Dims(w.cfg.Bullet.Width, w.cfg.Bullet.Height)
	o := w.tree.New(core.Vector{}, dims)
	b := newBullet(o, t)
	w.field.Add(o)
	o.SetWorldCenter(t.muzzle())
	w.system.Register(b.collider)
	w.bullets[o.Handle()] = b
	return b
}

// nullifyBullet removes a bullet without an explosion.
func (w *World) nullifyBullet(b *Bullet) {
	if b.spent {
		return
	}
	b.spent = true
	b.obj.RemoveSelf()
	w.outbox.Push(BulletDied{Shooter: b.shooter, Party: b.party})
}

// explodeBullet replaces a bullet by a small explosion.
func (w *World) explodeBullet(b *Bullet) {
	if b.spent {
		return
	}
	b.spent = true
	center := b.obj.WorldCenter()
	ex := w.newEffectObject(EffectSmallExplosion, core.Dims(32, 32), w.cfg.Effects.SmallExplosionTicks)
	b.obj.ReplaceSelf(ex.obj)
	ex.obj.SetWorldCenter(center)
	w.outbox.Push(BulletDied{Shooter: b.shooter, Party: b.party})
}

func (w *World) onBulletDied(e Event) {
	ev := e.(BulletDied)
	if t := w.tanks[ev.Shooter]; t != nil && t.bullets > 0 {
		t.bullets--
	}
}

// spawnDestroyer places a one-pass collider over the terrain to crumble.
func (w *World) spawnDestroyer(box core.BoundingBox, damage WallDamage) {
	o := w.tree.New(core.Vector{}, core.Dims(box.Width(), box.Height()))
	e := newEffect(o, EffectDestroyer, 1)
	e.damage = damage
	w.field.Add(o)
	o.SetWorldPosition(box.Min)
	w.system.Register(o.Collider)
	w.effects[o.Handle()] = e
}

// spawnEffect attaches a timed effect centered at c.
func (w *World) spawnEffect(kind EffectKind, dims core.Dimensions, ticks int, c core.Vector) *Effect {
	e := w.newEffectObject(kind, dims, ticks)
	w.field.Add(e.obj)
	e.obj.SetWorldCenter(c)
	return e
}

// newEffectObject creates a detached effect object and its component.
func (w *World) newEffectObject(kind EffectKind, dims core.Dimensions, ticks int) *Effect {
	o := w.tree.New(core.Vector{}, dims)
	e := newEffect(o, kind, ticks)
	w.effects[o.Handle()] = e
	return e
}

// spawnPowerup drops a random powerup on a random tile.
func (w *World) spawnPowerup() *Powerup {
	tile := w.cfg.Field.TileSize
	n := int(w.fieldSize / tile)
	kind := PowerupType(w.rng.Intn(int(powerupTypeCount)))
	col, row := w.rng.Intn(n), w.rng.Intn(max(1, n-1))

	o := w.tree.New(core.Vec(float64(col)*tile, float64(row)*tile), core.Dims(tile, tile))
	p := newPowerup(o, kind, w.cfg.Powerups.DurationTicks)
	w.field.Add(o)
	w.system.Register(o.Collider)
	w.powerups[o.Handle()] = p
	w.logger.Debug("powerup dropped", "type", kind, "col", col, "row", row)
	return p
}

// enemies returns the live enemy tanks in tree order.
func (w *World) enemies() []*Tank {
	var out []*Tank
	for _, t := range w.Tanks() {
		if t.party == PartyEnemy {
			out = append(out, t)
		}
	}
	return out
}
