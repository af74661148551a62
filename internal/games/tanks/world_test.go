package tanks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/maps"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// testLayout is a 5x5 field (320px): a brick tile at (2,2) spanning
// 128..192 on both axes and a steel tile at (4,2).
var testLayout = []string{
	"E...E",
	".....",
	"..B.S",
	".....",
	"P.H..",
}

func testMap(t *testing.T, layout ...string) *maps.Map {
	t.Helper()
	var b strings.Builder
	b.WriteString("id: test\nlayout:\n")
	for _, row := range layout {
		fmt.Fprintf(&b, "  - %q\n", row)
	}
	b.WriteString("enemies:\n  - tier: a\n    count: 2\ndrops: [99]\n")
	m, err := maps.Parse([]byte(b.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return &m
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return NewWorld(config.DefaultTanksConfig(), testMap(t, testLayout...), 1, nil)
}

// scripted replays a fixed intent. A zero rotation means keep facing.
type scripted struct {
	intent Intent
	keep   bool
}

func (s *scripted) Decide(t *Tank, _ BehaviorContext) Intent {
	in := s.intent
	if s.keep {
		in.Rotation = t.obj.Rotation
	}
	return in
}

func holdStill() *scripted {
	return &scripted{keep: true}
}

func spawnStill(w *World, party Party, tier Tier, c core.Vector) *Tank {
	t := w.spawnTank(party, tier, false, c)
	t.behavior = holdStill()
	return t
}

// placeBullet fires from shooter and moves the bullet to c with no sweep.
func placeBullet(w *World, shooter *Tank, c core.Vector, speed float64) *Bullet {
	b := w.spawnBullet(shooter)
	b.obj.SetWorldCenter(c)
	b.collider.Reset()
	b.speed = speed
	return b
}

func countTagged(w *World, tags scene.Tags) int {
	return len(w.root.ChildrenWithTag(tags))
}

func countEffects(w *World, kind EffectKind) int {
	n := 0
	for _, e := range w.effects {
		if e.kind == kind && !e.obj.IsRemoved() {
			n++
		}
	}
	return n
}

func collect(w *World, kind EventKind) *[]Event {
	var got []Event
	w.Bus().Subscribe(kind, func(e Event) { got = append(got, e) })
	return &got
}

func TestTankWallAlignment(t *testing.T) {
	// The brick tile spans 128..192. Each tank starts 1px clear of one face
	// and drives 3px into it.
	tests := []struct {
		name     string
		rotation core.Rotation
		center   core.Vector
		expected core.Vector // Min corner after resolution
	}{
		{"up", core.Up, core.Vec(160, 219), core.Vec(134, 192)},
		{"down", core.Down, core.Vec(160, 101), core.Vec(134, 76)},
		{"left", core.Left, core.Vec(219, 160), core.Vec(192, 134)},
		{"right", core.Right, core.Vec(101, 160), core.Vec(76, 134)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			tank := w.spawnTank(PartyPlayer, TierA, false, tc.center)
			tank.behavior = &scripted{intent: Intent{Rotation: tc.rotation, Move: true}}

			w.Step(core.NewInputFrame())

			got := tank.obj.WorldBoundingBox().Min
			if got != tc.expected {
				t.Errorf("tank min = %v, expected %v", got, tc.expected)
			}
			if !tank.Blocked() {
				t.Error("Blocked() = false, expected true after pushback")
			}
		})
	}
}

func TestTankPushBackOnlyBackward(t *testing.T) {
	w := newTestWorld(t)
	tank := w.spawnTank(PartyPlayer, TierA, false, core.Vec(160, 96))
	tank.obj.Rotate(core.Up)

	// A blocker overlapping the tank's rear must not pull it forward.
	behind := core.NewBoundingBox(core.Vec(134, 110), core.Vec(186, 140))
	before := tank.obj.WorldPosition()
	if tank.pushBack(behind) {
		t.Error("pushBack() = true for a blocker behind the tank")
	}
	if tank.obj.WorldPosition() != before {
		t.Errorf("position = %v, expected %v", tank.obj.WorldPosition(), before)
	}

	// A blocker against the side, as after a turn snap, is not in front.
	beside := core.NewBoundingBox(core.Vec(120, 90), core.Vec(140, 110))
	if tank.pushBack(beside) {
		t.Error("pushBack() = true for a blocker beside the tank")
	}
	if tank.obj.WorldPosition() != before {
		t.Errorf("position = %v, expected %v", tank.obj.WorldPosition(), before)
	}

	// Touching is not overlapping.
	touching := core.NewBoundingBox(core.Vec(134, 40), core.Vec(186, 70))
	if tank.pushBack(touching) {
		t.Error("pushBack() = true for a touching blocker")
	}
}

func TestTankRearEnded(t *testing.T) {
	w := newTestWorld(t)
	front := spawnStill(w, PartyPlayer, TierA, core.Vec(32, 96))
	back := w.spawnTank(PartyPlayer, TierA, false, core.Vec(32, 149))
	back.behavior = &scripted{keep: true, intent: Intent{Move: true}}

	w.Step(core.NewInputFrame())

	if got := front.obj.WorldBoundingBox().Min; got != core.Vec(6, 70) {
		t.Errorf("front tank min = %v, expected (6, 70)", got)
	}
	if front.Blocked() {
		t.Error("front tank Blocked() = true, expected it to stay put")
	}
	if got := back.obj.WorldBoundingBox().Min; got != core.Vec(6, 122) {
		t.Errorf("rear tank min = %v, expected (6, 122)", got)
	}
	if !back.Blocked() {
		t.Error("rear tank Blocked() = false, expected true")
	}
}

func TestFastTankStopsOnNearestBrick(t *testing.T) {
	w := newTestWorld(t)
	// Starts 8px below the brick tile and moves far enough in one tick to
	// clear the whole tile.
	tank := w.spawnTank(PartyPlayer, TierA, false, core.Vec(160, 226))
	tank.behavior = &scripted{keep: true, intent: Intent{Move: true}}
	tank.speed = 160

	w.Step(core.NewInputFrame())

	if got := tank.obj.WorldBoundingBox().Min; got != core.Vec(134, 192) {
		t.Errorf("tank min = %v, expected (134, 192)", got)
	}
	if !tank.Blocked() {
		t.Error("Blocked() = false, expected true")
	}
	if got := tank.collider.CurrentBox(); got != tank.obj.WorldBoundingBox() {
		t.Errorf("collider box = %v, expected the resolved box %v", got, tank.obj.WorldBoundingBox())
	}
}

func TestFireCooldownPerParty(t *testing.T) {
	w := newTestWorld(t)
	w.cfg.Player.FireCooldownTicks = 5
	w.cfg.Enemy.FireCooldownTicks = 30

	player := spawnStill(w, PartyPlayer, TierA, core.Vec(32, 224))
	enemy := spawnStill(w, PartyEnemy, TierA, core.Vec(288, 32))
	player.fire(w)
	enemy.fire(w)

	if player.cooldown != 5 {
		t.Errorf("player cooldown = %d, expected 5", player.cooldown)
	}
	if enemy.cooldown != 30 {
		t.Errorf("enemy cooldown = %d, expected 30", enemy.cooldown)
	}
}

func TestTankTurnSnapsToHalfTile(t *testing.T) {
	w := newTestWorld(t)
	tank := w.spawnTank(PartyPlayer, TierA, false, core.Vec(100, 75))
	tank.behavior = &scripted{intent: Intent{Rotation: core.Right}}

	w.Step(core.NewInputFrame())

	c := tank.obj.WorldCenter()
	if c.Y != 64 || c.X != 100 {
		t.Errorf("center after turn = %v, expected (100, 64)", c)
	}
}

func TestBulletsSameParty(t *testing.T) {
	tests := []struct {
		name     string
		other    Party
		expected int
	}{
		{"same party both survive", PartyPlayer, 2},
		{"opposing parties cancel", PartyEnemy, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			a := spawnStill(w, PartyPlayer, TierA, core.Vec(32, 224))
			b := spawnStill(w, tc.other, TierA, core.Vec(288, 224))
			a.obj.Rotate(core.Right)
			b.obj.Rotate(core.Left)

			// Same spot, opposite directions: they separate this tick but
			// their sweeps overlap.
			placeBullet(w, a, core.Vec(150, 96), 10)
			placeBullet(w, b, core.Vec(150, 96), 10)

			w.Step(core.NewInputFrame())

			if got := len(w.bullets); got != tc.expected {
				t.Errorf("bullets alive = %d, expected %d", got, tc.expected)
			}
			if got := countEffects(w, EffectSmallExplosion); got != 0 {
				t.Errorf("small explosions = %d, expected 0", got)
			}
		})
	}
}

func TestFastBulletStopsOnClosestBrick(t *testing.T) {
	w := newTestWorld(t)
	shooter := spawnStill(w, PartyPlayer, TierA, core.Vec(32, 96))

	// Starts touching the brick tile's bottom edge and moves 40px up,
	// ending inside the tile with its sweep over three brick rows.
	placeBullet(w, shooter, core.Vec(160, 200), 40)
	bricks := countTagged(w, scene.TagBrick)

	w.Step(core.NewInputFrame())

	if got := len(w.bullets); got != 0 {
		t.Fatalf("bullets alive = %d, expected 0", got)
	}
	if got := countEffects(w, EffectSmallExplosion); got != 1 {
		t.Errorf("small explosions = %d, expected 1", got)
	}
	var destroyer *Effect
	for _, e := range w.effects {
		if e.kind == EffectDestroyer {
			destroyer = e
		}
	}
	if destroyer == nil {
		t.Fatal("no destroyer spawned")
	}
	expected := core.NewBoundingBox(core.Vec(128, 176), core.Vec(192, 192))
	if got := destroyer.obj.WorldBoundingBox(); got != expected {
		t.Errorf("destroyer box = %v, expected %v", got, expected)
	}

	w.Step(core.NewInputFrame())

	if got := countTagged(w, scene.TagBrick); got != bricks-4 {
		t.Errorf("bricks = %d, expected %d (bottom row gone)", got, bricks-4)
	}
	if got := countEffects(w, EffectDestroyer); got != 0 {
		t.Errorf("destroyers = %d, expected 0 after one pass", got)
	}
}

func TestBulletAlignment(t *testing.T) {
	wall := core.NewBoundingBox(core.Vec(100, 100), core.Vec(116, 116))
	box := core.BoxAt(core.Vec(104, 90), core.Dims(12, 16))

	tests := []struct {
		r        core.Rotation
		expected core.Vector
	}{
		{core.Up, core.Vec(104, 100)},   // max.y == wall max.y
		{core.Down, core.Vec(104, 100)}, // min.y == wall min.y
		{core.Left, core.Vec(104, 90)},  // max.x == wall max.x
		{core.Right, core.Vec(100, 90)}, // min.x == wall min.x
	}
	for _, tc := range tests {
		t.Run(tc.r.String(), func(t *testing.T) {
			if got := alignedMin(box, wall, tc.r); got != tc.expected {
				t.Errorf("alignedMin() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestDestroyerDamage(t *testing.T) {
	tests := []struct {
		name   string
		box    core.BoundingBox
		damage WallDamage
		tags   scene.Tags
		lost   int
	}{
		{"brick low", core.NewBoundingBox(core.Vec(128, 176), core.Vec(192, 192)), WallDamageLow, scene.TagBrick, 4},
		{"brick high", core.NewBoundingBox(core.Vec(128, 160), core.Vec(192, 192)), WallDamageHigh, scene.TagBrick, 8},
		{"steel low", core.NewBoundingBox(core.Vec(256, 176), core.Vec(320, 192)), WallDamageLow, scene.TagSteel, 0},
		{"steel high", core.NewBoundingBox(core.Vec(256, 160), core.Vec(320, 192)), WallDamageHigh, scene.TagSteel, 2},
		{"border high", core.NewBoundingBox(core.Vec(320, 100), core.Vec(352, 132)), WallDamageHigh, scene.TagBorder, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			before := countTagged(w, tc.tags)
			w.spawnDestroyer(tc.box, tc.damage)

			w.Step(core.NewInputFrame())

			if got := before - countTagged(w, tc.tags); got != tc.lost {
				t.Errorf("destroyed %d %v, expected %d", got, tc.tags, tc.lost)
			}
		})
	}
}

func TestWaterDoesNotStopBullets(t *testing.T) {
	w := NewWorld(config.DefaultTanksConfig(), testMap(t,
		"E...E",
		".....",
		"..W..",
		".....",
		"P.H..",
	), 1, nil)
	shooter := spawnStill(w, PartyPlayer, TierA, core.Vec(32, 96))
	placeBullet(w, shooter, core.Vec(160, 160), 10)

	w.Step(core.NewInputFrame())

	if got := len(w.bullets); got != 1 {
		t.Errorf("bullets alive = %d, expected 1 over water", got)
	}
}

func TestTankShotRules(t *testing.T) {
	victimAt := core.Vec(160, 96)

	tests := []struct {
		name       string
		victim     Party
		tier       Tier
		shooter    string // "self", "ally", "enemy"
		shield     bool
		bullets    int
		health     int
		died, hits int
	}{
		{"own bullet ignored", PartyPlayer, TierA, "self", false, 1, 1, 0, 0},
		{"friendly fire has no effect", PartyEnemy, TierA, "ally", false, 1, 1, 0, 0},
		{"shield swallows hostile bullet", PartyPlayer, TierA, "enemy", true, 0, 1, 0, 0},
		{"hostile bullet damages", PartyEnemy, TierD, "enemy", false, 0, 3, 0, 1},
		{"hostile bullet kills", PartyEnemy, TierA, "enemy", false, 0, 0, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			died := collect(w, EventTankDied)
			hits := collect(w, EventTankHit)

			victim := spawnStill(w, tc.victim, tc.tier, victimAt)
			if tc.shield {
				w.shieldTank(victim, 100)
			}

			var shooter *Tank
			switch tc.shooter {
			case "self":
				shooter = victim
			case "ally":
				shooter = spawnStill(w, tc.victim, TierA, core.Vec(32, 224))
			default:
				other := PartyEnemy
				if tc.victim == PartyEnemy {
					other = PartyPlayer
				}
				shooter = spawnStill(w, other, TierA, core.Vec(32, 224))
			}
			placeBullet(w, shooter, victimAt, 0)
			handle := victim.obj.Handle()

			w.Step(core.NewInputFrame())

			if got := len(w.bullets); got != tc.bullets {
				t.Errorf("bullets alive = %d, expected %d", got, tc.bullets)
			}
			if got := victim.Health(); got != tc.health {
				t.Errorf("Health() = %d, expected %d", got, tc.health)
			}
			if got := len(*died); got != tc.died {
				t.Errorf("TankDied events = %d, expected %d", got, tc.died)
			}
			if got := len(*hits); got != tc.hits {
				t.Errorf("TankHit events = %d, expected %d", got, tc.hits)
			}
			if tc.died > 0 {
				if w.tree.Get(handle) != nil {
					t.Error("dead tank handle still resolves")
				}
				if got := countEffects(w, EffectLargeExplosion); got != 1 {
					t.Errorf("large explosions = %d, expected 1", got)
				}
			}
		})
	}
}

func TestDetachDuringResolution(t *testing.T) {
	w := newTestWorld(t)
	died := collect(w, EventTankDied)

	victim := spawnStill(w, PartyEnemy, TierA, core.Vec(160, 96))
	shooter := spawnStill(w, PartyPlayer, TierC, core.Vec(32, 224))
	placeBullet(w, shooter, core.Vec(150, 96), 0)
	placeBullet(w, shooter, core.Vec(170, 96), 0)
	handle := victim.obj.Handle()
	collider := victim.collider

	w.Step(core.NewInputFrame())

	if got := len(*died); got != 1 {
		t.Fatalf("TankDied events = %d, expected exactly 1", got)
	}
	if got := len(w.bullets); got != 1 {
		t.Errorf("bullets alive = %d, expected 1: the second bullet found no tank", got)
	}
	if w.tree.Get(handle) != nil {
		t.Error("Get() of the dead tank returned an object")
	}
	if w.system.Registered(collider) {
		t.Error("dead tank's collider is still registered")
	}
	w.root.Traverse(func(o *scene.Object) bool {
		if o == victim.obj {
			t.Error("dead tank reachable by traversal")
		}
		return true
	})

	// The next pass runs cleanly without the tank.
	w.Step(core.NewInputFrame())
	if w.Tank(handle) != nil {
		t.Error("Tank() of the dead tank returned a component")
	}
}

func TestBulletHitsBase(t *testing.T) {
	w := newTestWorld(t)
	destroyed := collect(w, EventBaseDestroyed)
	shooter := spawnStill(w, PartyEnemy, TierA, core.Vec(32, 96))
	placeBullet(w, shooter, core.Vec(160, 250), 10)
	placeBullet(w, shooter, core.Vec(140, 250), 10)
	shooter.obj.Rotate(core.Down)

	w.Step(core.NewInputFrame())

	if !w.Base().Destroyed() {
		t.Error("Base().Destroyed() = false, expected true")
	}
	if got := len(*destroyed); got != 1 {
		t.Errorf("BaseDestroyed events = %d, expected 1", got)
	}
}

func TestPowerupPickup(t *testing.T) {
	tests := []struct {
		name     string
		party    Party
		expected int
	}{
		{"player picks up", PartyPlayer, 1},
		{"enemy ignores", PartyEnemy, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			picked := collect(w, EventPowerupPicked)
			p := w.spawnPowerup()
			spawnStill(w, tc.party, TierA, p.obj.WorldCenter())

			w.Step(core.NewInputFrame())

			if got := len(*picked); got != tc.expected {
				t.Errorf("PowerupPicked events = %d, expected %d", got, tc.expected)
			}
			if got := p.obj.IsRemoved(); got != (tc.expected == 1) {
				t.Errorf("powerup removed = %v, expected %v", got, tc.expected == 1)
			}
		})
	}
}

func TestDispatchTableComplete(t *testing.T) {
	for src := scene.Role(0); src < roleCount; src++ {
		for dst := scene.Role(0); dst < roleCount; dst++ {
			if dispatch[src][dst] == nil {
				t.Errorf("dispatch[%s][%s] is nil", roleName(src), roleName(dst))
			}
		}
	}
}

func TestColliderOrderFollowsTree(t *testing.T) {
	w := newTestWorld(t)
	order := w.colliderOrder()
	if len(order) != w.system.Len() {
		t.Fatalf("colliderOrder() = %d colliders, expected %d", len(order), w.system.Len())
	}

	// Borders are attached before terrain.
	if !order[0].Owner().Tags.Has(scene.TagBorder) {
		t.Errorf("first collider tags = %v, expected a border", order[0].Owner().Tags)
	}
	for _, c := range order {
		if c.IsActive() {
			t.Errorf("terrain collider %v should be inactive", c.Owner().Tags)
		}
	}
}
