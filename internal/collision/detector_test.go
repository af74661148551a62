package collision

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

func TestSweptBoxContainsBothBoxes(t *testing.T) {
	tree := scene.NewTree()
	moves := []core.Vector{
		core.Vec(0, -40), core.Vec(40, 0), core.Vec(-3, 7), core.Vec(0, 0), core.Vec(100, 100),
	}

	bullet := tree.New(core.Vec(200, 200), core.Dims(12, 16))
	c := NewSweptBoxCollider(bullet)

	for _, m := range moves {
		bullet.Translate(m)
		c.Update()

		box := c.Box()
		if !box.ContainsBox(c.PrevBox()) {
			t.Errorf("Box() = %v does not contain PrevBox() = %v", box, c.PrevBox())
		}
		if !box.ContainsBox(c.CurrentBox()) {
			t.Errorf("Box() = %v does not contain CurrentBox() = %v", box, c.CurrentBox())
		}
		if got := c.Direction(); got != m {
			t.Errorf("Direction() = %v, expected %v", got, m)
		}
	}
}

func TestSweptInitGivesZeroSweep(t *testing.T) {
	tree := scene.NewTree()
	o := tree.New(core.Vec(10, 10), core.Dims(12, 16))
	c := NewSweptBoxCollider(o)

	if c.PrevBox() != c.CurrentBox() {
		t.Errorf("PrevBox() = %v, expected %v", c.PrevBox(), c.CurrentBox())
	}
	if c.Direction() != (core.Vector{}) {
		t.Errorf("Direction() = %v, expected zero", c.Direction())
	}

	o.Translate(core.Vec(0, 50))
	c.Update()
	o.Translate(core.Vec(0, 50))
	c.Reset()
	if c.PrevBox() != o.WorldBoundingBox() || c.CurrentBox() != o.WorldBoundingBox() {
		t.Error("Reset() should collapse both boxes onto the live box")
	}
	if o.Collider != c {
		t.Error("NewSweptBoxCollider should attach itself to the owner")
	}
}

func TestSweptRefreshKeepsPrevious(t *testing.T) {
	tree := scene.NewTree()
	o := tree.New(core.Vec(0, 100), core.Dims(10, 10))
	c := NewSweptBoxCollider(o)
	start := c.CurrentBox()

	o.Translate(core.Vec(0, -60))
	c.Update()
	o.Translate(core.Vec(0, 30))
	c.Refresh()

	if c.PrevBox() != start {
		t.Errorf("PrevBox() = %v, expected %v", c.PrevBox(), start)
	}
	if c.CurrentBox() != o.WorldBoundingBox() {
		t.Errorf("CurrentBox() = %v, expected %v", c.CurrentBox(), o.WorldBoundingBox())
	}
}

// A bullet moving 40px per tick past a 16px brick: the swept collider sees
// the brick, the plain one does not.
func TestSweptVersusPlainTunneling(t *testing.T) {
	setup := func(swept bool) (*scene.Object, []scene.Collider) {
		tree := scene.NewTree()
		field := tree.New(core.Vec(0, 0), core.Dims(832, 832))
		wall := tree.New(core.Vec(100, 100), core.Dims(16, 16))
		wall.Tags = scene.TagWall | scene.TagBrick
		bullet := tree.New(core.Vec(102, 124), core.Dims(12, 16))
		bullet.Tags = scene.TagBullet
		field.Add(wall, bullet)

		var bc scene.Collider
		if swept {
			bc = NewSweptBoxCollider(bullet)
		} else {
			bc = NewBoxCollider(bullet)
		}
		wc := NewBoxCollider(wall)
		return bullet, []scene.Collider{bc, wc}
	}

	tests := []struct {
		name     string
		swept    bool
		expected int
	}{
		{"swept box registers the crossed wall", true, 1},
		{"plain box tunnels through", false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bullet, colliders := setup(tc.swept)
			for _, c := range colliders {
				c.Init()
			}

			// Starts just below the wall, ends above it.
			bullet.Translate(core.Vec(0, -40))
			for _, c := range colliders {
				c.Update()
			}

			if colliders[1].Box().Intersects(bullet.WorldBoundingBox()) {
				t.Fatal("final bullet box should be clear of the wall")
			}

			collisions := IntersectObjects(colliders, colliders)
			got := 0
			for _, col := range collisions {
				if col.Owner == bullet {
					got = len(col.Filter(scene.TagWall))
				}
			}
			if got != tc.expected {
				t.Errorf("wall contacts = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestIntersectObjectsActiveSourcesOnly(t *testing.T) {
	tree := scene.NewTree()
	a := tree.New(core.Vec(0, 0), core.Dims(10, 10))
	b := tree.New(core.Vec(5, 5), core.Dims(10, 10))
	ca := NewBoxCollider(a)
	cb := NewBoxCollider(b)
	cb.SetActive(false)

	all := []scene.Collider{ca, cb}
	collisions := IntersectObjects(all, all)

	if len(collisions) != 1 {
		t.Fatalf("IntersectObjects() returned %d collisions, expected 1", len(collisions))
	}
	if collisions[0].Source != ca {
		t.Error("only the active collider should be a source")
	}
	if len(collisions[0].Contacts) != 1 || collisions[0].Contacts[0].Collider != cb {
		t.Error("inactive collider should still be a target")
	}
}

func TestIntersectObjectsExcludesSelf(t *testing.T) {
	tree := scene.NewTree()
	a := tree.New(core.Vec(0, 0), core.Dims(10, 10))
	ca := NewBoxCollider(a)

	all := []scene.Collider{ca}
	if got := IntersectObjects(all, all); len(got) != 0 {
		t.Errorf("IntersectObjects() = %d collisions, expected 0 for a lone collider", len(got))
	}
}

func TestIntersectObjectsEmpty(t *testing.T) {
	tree := scene.NewTree()
	a := NewBoxCollider(tree.New(core.Vec(0, 0), core.Dims(10, 10)))
	b := NewBoxCollider(tree.New(core.Vec(0, 0), core.Dims(10, 10)))
	a.SetActive(false)
	b.SetActive(false)

	all := []scene.Collider{a, b}
	if got := IntersectObjects(all, all); len(got) != 0 {
		t.Errorf("IntersectObjects() = %d collisions, expected 0 with no active colliders", len(got))
	}
	if got := IntersectObjects(nil, nil); got != nil {
		t.Errorf("IntersectObjects(nil, nil) = %v, expected nil", got)
	}
}

func TestIntersectObjectsStableOrder(t *testing.T) {
	tree := scene.NewTree()
	var colliders []scene.Collider
	for i := 0; i < 5; i++ {
		o := tree.New(core.Vec(float64(i)*4, 0), core.Dims(10, 10))
		colliders = append(colliders, NewBoxCollider(o))
	}

	first := IntersectObjects(colliders, colliders)
	for run := 0; run < 10; run++ {
		again := IntersectObjects(colliders, colliders)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d collisions, expected %d", run, len(again), len(first))
		}
		for i := range again {
			if again[i].Source != first[i].Source {
				t.Errorf("run %d: collision %d source differs", run, i)
			}
			for j := range again[i].Contacts {
				if again[i].Contacts[j].Collider != first[i].Contacts[j].Collider {
					t.Errorf("run %d: collision %d contact %d differs", run, i, j)
				}
			}
		}
	}

	// Source 2 overlaps 0, 1, 3 and 4, in target order.
	c := first[2]
	expected := []scene.Collider{colliders[0], colliders[1], colliders[3], colliders[4]}
	if len(c.Contacts) != len(expected) {
		t.Fatalf("contacts = %d, expected %d", len(c.Contacts), len(expected))
	}
	for i, ct := range c.Contacts {
		if ct.Collider != expected[i] {
			t.Errorf("contact %d out of order", i)
		}
	}
}

func TestContactBoxUsesSweptUnion(t *testing.T) {
	tree := scene.NewTree()
	wall := NewBoxCollider(tree.New(core.Vec(0, 0), core.Dims(64, 16)))
	b := tree.New(core.Vec(20, 40), core.Dims(12, 16))
	bullet := NewSweptBoxCollider(b)
	b.Translate(core.Vec(0, -30))
	bullet.Update()

	all := []scene.Collider{wall, bullet}
	collisions := IntersectObjects(all, all)
	if len(collisions) != 2 {
		t.Fatalf("IntersectObjects() = %d collisions, expected 2", len(collisions))
	}
	if got := collisions[0].Contacts[0].Box; got != bullet.Box() {
		t.Errorf("Contact.Box = %v, expected swept union %v", got, bullet.Box())
	}
	if got := collisions[1].Contacts[0].Box; got != wall.Box() {
		t.Errorf("Contact.Box = %v, expected plain box %v", got, wall.Box())
	}
}

func TestClosestTo(t *testing.T) {
	tree := scene.NewTree()
	mk := func(x, y float64) Contact {
		c := NewBoxCollider(tree.New(core.Vec(x, y), core.Dims(16, 16)))
		return Contact{Collider: c, Box: c.Box()}
	}
	far := mk(0, 0)
	nearA := mk(0, 32)
	nearB := mk(32, 32)
	ref := core.BoxAt(core.Vec(16, 64), core.Dims(16, 16))

	got := ClosestTo(ref, []Contact{far, nearA, nearB})
	if len(got) != 2 {
		t.Fatalf("ClosestTo() returned %d contacts, expected 2 tied", len(got))
	}
	if got[0].Collider != nearA.Collider || got[1].Collider != nearB.Collider {
		t.Error("ClosestTo() should keep ties in contact order")
	}
	if ClosestTo(ref, nil) != nil {
		t.Error("ClosestTo() of no contacts should be nil")
	}
}

func TestCollisionFilter(t *testing.T) {
	tree := scene.NewTree()
	brick := tree.New(core.Vec(0, 0), core.Dims(16, 16))
	brick.Tags = scene.TagWall | scene.TagBrick
	tank := tree.New(core.Vec(0, 0), core.Dims(52, 52))
	tank.Tags = scene.TagTank | scene.TagEnemy

	col := Collision{Contacts: []Contact{
		{Collider: NewBoxCollider(brick)},
		{Collider: NewBoxCollider(tank)},
	}}

	if got := col.Filter(scene.TagWall); len(got) != 1 || got[0].Owner() != brick {
		t.Errorf("Filter(wall) = %d contacts, expected the brick", len(got))
	}
	if !col.Has(scene.TagTank | scene.TagEnemy) {
		t.Error("Has(tank|enemy) = false, expected true")
	}
	if col.Has(scene.TagPlayer) {
		t.Error("Has(player) = true, expected false")
	}
}

func TestSystemRegistration(t *testing.T) {
	tree := scene.NewTree()
	o := tree.New(core.Vec(0, 0), core.Dims(10, 10))
	c := NewSweptBoxCollider(o)

	// Move before registration; Register must Init so the first sweep is zero.
	o.Translate(core.Vec(100, 0))

	s := NewSystem()
	s.Register(c)
	s.Register(c)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1 after double Register", s.Len())
	}
	if c.PrevBox() != o.WorldBoundingBox() {
		t.Error("Register should Init the collider")
	}

	other := NewBoxCollider(tree.New(core.Vec(0, 0), core.Dims(10, 10)))
	third := NewBoxCollider(tree.New(core.Vec(0, 0), core.Dims(10, 10)))
	s.Register(other)
	s.Register(third)

	s.Unregister(other)
	if s.Registered(other) {
		t.Error("Registered() = true after Unregister")
	}
	p := s.Participants()
	if len(p) != 2 || p[0] != c || p[1] != third {
		t.Error("Unregister should keep the remaining registration order")
	}
	s.Unregister(other)
	if s.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", s.Len())
	}
}

func TestDetectorUsesGivenOrder(t *testing.T) {
	tree := scene.NewTree()
	a := NewBoxCollider(tree.New(core.Vec(0, 0), core.Dims(10, 10)))
	b := NewBoxCollider(tree.New(core.Vec(5, 0), core.Dims(10, 10)))

	s := NewSystem()
	s.Register(a)
	s.Register(b)
	d := NewDetector(s, nil)

	got := d.Detect(nil)
	if len(got) != 2 || got[0].Source != a {
		t.Fatal("Detect(nil) should follow registration order")
	}
	got = d.Detect([]scene.Collider{b, a})
	if len(got) != 2 || got[0].Source != b {
		t.Error("Detect(order) should follow the given order")
	}
}
