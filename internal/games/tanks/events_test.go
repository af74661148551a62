package tanks

import "testing"

func TestOutboxDrain(t *testing.T) {
	var o Outbox
	o.Push(BaseDestroyed{})
	o.Push(EnemySpawnRequested{Index: 3})

	if o.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", o.Len())
	}
	got := o.Drain()
	if len(got) != 2 || got[0].Kind() != EventBaseDestroyed || got[1].Kind() != EventEnemySpawnRequested {
		t.Errorf("Drain() = %v, expected push order", got)
	}
	if o.Len() != 0 || o.Drain() != nil {
		t.Error("Drain() should empty the outbox")
	}
}

func TestBusDispatch(t *testing.T) {
	var bus Bus
	var order []string

	bus.Subscribe(EventTankHit, func(Event) { order = append(order, "hit-1") })
	bus.Subscribe(EventTankHit, func(Event) { order = append(order, "hit-2") })
	bus.Subscribe(EventBulletDied, func(e Event) {
		if e.(BulletDied).Party != PartyEnemy {
			t.Error("subscriber got the wrong event payload")
		}
		order = append(order, "bullet")
	})

	bus.Dispatch([]Event{BulletDied{Party: PartyEnemy}, TankHit{}, ExplosionCompleted{}})

	expected := []string{"bullet", "hit-1", "hit-2"}
	if len(order) != len(expected) {
		t.Fatalf("dispatched %v, expected %v", order, expected)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("dispatch %d = %q, expected %q", i, order[i], expected[i])
		}
	}
}
