package tanks

import (
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/scene"
)

// EventKind identifies an event type on the bus.
type EventKind uint8

const (
	EventTankDied EventKind = iota
	EventTankHit
	EventSpawnCompleted
	EventExplosionCompleted
	EventBulletDied
	EventPowerupPicked
	EventBaseDestroyed
	EventEnemySpawnRequested

	eventKindCount
)

// Event is a notification pushed by entities during update and resolution.
type Event interface {
	Kind() EventKind
}

// DeathReason tells how a tank died.
type DeathReason uint8

const (
	DeathByBullet DeathReason = iota
	DeathByWipeout
)

// TankDied is pushed when a tank is destroyed and replaced by an explosion.
type TankDied struct {
	Handle  scene.Handle
	Party   Party
	Tier    Tier
	HasDrop bool
	Center  core.Vector
	Reason  DeathReason
}

// TankHit is pushed when a bullet damages a tank without killing it.
type TankHit struct {
	Handle scene.Handle
	Party  Party
	Health int
}

// SpawnCompleted is pushed when a spawn animation finishes; the spawner
// puts a tank at Center.
type SpawnCompleted struct {
	Party   Party
	Tier    Tier
	HasDrop bool
	Center  core.Vector
	Index   int // Enemy queue position, -1 for the player
}

// ExplosionCompleted is pushed when an explosion effect ends.
type ExplosionCompleted struct {
	Center core.Vector
}

// BulletDied is pushed when a bullet leaves play for any reason.
type BulletDied struct {
	Shooter scene.Handle
	Party   Party
}

// PowerupPicked is pushed when the player collects a powerup.
type PowerupPicked struct {
	Type PowerupType
	By   scene.Handle
}

// BaseDestroyed is pushed once, when the base is hit.
type BaseDestroyed struct{}

// EnemySpawnRequested asks the spawner to start the next enemy spawn.
type EnemySpawnRequested struct {
	Index int // Position in the level's enemy queue
}

func (TankDied) Kind() EventKind            { return EventTankDied }
func (TankHit) Kind() EventKind             { return EventTankHit }
func (SpawnCompleted) Kind() EventKind      { return EventSpawnCompleted }
func (ExplosionCompleted) Kind() EventKind  { return EventExplosionCompleted }
func (BulletDied) Kind() EventKind          { return EventBulletDied }
func (PowerupPicked) Kind() EventKind       { return EventPowerupPicked }
func (BaseDestroyed) Kind() EventKind       { return EventBaseDestroyed }
func (EnemySpawnRequested) Kind() EventKind { return EventEnemySpawnRequested }

// Outbox collects the events of one tick.
type Outbox struct {
	events []Event
}

// Push queues an event.
func (o *Outbox) Push(e Event) {
	o.events = append(o.events, e)
}

// Len returns the number of queued events.
func (o *Outbox) Len() int {
	return len(o.events)
}

// Drain returns the queued events in push order and empties the outbox.
func (o *Outbox) Drain() []Event {
	events := o.events
	o.events = nil
	return events
}

// Bus dispatches drained events to subscribers.
type Bus struct {
	subs [eventKindCount][]func(Event)
}

// Subscribe registers fn for one event kind. Subscribers run in
// registration order.
func (b *Bus) Subscribe(kind EventKind, fn func(Event)) {
	b.subs[kind] = append(b.subs[kind], fn)
}

// Dispatch delivers every event to its subscribers, in event order.
func (b *Bus) Dispatch(events []Event) {
	for _, e := range events {
		for _, fn := range b.subs[e.Kind()] {
			fn(e)
		}
	}
}
