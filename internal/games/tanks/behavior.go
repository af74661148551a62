package tanks

import (
	"math/rand"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Intent is what a behavior wants its tank to do this tick.
type Intent struct {
	Rotation core.Rotation
	Move     bool
	Fire     bool
}

// BehaviorContext is the world state a behavior may read.
type BehaviorContext struct {
	Input        core.InputFrame
	Tick         uint64
	Frozen       bool // Enemies are stopped by a Freeze powerup
	FireInterval int  // AI fire interval in ticks at the current difficulty
}

// Behavior turns world state into an intent for one tank.
type Behavior interface {
	Decide(t *Tank, ctx BehaviorContext) Intent
}

// PlayerBehavior drives a tank from the keyboard.
//
// Terminals deliver key repeats instead of releases, so a direction stays
// held for holdTicks after the last press of it.
type PlayerBehavior struct {
	holdTicks int
	held      core.Rotation
	holdLeft  int
}

// NewPlayerBehavior creates a player behavior with the given hold window.
func NewPlayerBehavior(holdTicks int) *PlayerBehavior {
	return &PlayerBehavior{holdTicks: max(1, holdTicks)}
}

var actionRotation = map[core.Action]core.Rotation{
	core.ActionUp:    core.Up,
	core.ActionDown:  core.Down,
	core.ActionLeft:  core.Left,
	core.ActionRight: core.Right,
}

// Decide implements Behavior.
func (b *PlayerBehavior) Decide(t *Tank, ctx BehaviorContext) Intent {
	pressed := false
	for _, a := range core.MoveActions {
		if ctx.Input.Has(a) {
			b.held = actionRotation[a]
			pressed = true
			break
		}
	}

	if pressed {
		b.holdLeft = b.holdTicks
	} else if b.holdLeft > 0 {
		b.holdLeft--
	}

	intent := Intent{Rotation: t.obj.Rotation, Fire: ctx.Input.Has(core.ActionFire)}
	if b.holdLeft > 0 {
		intent.Rotation = b.held
		intent.Move = true
	}
	return intent
}

// SimpleAIBehavior keeps moving, turns at random and more eagerly after
// being blocked, and fires on an interval.
type SimpleAIBehavior struct {
	rng        *rand.Rand
	turnChance float64
	fireIn     int
}

// NewSimpleAIBehavior creates an AI driven by its own seeded source.
func NewSimpleAIBehavior(seed int64, turnChance float64) *SimpleAIBehavior {
	return &SimpleAIBehavior{
		rng:        rand.New(rand.NewSource(seed)),
		turnChance: turnChance,
	}
}

// Decide implements Behavior.
func (b *SimpleAIBehavior) Decide(t *Tank, ctx BehaviorContext) Intent {
	intent := Intent{Rotation: t.obj.Rotation}
	if ctx.Frozen {
		return intent
	}

	chance := b.turnChance
	if t.Blocked() {
		chance = 0.5
	}
	if b.rng.Float64() < chance {
		intent.Rotation = b.pickRotation(t)
	}
	intent.Move = true

	if b.fireIn > 0 {
		b.fireIn--
	}
	if b.fireIn == 0 {
		intent.Fire = true
		b.fireIn = max(1, ctx.FireInterval)
	}
	return intent
}

// pickRotation favors heading down toward the base.
func (b *SimpleAIBehavior) pickRotation(t *Tank) core.Rotation {
	choices := [...]core.Rotation{core.Down, core.Down, core.Left, core.Right, core.Up}
	r := choices[b.rng.Intn(len(choices))]
	if r == t.obj.Rotation && t.Blocked() {
		r = r.Opposite()
	}
	return r
}
